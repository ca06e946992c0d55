package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const pingInput = "Hello, how are you?"

// pingCmd sends a fixed input to the inference endpoint
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send a test request to the Hugging Face endpoint",
	Long: `Post a fixed greeting to the configured Hugging Face model and print the
status code and raw body. Useful to check the token and model URL.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	client, err := newHuggingFace(cfg)
	if err != nil {
		return err
	}
	status, body, err := client.Call(cmd.Context(), pingInput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Status code: %d\n", status)
	fmt.Fprintf(cmd.OutOrStdout(), "Raw text: %s\n", body)
	return nil
}
