package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ragbot/internal/chat"
	"ragbot/internal/service"
	"ragbot/internal/tui"
)

var (
	chatArtifact string
	chatTopK     int
	chatTUI      bool
)

func init() {
	chatCmd.Flags().StringVarP(&chatArtifact, "artifact", "a", "", "Vector store file to load (default from config)")
	chatCmd.Flags().IntVarP(&chatTopK, "top-k", "k", 0, "Passages retrieved per question (default from config)")
	chatCmd.Flags().BoolVar(&chatTUI, "tui", false, "Use the full-screen interface")
}

// chatCmd answers questions against the vector store
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about the indexed documents",
	Long: `Load the vector store and answer questions read from standard input.
Type quit or exit to leave.

Examples:
  ragbot chat
  ragbot chat --top-k 5 --tui`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	path := cfg.ArtifactPath
	if chatArtifact != "" {
		path = chatArtifact
	}
	topK := cfg.Retrieval.TopK
	if chatTopK > 0 {
		topK = chatTopK
	}

	emb, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer closeEmbedder(emb)
	corpus, err := service.OpenCorpus(path, emb)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	assistant := service.NewAssistant(corpus, emb, gen, topK, logger)

	if chatTUI {
		summary := fmt.Sprintf("%d chunks from %s, model %s, generator %s", corpus.Len(), path, corpus.Model().Name, gen.Name())
		_, err := tea.NewProgram(tui.New(cmd.Context(), assistant, summary), tea.WithAltScreen()).Run()
		return err
	}
	return chat.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), assistant, logger)
}
