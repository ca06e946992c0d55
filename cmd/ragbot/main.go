// Package main implements the ragbot CLI: build a vector store from a folder of
// documents, then chat with it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ragbot/internal/config"
	"ragbot/internal/logging"
)

var (
	// cfgPath is an explicit config file; empty means ./ragbot.yaml or the user config.
	cfgPath string
	// logLevel overrides log.level from the config file.
	logLevel string
	version = "dev"

	cfg    *config.AppConfig
	logger *zap.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ragbot",
	Short: "Question answering over a folder of documents",
	Long: `ragbot indexes a folder of documents (text, markdown, PDF, Word, Excel,
CSV, JSON and images through OCR) into a local vector store and answers
questions with the most similar passages as context.

Examples:
  # Build the vector store from ./datasets
  ragbot ingest

  # Ask questions on the terminal
  ragbot chat

  # Check the generation endpoint and token
  ragbot ping`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./ragbot.yaml or ~/.config/ragbot/config.yaml if not provided)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(pingCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}
	// Libraries such as the text splitter report through the standard logger.
	zap.RedirectStdLog(logger)
	logger.Debug("config loaded", zap.String("embedder", cfg.Embedder.Type), zap.String("generator", cfg.Generator.Type))
	return nil
}
