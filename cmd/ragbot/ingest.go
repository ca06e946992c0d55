package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ragbot/internal/extract"
	"ragbot/internal/loader"
	"ragbot/internal/service"
)

var (
	ingestDir string
	ingestOut string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Folder of documents to index (default from config)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Vector store file to write (default from config)")
}

// ingestCmd builds the vector store
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index a folder of documents into the vector store",
	Long: `Extract the text of every file in the dataset folder, split it into
overlapping chunks, embed them and save the index with its chunks.

Folders with nothing readable leave any existing vector store untouched.

Examples:
  ragbot ingest
  ragbot ingest --dir ./docs --out ./docs.gob`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir, out := cfg.DatasetDir, cfg.ArtifactPath
	if ingestDir != "" {
		dir = ingestDir
	}
	if ingestOut != "" {
		out = ingestOut
	}

	emb, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer closeEmbedder(emb)
	ch, err := newChunker(cfg)
	if err != nil {
		return err
	}
	ex := extract.New(logger, extract.WithOCR(extract.OCRConfig{
		Command:  cfg.Extract.OCR.Command,
		Language: cfg.Extract.OCR.Language,
	}))

	ix := service.NewIndexer(loader.New(ex, logger), ch, emb, logger)
	report, err := ix.Ingest(cmd.Context(), dir, out)
	if errors.Is(err, service.ErrNoDocuments) {
		fmt.Fprintf(cmd.OutOrStdout(), "No valid datasets found in %s. Vector store not created.\n", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Vector store saved to %s with %d chunks from %d documents.\n", report.Path, report.Chunks, report.Documents)
	return nil
}
