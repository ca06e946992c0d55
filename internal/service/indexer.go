// Package service wires extraction, chunking, embedding and generation into
// the two pipelines: building the indexed corpus and answering questions.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ragbot/internal/domain"
	"ragbot/internal/embedding"
	"ragbot/internal/logging"
	"ragbot/internal/vectorstore"
)

// ErrNoDocuments means ingestion found nothing to index. No artifact is written.
var ErrNoDocuments = errors.New("no documents with text found")

// DocumentLoader reads the documents of a folder.
type DocumentLoader interface {
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}

// Indexer builds and persists the indexed corpus.
type Indexer struct {
	loader   DocumentLoader
	chunker  domain.Chunker
	embedder embedding.Embedder
	log      *zap.Logger
}

// Report summarises an ingestion run.
type Report struct {
	Documents int
	Chunks    int
	Path      string
}

func NewIndexer(loader DocumentLoader, chunker domain.Chunker, embedder embedding.Embedder, log *zap.Logger) *Indexer {
	return &Indexer{loader: loader, chunker: chunker, embedder: embedder, log: logging.OrNop(log)}
}

// Build chunks every document, embeds all chunks in one batch and indexes them
// in chunk order.
func (ix *Indexer) Build(ctx context.Context, docs []domain.Document) (*vectorstore.Corpus, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	var texts []string
	for _, d := range docs {
		chunks, err := ix.chunker.Chunk(d)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", d.Path, err)
		}
		for _, ch := range chunks {
			texts = append(texts, ch.Text)
		}
	}
	if len(texts) == 0 {
		return nil, ErrNoDocuments
	}
	ix.log.Info("embedding chunks", zap.Int("chunks", len(texts)), zap.String("model", ix.embedder.Name()))

	if err := ix.embedder.Prepare(texts); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors, err := ix.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	model := vectorstore.ModelInfo{Name: ix.embedder.Name(), Dimension: ix.embedder.Dimension()}
	if s, ok := ix.embedder.(embedding.Stateful); ok {
		if model.State, err = s.State(); err != nil {
			return nil, fmt.Errorf("embedder state: %w", err)
		}
	}
	return vectorstore.NewCorpus(model, texts, vectors)
}

// Ingest loads dir, builds the corpus and saves it to path. ErrNoDocuments is
// returned, after a warning, when there is nothing to index.
func (ix *Indexer) Ingest(ctx context.Context, dir, path string) (Report, error) {
	docs, err := ix.loader.Load(ctx, dir)
	if err != nil {
		return Report{}, err
	}
	corpus, err := ix.Build(ctx, docs)
	if errors.Is(err, ErrNoDocuments) {
		ix.log.Warn("no valid datasets found; vector store not written", zap.String("dir", dir))
		return Report{Path: path}, err
	}
	if err != nil {
		return Report{}, err
	}
	if err := vectorstore.Save(path, corpus); err != nil {
		return Report{}, fmt.Errorf("save vector store: %w", err)
	}
	ix.log.Info("vector store saved", zap.String("path", path), zap.Int("chunks", corpus.Len()))
	return Report{Documents: len(docs), Chunks: corpus.Len(), Path: path}, nil
}
