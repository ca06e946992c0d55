// Package loader collects the text of every readable file in a folder.
package loader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ragbot/internal/domain"
	"ragbot/internal/logging"
)

// TextExtractor produces trimmed plain text for a file, or "" when it cannot.
type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

// Loader turns a directory of mixed-format files into documents.
type Loader struct {
	extractor TextExtractor
	log       *zap.Logger
}

// New creates a loader backed by the given extractor.
func New(extractor TextExtractor, log *zap.Logger) *Loader {
	return &Loader{extractor: extractor, log: logging.OrNop(log)}
}

// Load extracts every regular file directly inside dir, in name order.
// Directories and files that yield no text are left out. The only error is an
// unreadable dir.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}
	var docs []domain.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		text := l.extractor.Extract(ctx, path)
		if text == "" {
			l.log.Warn("skipped document", zap.String("file", entry.Name()))
			continue
		}
		docs = append(docs, domain.Document{ID: hashString(path), Path: path, Content: text})
		l.log.Info("loaded document", zap.String("file", entry.Name()), zap.Int("chars", len([]rune(text))))
	}
	return docs, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
