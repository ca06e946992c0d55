//go:build !cgo

package fastembed

import (
	"context"
	"errors"
)

// ErrNotAvailable is returned when the binary was built without cgo.
var ErrNotAvailable = errors.New("fastembed: not available (built without cgo); use the openai or tfidf embedder")

// Embedder is a placeholder for builds without cgo.
type Embedder struct{}

// New always fails without cgo.
func New(Config) (*Embedder, error) { return nil, ErrNotAvailable }

func (e *Embedder) Name() string { return "" }
func (e *Embedder) Prepare([]string) error { return ErrNotAvailable }
func (e *Embedder) Dimension() int { return 0 }
func (e *Embedder) Close() error { return nil }

func (e *Embedder) EmbedDocuments(context.Context, []string) ([][]float32, error) {
	return nil, ErrNotAvailable
}

func (e *Embedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, ErrNotAvailable
}
