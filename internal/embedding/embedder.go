package embedding

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
//
// Name identifies the model; vectors from embedders with different names live
// in different spaces and must not be compared.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Stateful is implemented by embedders whose model is learned from the corpus
// and has to travel with the index.
type Stateful interface {
	State() ([]byte, error)
	Restore(state []byte) error
}
