// Package vectorstore holds the indexed corpus: a flat L2 index paired with
// the chunk texts it was built from, and its on-disk artifact.
package vectorstore

import (
	"errors"
	"fmt"
)

// ErrMisaligned is returned when the chunk list and the vectors differ in length.
var ErrMisaligned = errors.New("chunks and vectors are misaligned")

// ModelInfo identifies the embedding space of a corpus.
type ModelInfo struct {
	Name      string
	Dimension int
	// State carries learned embedder parameters, if any.
	State []byte
}

// Corpus owns an index and the chunk texts at the same positions. It is
// immutable once built.
type Corpus struct {
	model  ModelInfo
	index  *FlatL2
	chunks []string
}

// Hit is a retrieved chunk.
type Hit struct {
	Position int
	Text     string
	Distance float32
}

// NewCorpus builds the index from vectors in chunk order.
func NewCorpus(model ModelInfo, chunks []string, vectors [][]float32) (*Corpus, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrMisaligned, len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, ErrEmptyIndex
	}
	dim := len(vectors[0])
	if model.Dimension == 0 {
		model.Dimension = dim
	}
	if model.Dimension != dim {
		return nil, fmt.Errorf("%w: model reports %d, vectors have %d", ErrDimension, model.Dimension, dim)
	}
	index, err := NewFlatL2(dim)
	if err != nil {
		return nil, err
	}
	if err := index.Add(vectors...); err != nil {
		return nil, err
	}
	return &Corpus{model: model, index: index, chunks: append([]string(nil), chunks...)}, nil
}

// Model returns the embedding space the corpus was built in.
func (c *Corpus) Model() ModelInfo { return c.model }

// Len returns the number of chunks, which always equals the number of vectors.
func (c *Corpus) Len() int { return len(c.chunks) }

// Dim returns the vector dimension.
func (c *Corpus) Dim() int { return c.index.Dim() }

// Chunk returns the text at position i.
func (c *Corpus) Chunk(i int) string { return c.chunks[i] }

// Search returns the k chunks nearest to query, nearest first.
func (c *Corpus) Search(query []float32, k int) ([]Hit, error) {
	neighbors, err := c.index.Search(query, k)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, len(neighbors))
	for i, n := range neighbors {
		hits[i] = Hit{Position: n.Position, Text: c.chunks[n.Position], Distance: n.Distance}
	}
	return hits, nil
}
