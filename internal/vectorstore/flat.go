package vectorstore

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDimension is returned when a vector does not match the index dimension.
	ErrDimension = errors.New("vector dimension mismatch")
	// ErrEmptyIndex is returned when searching an index with no vectors.
	ErrEmptyIndex = errors.New("index is empty")
)

// FlatL2 is an exact nearest-neighbour index over squared Euclidean distance.
// Vectors are stored contiguously and identified by insertion position.
type FlatL2 struct {
	dim  int
	data []float32
}

// NewFlatL2 creates an empty index for vectors of the given dimension.
func NewFlatL2(dim int) (*FlatL2, error) {
	if dim <= 0 {
		return nil, errors.New("invalid dimension")
	}
	return &FlatL2{dim: dim}, nil
}

// Dim returns the vector dimension.
func (f *FlatL2) Dim() int { return f.dim }

// Len returns the number of stored vectors.
func (f *FlatL2) Len() int { return len(f.data) / f.dim }

// Add appends vectors; their positions continue from Len.
func (f *FlatL2) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("%w: vector %d has %d, want %d", ErrDimension, i, len(v), f.dim)
		}
	}
	for _, v := range vectors {
		f.data = append(f.data, v...)
	}
	return nil
}

// Neighbor is one search hit.
type Neighbor struct {
	Position int
	Distance float32
}

// Search returns the k nearest vectors, nearest first. Equal distances are
// ordered by position. k is clamped to Len.
func (f *FlatL2) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimension, len(query), f.dim)
	}
	n := f.Len()
	if n == 0 {
		return nil, ErrEmptyIndex
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid k %d", k)
	}
	if k > n {
		k = n
	}
	all := make([]Neighbor, n)
	for i := 0; i < n; i++ {
		all[i] = Neighbor{Position: i, Distance: l2sq(f.data[i*f.dim:(i+1)*f.dim], query)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Distance < all[j].Distance })
	return all[:k], nil
}

func l2sq(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
