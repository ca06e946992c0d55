package vectorstore

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const artifactVersion = 1

type artifact struct {
	Version int
	Model   ModelInfo
	Dim     int
	Vectors []float32
	Chunks  []string
}

// Save writes the corpus to path, replacing any previous artifact. The file is
// written beside the target and renamed into place so a failed save leaves the
// old artifact untouched.
func Save(path string, c *Corpus) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	a := artifact{
		Version: artifactVersion,
		Model:   c.model,
		Dim:     c.index.dim,
		Vectors: c.index.data,
		Chunks:  c.chunks,
	}
	if err := gob.NewEncoder(tmp).Encode(&a); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a corpus written by Save and checks that every chunk has a vector.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var a artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("unsupported artifact version %d", a.Version)
	}
	if a.Dim <= 0 || len(a.Vectors)%a.Dim != 0 {
		return nil, errors.New("corrupt artifact: vector data does not match dimension")
	}
	if n := len(a.Vectors) / a.Dim; n != len(a.Chunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrMisaligned, len(a.Chunks), n)
	}
	return &Corpus{
		model:  a.Model,
		index:  &FlatL2{dim: a.Dim, data: a.Vectors},
		chunks: a.Chunks,
	}, nil
}
