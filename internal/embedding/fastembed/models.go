// Package fastembed embeds text locally with ONNX sentence-embedding models.
package fastembed

import "errors"

// ErrUnsupportedModel is returned for model names without a known mapping.
var ErrUnsupportedModel = errors.New("fastembed: unsupported model")

// Config configures the local embedder.
type Config struct {
	// Model is a sentence-transformers or BAAI model name, e.g.
	// sentence-transformers/all-MiniLM-L6-v2.
	Model string
	// CacheDir receives downloaded model files.
	CacheDir  string
	MaxLength int
	BatchSize int
}

var modelDimensions = map[string]int{
	"sentence-transformers/all-MiniLM-L6-v2": 384,
	"BAAI/bge-small-en-v1.5":                 384,
	"BAAI/bge-small-en":                      384,
	"BAAI/bge-base-en-v1.5":                  768,
	"BAAI/bge-base-en":                       768,
	"BAAI/bge-small-zh-v1.5":                 512,
}

// Dimension reports the vector size of a known model.
func Dimension(model string) (int, bool) {
	d, ok := modelDimensions[model]
	return d, ok
}

func name(model string) string { return "fastembed/" + model }
