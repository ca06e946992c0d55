package fastembed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimension(t *testing.T) {
	d, ok := Dimension("sentence-transformers/all-MiniLM-L6-v2")
	assert.True(t, ok)
	assert.Equal(t, 384, d)

	_, ok = Dimension("nope")
	assert.False(t, ok)
}

func TestName(t *testing.T) {
	assert.Equal(t, "fastembed/BAAI/bge-small-en-v1.5", name("BAAI/bge-small-en-v1.5"))
}

func TestNew_UnsupportedModel(t *testing.T) {
	_, err := New(Config{Model: "made-up/model"})
	assert.Error(t, err)
}
