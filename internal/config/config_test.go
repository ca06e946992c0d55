package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDatasetDir, cfg.DatasetDir)
	assert.Equal(t, DefaultArtifactPath, cfg.ArtifactPath)
	assert.Equal(t, "recursive", cfg.Chunker.Type)
	assert.Equal(t, 500, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "fastembed", cfg.Embedder.Type)
	require.NotNil(t, cfg.Embedder.FastEmbed)
	assert.Equal(t, DefaultEmbeddingModel, cfg.Embedder.FastEmbed.Model)
	assert.Equal(t, "huggingface", cfg.Generator.Type)
	require.NotNil(t, cfg.Generator.HuggingFace)
	assert.Equal(t, DefaultHuggingFaceURL, cfg.Generator.HuggingFace.URL)
	assert.Equal(t, "HUGGINGFACE_API_TOKEN", cfg.Generator.HuggingFace.TokenEnv)
	assert.Equal(t, 60, cfg.Generator.HuggingFace.TimeoutSecs)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragbot.yaml")
	data := []byte(`
dataset_dir: docs
embedder:
  type: openai
generator:
  type: extractive
retrieval:
  top_k: 5
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.DatasetDir)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	require.NotNil(t, cfg.Generator.Extractive)
	assert.Equal(t, 3, cfg.Generator.Extractive.MaxSentences)
	assert.Nil(t, cfg.Generator.HuggingFace)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset_dir: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Retrieval.TopK = 7

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
