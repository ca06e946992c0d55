package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ragbot/internal/logging"
)

// OCRConfig configures the external OCR program used for images.
type OCRConfig struct {
	Command  string `yaml:"command"`
	Language string `yaml:"language"`
}

// ExtractConfig configures text extraction.
type ExtractConfig struct {
	OCR OCRConfig `yaml:"ocr"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type         string `yaml:"type"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	// OverlapSentences is only used by the sentence chunker.
	OverlapSentences int `yaml:"overlap_sentences,omitempty"`
}

// FastEmbedConfig configures the local ONNX embedder.
type FastEmbedConfig struct {
	Model     string `yaml:"model"`
	CacheDir  string `yaml:"cache_dir"`
	MaxLength int    `yaml:"max_length"`
	BatchSize int    `yaml:"batch_size"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type      string                `yaml:"type"`
	FastEmbed *FastEmbedConfig      `yaml:"fastembed,omitempty"`
	OpenAI    *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// RetrievalConfig configures the nearest-neighbour lookup.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// HuggingFaceConfig configures the hosted inference endpoint.
type HuggingFaceConfig struct {
	URL         string `yaml:"url"`
	TokenEnv    string `yaml:"token_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OpenAIGeneratorConfig configures an OpenAI-compatible chat completion backend.
type OpenAIGeneratorConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ExtractiveConfig configures the offline extractive generator.
type ExtractiveConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// GeneratorConfig selects and configures the answer generator.
type GeneratorConfig struct {
	Type        string                 `yaml:"type"`
	HuggingFace *HuggingFaceConfig     `yaml:"huggingface,omitempty"`
	OpenAI      *OpenAIGeneratorConfig `yaml:"openai,omitempty"`
	Extractive  *ExtractiveConfig      `yaml:"extractive,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DatasetDir   string          `yaml:"dataset_dir"`
	ArtifactPath string          `yaml:"artifact_path"`
	Log          logging.Config  `yaml:"log"`
	Extract      ExtractConfig   `yaml:"extract"`
	Chunker      ChunkerConfig   `yaml:"chunker"`
	Embedder     EmbedderConfig  `yaml:"embedder"`
	Retrieval    RetrievalConfig `yaml:"retrieval"`
	Generator    GeneratorConfig `yaml:"generator"`
}

const (
	DefaultDatasetDir     = "datasets"
	DefaultArtifactPath   = "vectorstore.gob"
	DefaultChunkSize      = 500
	DefaultChunkOverlap   = 50
	DefaultTopK           = 3
	DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	DefaultTokenEnv       = "HUGGINGFACE_API_TOKEN"
	DefaultTimeoutSecs    = 60
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./ragbot.yaml first, then ~/.config/ragbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/ragbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "ragbot.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragbot", "config.yaml"), nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{
		Embedder:  EmbedderConfig{Type: "fastembed"},
		Chunker:   ChunkerConfig{Type: "recursive"},
		Generator: GeneratorConfig{Type: "huggingface"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DatasetDir == "" {
		cfg.DatasetDir = DefaultDatasetDir
	}
	if cfg.ArtifactPath == "" {
		cfg.ArtifactPath = DefaultArtifactPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Extract.OCR.Command == "" {
		cfg.Extract.OCR.Command = "tesseract"
	}
	if cfg.Extract.OCR.Language == "" {
		cfg.Extract.OCR.Language = "eng"
	}
	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "recursive"
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = DefaultChunkSize
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}

	switch cfg.Embedder.Type {
	case "fastembed", "":
		cfg.Embedder.Type = "fastembed"
		if cfg.Embedder.FastEmbed == nil {
			cfg.Embedder.FastEmbed = &FastEmbedConfig{}
		}
		if cfg.Embedder.FastEmbed.Model == "" {
			cfg.Embedder.FastEmbed.Model = DefaultEmbeddingModel
		}
		if cfg.Embedder.FastEmbed.CacheDir == "" {
			cfg.Embedder.FastEmbed.CacheDir = "local_cache"
		}
		if cfg.Embedder.FastEmbed.MaxLength == 0 {
			cfg.Embedder.FastEmbed.MaxLength = 512
		}
		if cfg.Embedder.FastEmbed.BatchSize == 0 {
			cfg.Embedder.FastEmbed.BatchSize = 256
		}
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}

	switch cfg.Generator.Type {
	case "huggingface", "":
		cfg.Generator.Type = "huggingface"
		if cfg.Generator.HuggingFace == nil {
			cfg.Generator.HuggingFace = &HuggingFaceConfig{}
		}
		if cfg.Generator.HuggingFace.URL == "" {
			cfg.Generator.HuggingFace.URL = DefaultHuggingFaceURL
		}
		if cfg.Generator.HuggingFace.TokenEnv == "" {
			cfg.Generator.HuggingFace.TokenEnv = DefaultTokenEnv
		}
		if cfg.Generator.HuggingFace.TimeoutSecs == 0 {
			cfg.Generator.HuggingFace.TimeoutSecs = DefaultTimeoutSecs
		}
	case "openai":
		if cfg.Generator.OpenAI == nil {
			cfg.Generator.OpenAI = &OpenAIGeneratorConfig{}
		}
		if cfg.Generator.OpenAI.BaseURL == "" {
			cfg.Generator.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Generator.OpenAI.APIKeyEnv == "" {
			cfg.Generator.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Generator.OpenAI.Model == "" {
			cfg.Generator.OpenAI.Model = "gpt-4o-mini"
		}
		if cfg.Generator.OpenAI.TimeoutSecs == 0 {
			cfg.Generator.OpenAI.TimeoutSecs = DefaultTimeoutSecs
		}
	case "extractive":
		if cfg.Generator.Extractive == nil {
			cfg.Generator.Extractive = &ExtractiveConfig{}
		}
		if cfg.Generator.Extractive.MaxSentences == 0 {
			cfg.Generator.Extractive.MaxSentences = 3
		}
	}
}
