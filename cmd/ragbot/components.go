package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"ragbot/internal/chunker"
	"ragbot/internal/config"
	"ragbot/internal/domain"
	"ragbot/internal/embedding"
	"ragbot/internal/embedding/fastembed"
	openaiemb "ragbot/internal/embedding/openai"
	"ragbot/internal/embedding/tfidf"
	"ragbot/internal/generator/extractive"
	"ragbot/internal/generator/huggingface"
	openaigen "ragbot/internal/generator/openai"
)

func newEmbedder(cfg *config.AppConfig) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "fastembed", "":
		fc := cfg.Embedder.FastEmbed
		if fc == nil {
			return nil, fmt.Errorf("fastembed embedder config missing")
		}
		emb, err := fastembed.New(fastembed.Config{
			Model:     fc.Model,
			CacheDir:  fc.CacheDir,
			MaxLength: fc.MaxLength,
			BatchSize: fc.BatchSize,
		})
		if err != nil {
			return nil, fmt.Errorf("fastembed embedder init failed: %w", err)
		}
		return emb, nil
	case "openai":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		client, err := openaiemb.NewClient(openaiemb.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		return client, nil
	case "tfidf":
		return tfidf.NewEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

// closeEmbedder releases native resources held by embedders that have them.
func closeEmbedder(emb embedding.Embedder) {
	if c, ok := emb.(io.Closer); ok {
		_ = c.Close()
	}
}

func newChunker(cfg *config.AppConfig) (domain.Chunker, error) {
	switch cfg.Chunker.Type {
	case "recursive", "":
		return chunker.NewRecursive(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap), nil
	case "sentence":
		return chunker.NewSentenceChunker(cfg.Chunker.ChunkSize, cfg.Chunker.OverlapSentences), nil
	default:
		return nil, fmt.Errorf("unknown chunker: %s", cfg.Chunker.Type)
	}
}

// newHuggingFace falls back to the default endpoint when another generator is
// configured, so ping always has a target.
func newHuggingFace(cfg *config.AppConfig) (*huggingface.Client, error) {
	hc := cfg.Generator.HuggingFace
	if hc == nil {
		hc = &config.HuggingFaceConfig{
			URL:         config.DefaultHuggingFaceURL,
			TokenEnv:    config.DefaultTokenEnv,
			TimeoutSecs: config.DefaultTimeoutSecs,
		}
	}
	return huggingface.New(huggingface.Config{
		URL:     hc.URL,
		Token:   os.Getenv(hc.TokenEnv),
		Timeout: time.Duration(hc.TimeoutSecs) * time.Second,
		Logger:  logger,
	}), nil
}

func newGenerator(cfg *config.AppConfig) (domain.Generator, error) {
	switch cfg.Generator.Type {
	case "huggingface", "":
		return newHuggingFace(cfg)
	case "openai":
		oc := cfg.Generator.OpenAI
		if oc == nil {
			return nil, fmt.Errorf("openai generator config missing")
		}
		return openaigen.New(openaigen.Config{
			BaseURL: oc.BaseURL,
			APIKey:  os.Getenv(oc.APIKeyEnv),
			Model:   oc.Model,
			Timeout: time.Duration(oc.TimeoutSecs) * time.Second,
		})
	case "extractive":
		sentences := 3
		if cfg.Generator.Extractive != nil {
			sentences = cfg.Generator.Extractive.MaxSentences
		}
		return extractive.New(sentences), nil
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Generator.Type)
	}
}
