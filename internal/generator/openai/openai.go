// Package openai answers prompts with an OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"ragbot/internal/domain"
)

// Config configures the chat completion backend.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Generator sends the assembled prompt as a single user message.
type Generator struct {
	client *goopenai.Client
	model  string
}

// New creates a generator. A zero Timeout means 60 seconds.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai generator: missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Generator{client: goopenai.NewClientWithConfig(oc), model: cfg.Model}, nil
}

func (g *Generator) Name() string { return "openai/" + g.model }

// Generate returns ReplyAPIError for HTTP-level failures reported by the API
// and an error for transport failures.
func (g *Generator) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Reply, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return domain.Reply{Kind: domain.ReplyAPIError, StatusCode: apiErr.HTTPStatusCode, Raw: apiErr.Message}, nil
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return domain.Reply{Kind: domain.ReplyAPIError, StatusCode: reqErr.HTTPStatusCode, Raw: string(reqErr.Body)}, nil
		}
		return domain.Reply{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Reply{Kind: domain.ReplyUnrecognized, StatusCode: http.StatusOK, Raw: "no choices returned"}, nil
	}
	return domain.Reply{Kind: domain.ReplyGenerated, StatusCode: http.StatusOK, Text: resp.Choices[0].Message.Content}, nil
}
