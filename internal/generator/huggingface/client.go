// Package huggingface talks to the hosted Inference API.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ragbot/internal/domain"
	"ragbot/internal/logging"
)

// Config configures the inference client.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client posts prompts to a single model endpoint. Each call is one attempt.
type Client struct {
	url    string
	token  string
	client *http.Client
	log    *zap.Logger
}

// New creates a client. A zero Timeout means 60 seconds.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		t := cfg.Timeout
		if t == 0 {
			t = 60 * time.Second
		}
		hc = &http.Client{Timeout: t}
	}
	return &Client{url: cfg.URL, token: cfg.Token, client: hc, log: logging.OrNop(cfg.Logger)}
}

func (c *Client) Name() string { return "huggingface" }

// Call posts {"inputs": inputs} and returns the status code and raw body.
// Transport failures, including timeouts, are returned as errors.
func (c *Client) Call(ctx context.Context, inputs string) (int, []byte, error) {
	payload, err := json.Marshal(map[string]string{"inputs": inputs})
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("huggingface request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("huggingface response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Generate sends the prompt and classifies the response.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Reply, error) {
	status, body, err := c.Call(ctx, req.Prompt)
	if err != nil {
		return domain.Reply{}, err
	}
	if status != http.StatusOK {
		c.log.Warn("inference api error", zap.Int("status", status))
		return domain.Reply{Kind: domain.ReplyAPIError, StatusCode: status, Raw: string(body)}, nil
	}
	reply, err := ParseReply(body)
	if err != nil {
		return domain.Reply{}, err
	}
	reply.StatusCode = status
	if reply.Kind == domain.ReplyUnrecognized {
		c.log.Warn("unrecognized inference response", zap.ByteString("body", body))
	}
	return reply, nil
}

// ParseReply classifies a successful response body. Bodies that are not JSON
// are an error; JSON of any other shape is ReplyUnrecognized.
func ParseReply(body []byte) (domain.Reply, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.Reply{}, fmt.Errorf("decode inference response: %w", err)
	}
	raw := string(bytes.TrimSpace(body))
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return domain.Reply{Kind: domain.ReplyUnrecognized, Raw: raw}, nil
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return domain.Reply{Kind: domain.ReplyUnrecognized, Raw: raw}, nil
	}
	if s, ok := first["generated_text"].(string); ok {
		return domain.Reply{Kind: domain.ReplyGenerated, Text: s, Raw: raw}, nil
	}
	if s, ok := first["summary_text"].(string); ok {
		return domain.Reply{Kind: domain.ReplySummary, Text: s, Raw: raw}, nil
	}
	return domain.Reply{Kind: domain.ReplyUnrecognized, Raw: raw}, nil
}
