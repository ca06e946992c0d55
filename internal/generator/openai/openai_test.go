package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/domain"
)

func newGenerator(t *testing.T, status int, body string) *Generator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "the prompt", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	g, err := New(Config{BaseURL: srv.URL + "/v1", APIKey: "sk-test", Model: "test-model"})
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	g := newGenerator(t, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Paris."},"finish_reason":"stop"}]}`)

	reply, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "the prompt"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyGenerated, reply.Kind)
	assert.Equal(t, "Paris.", reply.String())
}

func TestGenerate_APIErrorBecomesReply(t *testing.T) {
	g := newGenerator(t, http.StatusServiceUnavailable, `{"error":{"message":"Service Unavailable","type":"server_error"}}`)

	reply, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "the prompt"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyAPIError, reply.Kind)
	assert.Contains(t, reply.String(), "503")
	assert.Contains(t, reply.String(), "Service Unavailable")
}

func TestGenerate_NoChoices(t *testing.T) {
	g := newGenerator(t, http.StatusOK, `{"id":"1","choices":[]}`)

	reply, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "the prompt"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyUnrecognized, reply.Kind)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
