package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ragbot/internal/domain"
	"ragbot/internal/embedding"
	"ragbot/internal/logging"
	"ragbot/internal/vectorstore"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// ErrModelMismatch means the corpus was embedded with a different model than
// the one configured for queries.
var ErrModelMismatch = errors.New("embedding model mismatch")

const promptTemplate = "Answer the question based on the context:\n\nContext:\n%s\n\nQuestion: %s\nAnswer:"

// BuildPrompt joins the passages, nearest first, into the instruction sent to
// the generator.
func BuildPrompt(question string, passages []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(passages, "\n"), question)
}

// OpenCorpus loads the artifact at path and makes embedder ready to query it.
// The corpus must have been built with the same model.
func OpenCorpus(path string, embedder embedding.Embedder) (*vectorstore.Corpus, error) {
	corpus, err := vectorstore.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load vector store: %w", err)
	}
	model := corpus.Model()
	if model.Name != embedder.Name() {
		return nil, fmt.Errorf("%w: corpus built with %q, configured %q", ErrModelMismatch, model.Name, embedder.Name())
	}
	if s, ok := embedder.(embedding.Stateful); ok {
		if err := s.Restore(model.State); err != nil {
			return nil, fmt.Errorf("restore embedder: %w", err)
		}
	}
	if d := embedder.Dimension(); d != 0 && d != corpus.Dim() {
		return nil, fmt.Errorf("%w: corpus dimension %d, embedder %d", ErrModelMismatch, corpus.Dim(), d)
	}
	return corpus, nil
}

// Answer is the outcome of one question.
type Answer struct {
	Question string
	Hits     []vectorstore.Hit
	Prompt   string
	Reply    domain.Reply
}

// Assistant answers questions against a loaded corpus. It only reads shared
// state and is safe for concurrent use when its embedder and generator are.
type Assistant struct {
	corpus    *vectorstore.Corpus
	embedder  embedding.Embedder
	generator domain.Generator
	topK      int
	log       *zap.Logger
}

func NewAssistant(corpus *vectorstore.Corpus, embedder embedding.Embedder, generator domain.Generator, topK int, log *zap.Logger) *Assistant {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Assistant{corpus: corpus, embedder: embedder, generator: generator, topK: topK, log: logging.OrNop(log)}
}

// Retrieve returns the k chunks nearest to question, nearest first.
func (a *Assistant) Retrieve(ctx context.Context, question string, k int) ([]vectorstore.Hit, error) {
	vec, err := a.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return a.corpus.Search(vec, k)
}

// Ask retrieves context for question and asks the generator. API failures come
// back inside Answer.Reply; transport failures are returned as errors.
func (a *Assistant) Ask(ctx context.Context, question string) (Answer, error) {
	hits, err := a.Retrieve(ctx, question, a.topK)
	if err != nil {
		return Answer{}, err
	}
	passages := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = h.Text
	}
	ans := Answer{Question: question, Hits: hits, Prompt: BuildPrompt(question, passages)}
	a.log.Debug("retrieved context", zap.Int("hits", len(hits)), zap.String("generator", a.generator.Name()))

	ans.Reply, err = a.generator.Generate(ctx, domain.GenerateRequest{
		Prompt:   ans.Prompt,
		Question: question,
		Passages: passages,
	})
	if err != nil {
		return Answer{}, err
	}
	if ans.Reply.Kind == domain.ReplyAPIError {
		a.log.Warn("generator returned an error status", zap.Int("status", ans.Reply.StatusCode))
	}
	return ans, nil
}

// AskText is Ask reduced to the text shown to the operator.
func (a *Assistant) AskText(ctx context.Context, question string) (string, error) {
	ans, err := a.Ask(ctx, question)
	if err != nil {
		return "", err
	}
	return ans.Reply.String(), nil
}
