package extractive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/domain"
)

func TestGenerate_PicksSentenceMatchingQuestion(t *testing.T) {
	g := New(1)
	reply, err := g.Generate(context.Background(), domain.GenerateRequest{
		Question: "What is the capital of France?",
		Passages: []string{
			"Berlin is the capital of Germany. It has many museums.",
			"Paris is the capital of France.",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReplySummary, reply.Kind)
	assert.Equal(t, "Paris is the capital of France.", reply.String())
}

func TestGenerate_KeepsOriginalOrder(t *testing.T) {
	g := New(5)
	reply, err := g.Generate(context.Background(), domain.GenerateRequest{
		Question: "cats",
		Passages: []string{"Cats purr. Dogs bark.", "Cats sleep"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cats purr. Dogs bark. Cats sleep", reply.Text)
}

func TestGenerate_NoPassages(t *testing.T) {
	reply, err := New(3).Generate(context.Background(), domain.GenerateRequest{Question: "anything"})
	require.NoError(t, err)
	assert.Empty(t, reply.Text)
}
