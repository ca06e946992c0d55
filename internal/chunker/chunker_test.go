package chunker

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/domain"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%04d", i)
	}
	return strings.Join(parts, " ")
}

func TestRecursive_ShortTextIsOneChunk(t *testing.T) {
	doc := domain.Document{ID: "d1", Content: "The cat sat on the mat. It was a sunny day."}

	chunks, err := NewRecursive(500, 50).Chunk(doc)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Content, chunks[0].Text)
	assert.Equal(t, "d1", chunks[0].DocumentID)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestRecursive_RespectsMaxLength(t *testing.T) {
	inputs := map[string]string{
		"words":      words(400),
		"paragraphs": strings.Repeat("A short paragraph about nothing much.\n\n", 60),
		"no spaces":  strings.Repeat("x", 1730),
		"unicode":    strings.Repeat("ünïcödé wörds ", 120),
	}
	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			chunks, err := NewRecursive(500, 50).Chunk(domain.Document{Content: text})
			require.NoError(t, err)
			require.Greater(t, len(chunks), 1)
			for i, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c.Text), 500, "chunk %d", i)
				assert.Equal(t, i, c.Index)
			}
		})
	}
}

func TestRecursive_RandomTextStaysWithinMaxLength(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seps := []string{" ", "\n", "\n\n", ". "}
	c := NewRecursive(500, 50)

	for doc := 0; doc < 300; doc++ {
		var b strings.Builder
		for run := rng.Intn(200) + 1; run > 0; run-- {
			b.WriteString(strings.Repeat("a", rng.Intn(80)+1))
			b.WriteString(seps[rng.Intn(len(seps))])
		}
		chunks, err := c.Chunk(domain.Document{Content: b.String()})
		require.NoError(t, err)
		for i, ch := range chunks {
			require.LessOrEqual(t, utf8.RuneCountInString(ch.Text), 500, "doc %d chunk %d", doc, i)
			require.NotEmpty(t, ch.Text)
			require.Equal(t, i, ch.Index)
		}
	}
}

func TestRecursive_BoundCutsOversizedSplits(t *testing.T) {
	c := NewRecursive(10, 3)

	assert.Equal(t, []string{"short"}, c.bound("short"))
	assert.Equal(t, []string{"abcdefghij", "hijklmnopq", "opqrstu"}, c.bound("abcdefghijklmnopqrstu"))
	assert.Equal(t, []string{"äöüäöüäöüä", "öüäöüäöü"}, c.bound("äöüäöüäöüäöüäöü"))
}

func TestRecursive_ConsecutiveChunksOverlap(t *testing.T) {
	chunks, err := NewRecursive(500, 50).Chunk(domain.Document{Content: words(400)})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		first := strings.Fields(chunks[i].Text)[0]
		assert.Contains(t, prev, first, "chunk %d should start inside chunk %d", i, i-1)
		assert.NotEqual(t, strings.Fields(prev)[0], first)
	}
}

func TestRecursive_PrefersParagraphBoundaries(t *testing.T) {
	p1 := strings.Repeat("alpha ", 60)
	p2 := strings.Repeat("beta ", 60)
	chunks, err := NewRecursive(500, 50).Chunk(domain.Document{Content: p1 + "\n\n" + p2})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.NotContains(t, chunks[0].Text, "beta")
	assert.NotContains(t, chunks[1].Text, "alpha")
}

func TestRecursive_EmptyDocument(t *testing.T) {
	chunks, err := NewRecursive(500, 50).Chunk(domain.Document{Content: ""})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSentenceChunker_PacksSentences(t *testing.T) {
	doc := domain.Document{ID: "d", Content: "One is here. Two is here. Three is here. Four"}

	chunks, err := NewSentenceChunker(30, 1).Chunk(doc)
	require.NoError(t, err)

	var texts []string
	for _, c := range chunks {
		texts = append(texts, c.Text)
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Text), 30)
	}
	assert.Equal(t, []string{
		"One is here. Two is here.",
		"Two is here. Three is here.",
		"Three is here. Four",
	}, texts)
}

func TestSentenceChunker_HardCutsLongSentences(t *testing.T) {
	doc := domain.Document{Content: strings.Repeat("a", 25) + "."}

	chunks, err := NewSentenceChunker(10, 0).Chunk(doc)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "aaaaaaaaaa", chunks[0].Text)
	assert.Equal(t, "aaaaa.", chunks[2].Text)
}

func TestSentenceChunker_Blank(t *testing.T) {
	chunks, err := NewSentenceChunker(100, 1).Chunk(domain.Document{Content: "  \n "})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
