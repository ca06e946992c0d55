package chunker

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"ragbot/internal/domain"
)

// Recursive splits on paragraph, then line, then word boundaries, and finally
// cuts characters, keeping every chunk within chunkSize runes.
type Recursive struct {
	splitter textsplitter.RecursiveCharacter
	size     int
	overlap  int
}

// NewRecursive creates a recursive character chunker.
func NewRecursive(chunkSize, chunkOverlap int) *Recursive {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &Recursive{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
		size:    chunkSize,
		overlap: chunkOverlap,
	}
}

func (c *Recursive) Chunk(document domain.Document) ([]domain.Chunk, error) {
	texts, err := c.splitter.SplitText(document.Content)
	if err != nil {
		return nil, err
	}
	chunks := make([]domain.Chunk, 0, len(texts))
	for _, t := range texts {
		for _, piece := range c.bound(t) {
			if piece == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{DocumentID: document.ID, Text: piece, Index: len(chunks)})
		}
	}
	return chunks, nil
}

// bound cuts a split that came back longer than size runes into windows of
// size runes overlapping by overlap. The splitter's merge step can overshoot
// by a few characters after dropping overlap.
func (c *Recursive) bound(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}
	step := c.size - c.overlap
	var out []string
	for start := 0; ; start += step {
		end := min(start+c.size, len(runes))
		out = append(out, strings.TrimSpace(string(runes[start:end])))
		if end == len(runes) {
			return out
		}
	}
}
