package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"ragbot/internal/domain"
)

// SentenceChunker packs whole sentences into chunks of at most maxChars runes,
// repeating the last overlapSentences sentences at the start of the next chunk.
type SentenceChunker struct {
	maxChars         int
	overlapSentences int
	splitter         *regexp.Regexp
}

func NewSentenceChunker(maxChars, overlapSentences int) *SentenceChunker {
	if maxChars <= 0 {
		maxChars = 500
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	return &SentenceChunker{
		maxChars:         maxChars,
		overlapSentences: overlapSentences,
		splitter:         regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	sentences := c.sentences(document.Content)
	if len(sentences) == 0 {
		return nil, nil
	}

	var (
		chunks  []domain.Chunk
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			Text:       strings.Join(current, " "),
			Index:      len(chunks),
		})
	}
	for _, s := range sentences {
		if len(current) > 0 && joinedLen(current)+1+utf8.RuneCountInString(s) > c.maxChars {
			flush()
			current = c.carry(current, s)
		}
		current = append(current, s)
	}
	flush()
	return chunks, nil
}

// carry keeps the trailing overlap sentences that still leave room for next.
func (c *SentenceChunker) carry(current []string, next string) []string {
	n := c.overlapSentences
	if n > len(current) {
		n = len(current)
	}
	kept := append([]string(nil), current[len(current)-n:]...)
	for len(kept) > 0 && joinedLen(kept)+1+utf8.RuneCountInString(next) > c.maxChars {
		kept = kept[1:]
	}
	return kept
}

// sentences trims the matched sentences and hard-cuts any longer than maxChars.
func (c *SentenceChunker) sentences(text string) []string {
	raw := c.splitter.FindAllString(text, -1)
	if rest := strings.TrimSpace(tail(text, raw)); rest != "" {
		raw = append(raw, rest)
	}
	var out []string
	for _, s := range raw {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		for utf8.RuneCountInString(s) > c.maxChars {
			r := []rune(s)
			out = append(out, string(r[:c.maxChars]))
			s = strings.TrimSpace(string(r[c.maxChars:]))
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// tail returns the text after the last matched sentence, which has no
// terminating punctuation.
func tail(text string, matched []string) string {
	if len(matched) == 0 {
		return text
	}
	last := matched[len(matched)-1]
	idx := strings.LastIndex(text, last)
	if idx < 0 {
		return ""
	}
	return text[idx+len(last):]
}

func joinedLen(parts []string) int {
	n := 0
	for i, p := range parts {
		if i > 0 {
			n++
		}
		n += utf8.RuneCountInString(p)
	}
	return n
}
