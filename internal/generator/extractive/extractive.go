// Package extractive answers offline by picking the retrieved sentences that
// best cover the question.
package extractive

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"ragbot/internal/domain"
)

// Generator ranks sentences by word frequency (stopwords filtered), boosting
// those that share words with the question.
type Generator struct {
	maxSentences  int
	tokenPattern  *regexp.Regexp
	sentenceSplit *regexp.Regexp
	stopwords     map[string]struct{}
}

// New creates an extractive generator returning up to maxSentences sentences.
func New(maxSentences int) *Generator {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Generator{
		maxSentences:  maxSentences,
		tokenPattern:  regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		sentenceSplit: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		stopwords:     defaultStopwords(),
	}
}

func (g *Generator) Name() string { return "extractive" }

func (g *Generator) Generate(_ context.Context, req domain.GenerateRequest) (domain.Reply, error) {
	return domain.Reply{Kind: domain.ReplySummary, Text: g.summarize(req.Question, req.Passages)}, nil
}

func (g *Generator) summarize(question string, passages []string) string {
	var sentences []string
	for _, p := range passages {
		found := g.sentenceSplit.FindAllString(p, -1)
		if len(found) == 0 && strings.TrimSpace(p) != "" {
			found = []string{p}
		}
		for _, s := range found {
			if s = strings.TrimSpace(s); s != "" {
				sentences = append(sentences, s)
			}
		}
	}
	if len(sentences) == 0 {
		return ""
	}

	// Compute word frequencies
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range g.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	asked := map[string]struct{}{}
	for _, tok := range g.tokens(question) {
		asked[tok] = struct{}{}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		toks := g.tokens(sent)
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
			if _, ok := asked[tok]; ok {
				score += 1
			}
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	n := g.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " ")
}

func (g *Generator) tokens(text string) []string {
	raw := g.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, ok := g.stopwords[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"what", "which", "who", "how", "why", "when", "where",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
