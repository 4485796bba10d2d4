// Package sentiment produces the overall review-level sentiment label
// from a hybrid of lexicon scoring and deterministic guardrails.
package sentiment

import "github.com/jonreiter/govader"

// Scorer wraps the VADER intensity analyzer. The analyzer's internal
// lexicon is built once and read-only afterwards, so a single Scorer is
// shared across all workers.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the normalized valence score in [-1, 1].
func (s *Scorer) Compound(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
