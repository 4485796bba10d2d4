// Package aspects implements keyword-driven aspect-based sentiment
// detection. Keyword matching was chosen over a trained model on
// purpose: every label traces to a literal keyword in the text, and the
// detector carries no model dependency.
package aspects

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/normalize"
	"github.com/skaranth/reviewpulse/internal/rules"
	"github.com/skaranth/reviewpulse/internal/sentiment"
)

// Result holds detected aspects and their corrected sentiments.
type Result struct {
	AspectsDetected  []string
	AspectSentiments map[string]*models.AspectDetail
}

// Detector matches precompiled aspect keyword patterns against each
// sentence and scores the matches with negation-aware correction layers.
// Built once at startup, read-only afterwards.
type Detector struct {
	rs     *rules.Ruleset
	norm   *normalize.Normalizer
	scorer *sentiment.Scorer

	// Aspect name -> word-boundary keyword pattern, keywords sorted
	// longest first so "self-service" wins over "service".
	patterns map[string]*regexp.Regexp

	negationWords      map[string]bool
	negativeIndicators map[string]bool
}

func NewDetector(rs *rules.Ruleset, norm *normalize.Normalizer, scorer *sentiment.Scorer) *Detector {
	patterns := make(map[string]*regexp.Regexp, len(rs.AspectKeywords))
	for aspect, keywords := range rs.AspectKeywords {
		sorted := append([]string(nil), keywords...)
		sort.Slice(sorted, func(i, j int) bool {
			if len(sorted[i]) != len(sorted[j]) {
				return len(sorted[i]) > len(sorted[j])
			}
			return sorted[i] < sorted[j]
		})
		quoted := make([]string, len(sorted))
		for i, kw := range sorted {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		patterns[aspect] = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}

	return &Detector{
		rs:                 rs,
		norm:               norm,
		scorer:             scorer,
		patterns:           patterns,
		negationWords:      wordSet(rs.NegationWords),
		negativeIndicators: wordSet(rs.NegativeIndicators),
	}
}

// Detect finds aspects mentioned in the review and scores each one from
// its matched sentences.
func (d *Detector) Detect(text string) Result {
	empty := Result{AspectsDetected: []string{}, AspectSentiments: map[string]*models.AspectDetail{}}
	if strings.TrimSpace(text) == "" {
		return empty
	}

	cleaned := d.norm.Clean(text)
	sentences := splitSentences(cleaned)

	matched := make(map[string][]string)
	for _, sentence := range sentences {
		for _, aspect := range d.rs.AspectOrder {
			if d.patterns[aspect].MatchString(sentence) {
				matched[aspect] = append(matched[aspect], sentence)
			}
		}
	}

	result := empty
	for _, aspect := range d.rs.AspectOrder {
		hits, ok := matched[aspect]
		if !ok {
			continue
		}

		var sum float64
		for _, sentence := range hits {
			sum += d.scoreSentence(sentence, aspect)
		}
		avg := sum / float64(len(hits))

		var label models.AspectSentiment
		switch {
		case avg > d.rs.PositiveThreshold:
			label = models.AspectPositive
		case avg < d.rs.NegativeThreshold:
			label = models.AspectNegative
		default:
			label = models.AspectNeutral
		}

		mentions := hits
		if len(mentions) > models.MaxAspectMentions {
			mentions = mentions[:models.MaxAspectMentions]
		}

		result.AspectsDetected = append(result.AspectsDetected, aspect)
		result.AspectSentiments[aspect] = &models.AspectDetail{
			Sentiment: label,
			Score:     round4(avg),
			Mentions:  append([]string(nil), mentions...),
		}
	}

	return result
}

// scoreSentence scores one sentence for one aspect, applying correction
// layers on top of the raw compound:
//
//  1. Negation flip: a positive score with sentence-local negation is
//     likely wrong ("do not expect hygiene" reads positive raw).
//  2. Forbidden positive: complaint-sensitive aspects with negative
//     indicators present are clamped to a bounded negative. "Hygiene is
//     a big concern" scores positive raw because "big" carries mild
//     positive valence.
//  3. Indicator clamp: any aspect's score is capped at 0 when
//     indicators are present.
//  4. Floor: indicator-bearing sentences never end exactly neutral.
func (d *Detector) scoreSentence(sentence, aspect string) float64 {
	compound := d.scorer.Compound(d.norm.RewriteHinglish(sentence))

	words := strings.Fields(strings.ToLower(sentence))
	hasNegation := containsAny(d.negationWords, words)
	hasIndicators := containsAny(d.negativeIndicators, words)

	if compound > 0 && hasNegation {
		compound = -compound
	}

	if compound > 0 && hasIndicators && d.rs.ComplaintSensitiveAspects[aspect] {
		// We know it is a complaint but not how severe.
		compound = -0.3
	}

	if compound > 0 && hasIndicators {
		compound = 0
	}

	if compound >= 0 && hasIndicators {
		compound = -0.1
	}

	return compound
}

var (
	sentenceEndPattern = regexp.MustCompile(`([.!?])\s+`)
	newlineRunPattern  = regexp.MustCompile(`\n+`)
	listMarkerPattern  = regexp.MustCompile(`(\d+\.\s)`)
)

const sentenceBreak = "\x00"

// splitSentences splits on sentence-ending punctuation, newline runs,
// and numbered-list markers ("1. Food is good 2. Service is bad").
// Always returns at least one element.
func splitSentences(text string) []string {
	marked := listMarkerPattern.ReplaceAllString(text, sentenceBreak+"$1")
	marked = sentenceEndPattern.ReplaceAllString(marked, "$1"+sentenceBreak)
	marked = newlineRunPattern.ReplaceAllString(marked, sentenceBreak)

	var sentences []string
	for _, part := range strings.Split(marked, sentenceBreak) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func containsAny(set map[string]bool, words []string) bool {
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}
