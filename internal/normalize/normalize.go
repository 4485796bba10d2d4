// Package normalize cleans raw review text for lexicon scoring.
//
// The cleaning is deliberately conservative:
//   - Punctuation is kept: VADER uses "!" and "?" to boost intensity.
//   - Stop words are kept: VADER needs context ("not good" != "good").
//   - Case is kept: VADER treats ALL-CAPS as emphasis.
//
// What does get done: NFC normalization, URL stripping, contraction
// expansion (downstream negation detection is word-based), and
// whitespace collapse. A second pass rewrites Hinglish content words to
// English equivalents so the lexicon can score them.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/skaranth/reviewpulse/internal/rules"
)

var (
	// Markdown-style links sometimes survive copy-paste; keep the text,
	// drop the target.
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern    = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
)

// Normalizer applies the cleaning and Hinglish-rewrite passes. Build one
// per ruleset at startup; it is read-only afterwards and safe for
// concurrent use.
type Normalizer struct {
	rs *rules.Ruleset

	contractionPattern *regexp.Regexp
	contractions       map[string]string

	hinglishPattern *regexp.Regexp
	hinglishWords   map[string]string

	boostPattern *regexp.Regexp
}

// New compiles the normalizer's patterns from the ruleset.
func New(rs *rules.Ruleset) *Normalizer {
	return &Normalizer{
		rs:                 rs,
		contractionPattern: compileWordAlternation(keys(rs.Contractions), false),
		contractions:       rs.Contractions,
		hinglishPattern:    compileWordAlternation(keys(rs.HinglishToEnglish), true),
		hinglishWords:      rs.HinglishToEnglish,
		boostPattern:       compileWordAlternation(keysFloat(rs.HinglishSentiment), true),
	}
}

// Clean prepares raw text for scoring. Order matters: contractions must
// be expanded after URL removal but before whitespace collapse. Empty or
// whitespace-only input short-circuits to "".
func (n *Normalizer) Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// NFC keeps composed characters (é stays é, not e + combining mark),
	// so rupee signs and accented menu names compare consistently.
	text = norm.NFC.String(text)

	text = mdLinkPattern.ReplaceAllString(text, "$1")
	text = urlPattern.ReplaceAllString(text, "")

	text = n.contractionPattern.ReplaceAllStringFunc(text, func(m string) string {
		if expanded, ok := n.contractions[strings.ToLower(m)]; ok {
			return expanded
		}
		return m
	})

	// Collapse runs of whitespace. Google reviews often carry double
	// newlines that confuse sentence splitting.
	return strings.Join(strings.Fields(text), " ")
}

// RewriteHinglish replaces known Hinglish content words with English
// equivalents so VADER can score the surrounding context. Stop words and
// particles are left alone.
func (n *Normalizer) RewriteHinglish(text string) string {
	return n.hinglishPattern.ReplaceAllStringFunc(text, func(m string) string {
		if english, ok := n.hinglishWords[strings.ToLower(m)]; ok {
			return english
		}
		return m
	})
}

// HinglishBoost scans text for Hinglish sentiment words and returns the
// mean of the matched polarities, or 0 when none match. The mean (not
// the sum) keeps long Hinglish-heavy reviews from getting
// disproportionate boosts. Each distinct word counts once.
func (n *Normalizer) HinglishBoost(text string) float64 {
	matches := n.boostPattern.FindAllString(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(matches))
	var sum float64
	var count int
	for _, word := range matches {
		if seen[word] {
			continue
		}
		seen[word] = true
		if score, ok := n.rs.HinglishSentiment[word]; ok {
			sum += score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// compileWordAlternation builds a case-insensitive word-boundary
// alternation, longest word first so variants like "mehenga" win over
// shorter prefixes.
func compileWordAlternation(words []string, boundaries bool) *regexp.Regexp {
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}

	pattern := `(?i)(` + strings.Join(quoted, "|") + `)`
	if boundaries {
		pattern = `(?i)\b(` + strings.Join(quoted, "|") + `)\b`
	}
	return regexp.MustCompile(pattern)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysFloat(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
