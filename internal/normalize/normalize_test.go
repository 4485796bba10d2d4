package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skaranth/reviewpulse/internal/rules"
)

func newTestNormalizer() *Normalizer {
	return New(rules.Default())
}

func TestClean_EmptyInput(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "", n.Clean(""))
	assert.Equal(t, "", n.Clean("   \n\t  "))
}

func TestClean_ExpandsContractions(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"don't expect much", "do not expect much"},
		{"Don't expect much", "do not expect much"},
		{"it's okay, isn't it", "it is okay, is not it"},
		{"can’t complain", "cannot complain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Clean(tt.in), "input: %q", tt.in)
	}
}

func TestClean_StripsURLs(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "great food", n.Clean("great food https://example.com/menu"))
	assert.Equal(t, "see menu here", n.Clean("see [menu here](https://example.com)"))
	assert.Equal(t, "good", n.Clean("good www.example.com"))
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "line one line two", n.Clean("line one\n\n line   two"))
}

func TestClean_KeepsPunctuationAndCase(t *testing.T) {
	n := newTestNormalizer()

	// Punctuation and capitalization carry intensity signal for the
	// lexicon scorer; cleaning must not touch them.
	assert.Equal(t, "AMAZING food!!!", n.Clean("AMAZING food!!!"))
}

func TestClean_NFCNormalization(t *testing.T) {
	n := newTestNormalizer()

	// e + combining acute becomes the composed é.
	assert.Equal(t, "café", n.Clean("café"))
}

func TestRewriteHinglish(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"khana was bakwas", "food was rubbish"},
		{"bahut achha", "very good"},
		{"Khana achha hai", "food good hai"},
		{"nothing hinglish here", "nothing hinglish here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.RewriteHinglish(tt.in), "input: %q", tt.in)
	}
}

func TestRewriteHinglish_WordBoundaries(t *testing.T) {
	n := newTestNormalizer()

	// "kamra" must not have its "kam" rewritten.
	assert.Equal(t, "kamra", n.RewriteHinglish("kamra"))
}

func TestHinglishBoost(t *testing.T) {
	n := newTestNormalizer()

	assert.InDelta(t, -2.5, n.HinglishBoost("total bakwas"), 1e-9)
	assert.InDelta(t, 3.0, n.HinglishBoost("zabardast dosa"), 1e-9)
	// Mean of bakwas (-2.5) and zabardast (+3.0).
	assert.InDelta(t, 0.25, n.HinglishBoost("bakwas but zabardast"), 1e-9)
	assert.Equal(t, 0.0, n.HinglishBoost("plain english review"))
	assert.Equal(t, 0.0, n.HinglishBoost(""))
}

func TestHinglishBoost_CountsRepeatedWordOnce(t *testing.T) {
	n := newTestNormalizer()

	assert.InDelta(t, -2.5, n.HinglishBoost("bakwas bakwas bakwas"), 1e-9)
}
