package sentiment

import (
	"math"
	"strings"

	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/normalize"
	"github.com/skaranth/reviewpulse/internal/rules"
)

// Result is a classified review's overall sentiment with its audit trail.
type Result struct {
	OverallSentiment models.Sentiment
	VaderCompound    float64
	FinalScore       float64
	Confidence       models.Confidence
	RatingOverride   bool
}

// Classifier combines the lexicon score with guardrails and the
// rating-derived ceiling.
//
// VADER is treated as a weak signal only. Known failure modes and their
// guardrails:
//   - Negation blindness: "do not expect food, hygiene, or service to
//     actually exist" scores strongly positive because the bag of words
//     sums "expect", "actually", "exist". Flip when negation plus a
//     complaint keyword is present.
//   - Long complaints: detailed complaint text accumulates incidental
//     positive words; clamp to at most mildly negative.
//   - Low-rating contradiction: 1-2 stars with a strongly positive text
//     score means the text analysis is wrong, not the reviewer.
//
// The rating ceiling never upgrades a Negative text verdict: genuine
// complaints from otherwise-satisfied reviewers must survive.
type Classifier struct {
	rs     *rules.Ruleset
	norm   *normalize.Normalizer
	scorer *Scorer

	negationWords      map[string]bool
	negativeIndicators map[string]bool
}

func NewClassifier(rs *rules.Ruleset, norm *normalize.Normalizer, scorer *Scorer) *Classifier {
	return &Classifier{
		rs:                 rs,
		norm:               norm,
		scorer:             scorer,
		negationWords:      wordSet(rs.NegationWords),
		negativeIndicators: wordSet(rs.NegativeIndicators),
	}
}

// Classify scores one review's text against its star rating.
func (c *Classifier) Classify(text string, rating int) Result {
	// Empty or whitespace-only review: the rating is the only signal.
	if strings.TrimSpace(text) == "" {
		return Result{
			OverallSentiment: c.sentimentFromRating(rating),
			Confidence:       models.ConfidenceLow,
			RatingOverride:   true,
		}
	}

	cleaned := c.norm.Clean(text)
	rewritten := c.norm.RewriteHinglish(cleaned)

	vaderCompound := c.scorer.Compound(rewritten)

	boost := c.norm.HinglishBoost(text)
	finalScore := vaderCompound + boost*c.rs.HinglishWeight
	finalScore = math.Max(-1.0, math.Min(1.0, finalScore))

	finalScore = c.applyGuardrails(finalScore, cleaned, rating)

	ratingOverride := false
	var sentiment models.Sentiment

	if math.Abs(finalScore) < c.rs.RatingOverrideZone {
		// Low text confidence: let the star rating decide. Handles very
		// short reviews ("Ok.", "Good") where the lexicon has no signal.
		sentiment = c.sentimentFromRating(rating)
		ratingOverride = true
	} else if finalScore > c.rs.PositiveThreshold {
		sentiment = models.SentimentPositive
	} else if finalScore < c.rs.NegativeThreshold {
		sentiment = models.SentimentNegative
	} else {
		sentiment = models.SentimentNeutral
	}

	sentiment, clamped := c.enforceRatingCeiling(sentiment, rating)
	if clamped {
		ratingOverride = true
	}

	return Result{
		OverallSentiment: sentiment,
		VaderCompound:    round4(vaderCompound),
		FinalScore:       round4(finalScore),
		Confidence:       c.confidence(vaderCompound, rating, sentiment, cleaned),
		RatingOverride:   ratingOverride,
	}
}

// applyGuardrails clamps or overrides the score when known lexicon
// failure modes are detected. Each guardrail only tightens a
// wrong-positive score, never loosens one.
func (c *Classifier) applyGuardrails(score float64, text string, rating int) float64 {
	words := strings.Fields(strings.ToLower(text))

	hasNegation := containsAny(c.negationWords, words)
	hasNegativeKw := containsAny(c.negativeIndicators, words)
	isLong := len(text) > c.rs.LongReviewThreshold

	// Negation with a positive score and complaint keywords present:
	// the positive score is almost certainly wrong. Flip it.
	if score > 0 && hasNegation && hasNegativeKw {
		score = -math.Abs(score)
	}

	// Long complaint reviews that still score positive: the bag of
	// words accumulated incidental positives. Clamp to mildly negative.
	if score > 0 && isLong && hasNegativeKw {
		score = math.Min(score, -0.1)
	}

	// 1-2 stars with a strongly positive score: the rating is the
	// stronger signal of intent. Clamp to mildly negative.
	if score > 0.5 && rating <= 2 {
		score = -0.2
	}

	// Complaint keywords should not end exactly neutral.
	if score == 0 && hasNegativeKw {
		score = -0.1
	}

	return score
}

func (c *Classifier) sentimentFromRating(rating int) models.Sentiment {
	switch {
	case rating >= c.rs.RatingPositiveMin:
		return models.SentimentPositive
	case rating <= c.rs.RatingNegativeMax:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// enforceRatingCeiling applies the hard upper bound the star rating puts
// on sentiment. Rating 1-2 allows Negative only; rating 3 allows Neutral
// or Negative; rating 4-5 imposes no ceiling. The ceiling only prevents
// going above the allowed band; Negative text sentiment always stands.
func (c *Classifier) enforceRatingCeiling(sentiment models.Sentiment, rating int) (models.Sentiment, bool) {
	if rating <= 2 {
		if sentiment != models.SentimentNegative {
			return models.SentimentNegative, true
		}
	} else if rating == 3 {
		if sentiment == models.SentimentPositive {
			return models.SentimentNeutral, true
		}
	}
	return sentiment, false
}

// confidence produces the categorical confidence label.
//
// HIGH needs the rating direction and text sentiment to agree, a
// strongly polarized lexicon score, and substantial text. Any
// rating/text disagreement caps at LOW: mixed signals are mixed signals
// no matter how loud the text is.
func (c *Classifier) confidence(vaderCompound float64, rating int, sentiment models.Sentiment, text string) models.Confidence {
	var ratingDirection models.Sentiment
	switch {
	case rating <= 2:
		ratingDirection = models.SentimentNegative
	case rating == 3:
		ratingDirection = models.SentimentNeutral
	default:
		ratingDirection = models.SentimentPositive
	}

	ratingAgrees := ratingDirection == sentiment
	vaderStrong := math.Abs(vaderCompound) > 0.5
	hasText := len(strings.TrimSpace(text)) > 50

	switch {
	case ratingAgrees && vaderStrong && hasText:
		return models.ConfidenceHigh
	case ratingAgrees:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
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
