package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/opinion"
	"github.com/skaranth/reviewpulse/internal/rules"
)

// stubProvider returns a fixed opinion for every review.
type stubProvider struct {
	op *models.Opinion
}

func (s stubProvider) Analyze(_ context.Context, _ models.Review) *models.Opinion {
	return s.op
}

func deterministicAnalyzer() *Analyzer {
	return New(rules.Default(), opinion.Noop{})
}

func review(id, text string, rating int) models.Review {
	return models.Review{
		ReviewID:   id,
		Rating:     rating,
		ReviewText: text,
		ReviewDate: "2024-03-15",
	}
}

func TestAnalyzeReview_InvalidInput(t *testing.T) {
	a := deterministicAnalyzer()

	_, err := a.AnalyzeReview(context.Background(), review("", "fine", 4))
	assert.Error(t, err)

	_, err = a.AnalyzeReview(context.Background(), review("r-1", "fine", 0))
	assert.Error(t, err)
}

func TestAnalyzeReview_EmptyTextUsesRating(t *testing.T) {
	a := deterministicAnalyzer()

	rec, err := a.AnalyzeReview(context.Background(), review("r-1", "", 5))
	require.NoError(t, err)

	assert.Equal(t, models.SentimentPositive, rec.OverallSentiment)
	assert.Equal(t, models.ConfidenceLow, rec.Confidence)
	assert.True(t, rec.RatingOverride)
	assert.False(t, rec.Urgent)
	assert.Equal(t, models.UrgencyReasonNone, rec.UrgencyReason)
	assert.Empty(t, rec.AspectsDetected)
	assert.Nil(t, rec.LLMSentiment)
	assert.Nil(t, rec.LLMReasoning)
}

func TestAnalyzeReview_SarcasticNegationComplaint(t *testing.T) {
	a := deterministicAnalyzer()

	rec, err := a.AnalyzeReview(context.Background(),
		review("r-1", "Do not expect food, hygiene, or service to actually exist here.", 1))
	require.NoError(t, err)

	// The rating ceiling guarantees the verdict whatever the lexicon
	// made of the sarcasm.
	assert.Equal(t, models.SentimentNegative, rec.OverallSentiment)

	assert.Contains(t, rec.AspectsDetected, "food")
	assert.Contains(t, rec.AspectsDetected, "hygiene")
	assert.Contains(t, rec.AspectsDetected, "service")

	// Complaint-sensitive aspects cannot stay positive on a 1-star
	// review.
	assert.Equal(t, models.AspectNegative, rec.AspectSentiments["hygiene"].Sentiment)
	assert.Equal(t, models.AspectNegative, rec.AspectSentiments["service"].Sentiment)
}

func TestAnalyzeReview_DeadFlyIsUrgent(t *testing.T) {
	a := deterministicAnalyzer()

	rec, err := a.AnalyzeReview(context.Background(),
		review("r-1", "Great, just great. Found a dead fly in my sambar.", 1))
	require.NoError(t, err)

	assert.True(t, rec.Urgent)
	assert.Equal(t, rules.CategoryHygieneSevere, rec.UrgencyReason)
	assert.Equal(t, 9, rec.SeverityScore)
	assert.Equal(t, models.SentimentNegative, rec.OverallSentiment)
	assert.Contains(t, rec.AspectsDetected, "hygiene")
	assert.Equal(t, models.AspectNegative, rec.AspectSentiments["hygiene"].Sentiment)
}

func TestAnalyzeReview_DisagreeingSafetyOpinionCapsConfidence(t *testing.T) {
	provider := stubProvider{op: &models.Opinion{
		OverallSentiment: models.SentimentNegative,
		Reasoning:        "praise is sarcastic, structural hazard described",
		Aspects: []models.OpinionAspect{
			{Aspect: "safety", Sentiment: models.AspectNegative, Evidence: "no railing on the upper floor"},
		},
	}}
	a := New(rules.Default(), provider)

	rec, err := a.AnalyzeReview(context.Background(),
		review("r-1", "Absolutely loved it, wonderful food and a great wonderful amazing evening!", 5))
	require.NoError(t, err)

	assert.Equal(t, models.SentimentNegative, rec.OverallSentiment)
	assert.NotEqual(t, models.ConfidenceHigh, rec.Confidence)
	require.NotNil(t, rec.LLMSentiment)
	assert.Equal(t, models.SentimentNegative, *rec.LLMSentiment)

	detail := rec.AspectSentiments["safety"]
	require.NotNil(t, detail)
	assert.Equal(t, models.AspectNegative, detail.Sentiment)
	assert.Equal(t, []string{"no railing on the upper floor"}, detail.Mentions)
}

func TestAnalyzeBatch_OrderDuplicatesAndFailures(t *testing.T) {
	a := deterministicAnalyzer()

	reviews := []models.Review{
		review("r-1", "", 5),
		review("r-1", "duplicate id, must be skipped", 3),
		review("r-2", "fine", 0), // invalid rating, skipped
		review("r-3", "Found a dead fly in my sambar.", 1),
		review("r-4", "", 3),
	}

	records := a.AnalyzeBatch(context.Background(), reviews, 3)

	require.Len(t, records, 3)
	assert.Equal(t, "r-1", records[0].ReviewID)
	assert.Equal(t, "r-3", records[1].ReviewID)
	assert.Equal(t, "r-4", records[2].ReviewID)

	assert.Equal(t, models.SentimentPositive, records[0].OverallSentiment)
	assert.True(t, records[1].Urgent)
	assert.Equal(t, models.SentimentNeutral, records[2].OverallSentiment)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	a := deterministicAnalyzer()

	assert.Nil(t, a.AnalyzeBatch(context.Background(), nil, 4))
}

func TestAnalyzeBatch_RecordInvariants(t *testing.T) {
	a := deterministicAnalyzer()

	reviews := []models.Review{
		review("r-1", "", 5),
		review("r-2", "The staff was rude and kept shouting at customers.", 1),
		review("r-3", "Got food poisoning, was vomiting all night.", 2),
		review("r-4", "Nice place, will come again!", 5),
		review("r-5", "Average food, nothing special.", 3),
		review("r-6", "So great that I will file a complaint to the FSSAI.", 4),
		review("r-7", "Khana bahut accha tha, staff was friendly.", 5),
		review("r-8", "Saw a cockroach near the counter, tables were not clean.", 1),
	}

	records := a.AnalyzeBatch(context.Background(), reviews, 4)
	require.Len(t, records, len(reviews))

	for _, rec := range records {
		if rec.Urgent {
			assert.Equal(t, models.SentimentNegative, rec.OverallSentiment,
				"%s: urgent records must read negative", rec.ReviewID)
			assert.NotEqual(t, models.UrgencyReasonNone, rec.UrgencyReason, rec.ReviewID)
		}
		if rec.SeverityScore >= 7 {
			assert.Equal(t, models.SentimentNegative, rec.OverallSentiment,
				"%s: high severity must read negative", rec.ReviewID)
		}
		if rec.Rating <= 2 {
			assert.NotEqual(t, models.SentimentPositive, rec.OverallSentiment,
				"%s: low rating forbids positive", rec.ReviewID)
		}
		if rec.Rating == 3 {
			assert.NotEqual(t, models.SentimentPositive, rec.OverallSentiment,
				"%s: mid rating forbids positive", rec.ReviewID)
		}
		if rec.UrgencyReason == rules.CategoryFoodPoisoning {
			assert.NotEqual(t, models.ConfidenceHigh, rec.Confidence,
				"%s: poisoning reports never read high confidence", rec.ReviewID)
		}

		assert.True(t, models.ValidConfidence(rec.Confidence), rec.ReviewID)
		assert.GreaterOrEqual(t, rec.SeverityScore, 0, rec.ReviewID)
		assert.LessOrEqual(t, rec.SeverityScore, 10, rec.ReviewID)
		assert.LessOrEqual(t, len(rec.MatchedPatterns), models.MaxMatchedPatterns, rec.ReviewID)
		for aspect, detail := range rec.AspectSentiments {
			assert.LessOrEqual(t, len(detail.Mentions), models.MaxAspectMentions,
				"%s/%s", rec.ReviewID, aspect)
		}
	}
}

func TestAnalyzeReview_EnforcedTwiceIsStable(t *testing.T) {
	a := deterministicAnalyzer()

	rec, err := a.AnalyzeReview(context.Background(),
		review("r-1", "Got food poisoning here, terrible.", 1))
	require.NoError(t, err)

	again, err := a.enforcer.Enforce(rec)
	require.NoError(t, err)

	assert.Equal(t, rec.OverallSentiment, again.OverallSentiment)
	assert.Equal(t, rec.Confidence, again.Confidence)
	assert.Equal(t, rec.AspectSentiments, again.AspectSentiments)
}
