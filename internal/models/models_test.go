package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewValidate(t *testing.T) {
	valid := Review{ReviewID: "r-1", Rating: 4, ReviewDate: "2024-03-15"}
	assert.NoError(t, valid.Validate())

	timestamped := Review{ReviewID: "r-2", Rating: 1, ReviewDate: "2024-03-15T18:30:00"}
	assert.NoError(t, timestamped.Validate())

	noDate := Review{ReviewID: "r-3", Rating: 5}
	assert.NoError(t, noDate.Validate())

	assert.Error(t, Review{ReviewID: "  ", Rating: 4}.Validate())
	assert.Error(t, Review{ReviewID: "r-4", Rating: 0}.Validate())
	assert.Error(t, Review{ReviewID: "r-5", Rating: 6}.Validate())
	assert.Error(t, Review{ReviewID: "r-6", Rating: 3, ReviewDate: "15/03/2024"}.Validate())
}

func TestReviewHasText(t *testing.T) {
	assert.True(t, Review{ReviewText: "good"}.HasText())
	assert.False(t, Review{ReviewText: "   "}.HasText())
	assert.False(t, Review{}.HasText())
}

func sampleRecord() *AnalysisRecord {
	llmSentiment := SentimentNegative
	llmReasoning := "sarcasm detected"
	return &AnalysisRecord{
		Review: Review{
			ReviewID:     "r-9",
			ReviewerName: "Priya S",
			Rating:       2,
			ReviewText:   "Great, just great. Found a dead fly in my sambar.",
			ReviewDate:   "2024-03-15",
		},
		OverallSentiment: SentimentNegative,
		VaderCompound:    0.6249,
		FinalScore:       -0.1,
		Confidence:       ConfidenceMedium,
		RatingOverride:   true,
		AspectsDetected:  []string{"food", "hygiene"},
		AspectSentiments: map[string]*AspectDetail{
			"hygiene": {
				Sentiment: AspectNegative,
				Score:     -0.55,
				Mentions:  []string{"Found a dead fly in my sambar."},
			},
		},
		Urgent:          true,
		UrgencyReason:   "hygiene_severe",
		SeverityScore:   9,
		MatchedPatterns: []string{"dead fly"},
		LLMSentiment:    &llmSentiment,
		LLMReasoning:    &llmReasoning,
	}
}

func TestFlatRowRoundTrip(t *testing.T) {
	rec := sampleRecord()

	row, err := rec.FlatRow()
	require.NoError(t, err)
	require.Len(t, row, len(FlatHeader))

	back, err := FromFlatRow(row)
	require.NoError(t, err)

	assert.Equal(t, rec, back)
}

func TestFlatRowRoundTrip_NilAuditFields(t *testing.T) {
	rec := sampleRecord()
	rec.LLMSentiment = nil
	rec.LLMReasoning = nil

	row, err := rec.FlatRow()
	require.NoError(t, err)

	back, err := FromFlatRow(row)
	require.NoError(t, err)

	assert.Nil(t, back.LLMSentiment)
	assert.Nil(t, back.LLMReasoning)
	assert.Equal(t, rec, back)
}

func TestFromFlatRow_WrongWidth(t *testing.T) {
	_, err := FromFlatRow([]string{"r-1", "too", "short"})
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	rec := sampleRecord()
	clone := rec.Clone()

	require.Equal(t, rec, clone)

	clone.OverallSentiment = SentimentPositive
	clone.AspectsDetected[0] = "price"
	clone.AspectSentiments["hygiene"].Sentiment = AspectPositive
	clone.AspectSentiments["hygiene"].Mentions[0] = "changed"
	clone.MatchedPatterns[0] = "changed"
	*clone.LLMSentiment = SentimentPositive
	*clone.LLMReasoning = "changed"

	assert.Equal(t, SentimentNegative, rec.OverallSentiment)
	assert.Equal(t, "food", rec.AspectsDetected[0])
	assert.Equal(t, AspectNegative, rec.AspectSentiments["hygiene"].Sentiment)
	assert.Equal(t, "Found a dead fly in my sambar.", rec.AspectSentiments["hygiene"].Mentions[0])
	assert.Equal(t, "dead fly", rec.MatchedPatterns[0])
	assert.Equal(t, SentimentNegative, *rec.LLMSentiment)
	assert.Equal(t, "sarcasm detected", *rec.LLMReasoning)
}

func TestValidConfidence(t *testing.T) {
	assert.True(t, ValidConfidence(ConfidenceLow))
	assert.True(t, ValidConfidence(ConfidenceMedium))
	assert.True(t, ValidConfidence(ConfidenceHigh))
	assert.False(t, ValidConfidence("high"))
	assert.False(t, ValidConfidence(""))
}

func TestEligibleForResponse(t *testing.T) {
	rec := sampleRecord()

	assert.True(t, rec.EligibleForResponse(2))
	assert.False(t, rec.EligibleForResponse(1))
}

func TestOpinionMentionsAspect(t *testing.T) {
	op := &Opinion{Aspects: []OpinionAspect{
		{Aspect: "safety", Sentiment: AspectNegative},
		{Aspect: "food", Sentiment: AspectPositive},
	}}

	assert.True(t, op.MentionsAspect("safety"))
	assert.True(t, op.MentionsAspect("food"))
	assert.False(t, op.MentionsAspect("price"))
}
