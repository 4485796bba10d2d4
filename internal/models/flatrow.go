package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Flat-row codec for AnalysisRecord. Nested structures are JSON-embedded
// in their cells so the CSV stays parseable by downstream tools, and the
// round trip through FlatRow/FromFlatRow is lossless.

// FlatHeader is the column order for flat-row serialization.
var FlatHeader = []string{
	"review_id", "reviewer_name", "rating", "review_text", "review_date",
	"overall_sentiment", "vader_compound", "final_score", "confidence",
	"rating_override", "aspects_detected", "aspect_sentiments",
	"urgent", "urgency_reason", "severity_score", "matched_patterns",
	"llm_sentiment", "llm_reasoning",
}

// FlatRow serializes the record into one CSV-ready row matching
// FlatHeader. Floats use the shortest exact representation so parsing
// the row back reproduces the original values bit for bit.
func (r *AnalysisRecord) FlatRow() ([]string, error) {
	aspectsDetected, err := json.Marshal(r.AspectsDetected)
	if err != nil {
		return nil, fmt.Errorf("marshal aspects_detected: %w", err)
	}
	aspectSentiments, err := json.Marshal(r.AspectSentiments)
	if err != nil {
		return nil, fmt.Errorf("marshal aspect_sentiments: %w", err)
	}
	matchedPatterns, err := json.Marshal(r.MatchedPatterns)
	if err != nil {
		return nil, fmt.Errorf("marshal matched_patterns: %w", err)
	}
	llmSentiment, err := json.Marshal(r.LLMSentiment)
	if err != nil {
		return nil, fmt.Errorf("marshal llm_sentiment: %w", err)
	}
	llmReasoning, err := json.Marshal(r.LLMReasoning)
	if err != nil {
		return nil, fmt.Errorf("marshal llm_reasoning: %w", err)
	}

	return []string{
		r.ReviewID,
		r.ReviewerName,
		strconv.Itoa(r.Rating),
		r.ReviewText,
		r.ReviewDate,
		string(r.OverallSentiment),
		strconv.FormatFloat(r.VaderCompound, 'g', -1, 64),
		strconv.FormatFloat(r.FinalScore, 'g', -1, 64),
		string(r.Confidence),
		strconv.FormatBool(r.RatingOverride),
		string(aspectsDetected),
		string(aspectSentiments),
		strconv.FormatBool(r.Urgent),
		r.UrgencyReason,
		strconv.Itoa(r.SeverityScore),
		string(matchedPatterns),
		string(llmSentiment),
		string(llmReasoning),
	}, nil
}

// FromFlatRow parses a row produced by FlatRow back into a record.
func FromFlatRow(row []string) (*AnalysisRecord, error) {
	if len(row) != len(FlatHeader) {
		return nil, fmt.Errorf("flat row has %d columns, want %d", len(row), len(FlatHeader))
	}

	rating, err := strconv.Atoi(row[2])
	if err != nil {
		return nil, fmt.Errorf("parse rating: %w", err)
	}
	vaderCompound, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return nil, fmt.Errorf("parse vader_compound: %w", err)
	}
	finalScore, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return nil, fmt.Errorf("parse final_score: %w", err)
	}
	ratingOverride, err := strconv.ParseBool(row[9])
	if err != nil {
		return nil, fmt.Errorf("parse rating_override: %w", err)
	}
	urgent, err := strconv.ParseBool(row[12])
	if err != nil {
		return nil, fmt.Errorf("parse urgent: %w", err)
	}
	severity, err := strconv.Atoi(row[14])
	if err != nil {
		return nil, fmt.Errorf("parse severity_score: %w", err)
	}

	rec := &AnalysisRecord{
		Review: Review{
			ReviewID:     row[0],
			ReviewerName: row[1],
			Rating:       rating,
			ReviewText:   row[3],
			ReviewDate:   row[4],
		},
		OverallSentiment: Sentiment(row[5]),
		VaderCompound:    vaderCompound,
		FinalScore:       finalScore,
		Confidence:       Confidence(row[8]),
		RatingOverride:   ratingOverride,
		Urgent:           urgent,
		UrgencyReason:    row[13],
		SeverityScore:    severity,
	}

	if err := json.Unmarshal([]byte(row[10]), &rec.AspectsDetected); err != nil {
		return nil, fmt.Errorf("parse aspects_detected: %w", err)
	}
	if err := json.Unmarshal([]byte(row[11]), &rec.AspectSentiments); err != nil {
		return nil, fmt.Errorf("parse aspect_sentiments: %w", err)
	}
	if err := json.Unmarshal([]byte(row[15]), &rec.MatchedPatterns); err != nil {
		return nil, fmt.Errorf("parse matched_patterns: %w", err)
	}
	if err := json.Unmarshal([]byte(row[16]), &rec.LLMSentiment); err != nil {
		return nil, fmt.Errorf("parse llm_sentiment: %w", err)
	}
	if err := json.Unmarshal([]byte(row[17]), &rec.LLMReasoning); err != nil {
		return nil, fmt.Errorf("parse llm_reasoning: %w", err)
	}

	return rec, nil
}
