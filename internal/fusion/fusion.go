// Package fusion merges the external semantic opinion into the
// deterministic record under fixed precedence rules. Fusion runs before
// contract enforcement, which keeps final authority over the result.
package fusion

import (
	"log/slog"

	"github.com/skaranth/reviewpulse/internal/models"
)

// Fuse merges op into rec in place and returns rec.
//
// Rules:
//   - No opinion: record unchanged, audit fields explicitly nil.
//   - Sentiment: agreement keeps the deterministic confidence; on
//     disagreement the opinion's sentiment is adopted, with confidence
//     capped at MEDIUM in safety-or-urgent contexts and at LOW
//     otherwise. A contested safety case must never read HIGH.
//   - Aspects: union of both sides; where both scored an aspect the
//     opinion's sentiment wins and its evidence is appended;
//     opinion-only aspects enter with a zero placeholder score.
//   - Urgency: logical OR; the opinion's reason fills a missing one.
func Fuse(rec *models.AnalysisRecord, op *models.Opinion) *models.AnalysisRecord {
	if op == nil {
		rec.LLMSentiment = nil
		rec.LLMReasoning = nil
		return rec
	}

	llmSentiment := op.OverallSentiment
	llmReasoning := op.Reasoning
	rec.LLMSentiment = &llmSentiment
	rec.LLMReasoning = &llmReasoning

	if op.OverallSentiment != rec.OverallSentiment {
		safetyContext := rec.Urgent || op.Urgent || op.MentionsAspect("safety")

		slog.Debug("[Fusion] Opinion disagrees with deterministic sentiment",
			slog.String("review_id", rec.ReviewID),
			slog.String("deterministic", string(rec.OverallSentiment)),
			slog.String("opinion", string(op.OverallSentiment)),
			slog.Bool("safety_context", safetyContext))

		rec.OverallSentiment = op.OverallSentiment
		if safetyContext {
			rec.Confidence = capConfidence(rec.Confidence, models.ConfidenceMedium)
		} else {
			rec.Confidence = capConfidence(rec.Confidence, models.ConfidenceLow)
		}
	}

	fuseAspects(rec, op)

	if op.Urgent && !rec.Urgent {
		rec.Urgent = true
	}
	if op.UrgencyReason != "" && (rec.UrgencyReason == "" || rec.UrgencyReason == models.UrgencyReasonNone) {
		rec.UrgencyReason = op.UrgencyReason
	}

	return rec
}

func fuseAspects(rec *models.AnalysisRecord, op *models.Opinion) {
	if rec.AspectSentiments == nil {
		rec.AspectSentiments = make(map[string]*models.AspectDetail)
	}

	for _, a := range op.Aspects {
		detail, exists := rec.AspectSentiments[a.Aspect]
		if exists {
			detail.Sentiment = a.Sentiment
			if a.Evidence != "" {
				detail.Mentions = appendUnique(detail.Mentions, a.Evidence)
				if len(detail.Mentions) > models.MaxAspectMentions {
					detail.Mentions = detail.Mentions[:models.MaxAspectMentions]
				}
			}
			continue
		}

		mentions := []string{}
		if a.Evidence != "" {
			mentions = append(mentions, a.Evidence)
		}
		rec.AspectSentiments[a.Aspect] = &models.AspectDetail{
			Sentiment: a.Sentiment,
			Score:     0, // placeholder: no deterministic score exists
			Mentions:  mentions,
		}
		rec.AspectsDetected = append(rec.AspectsDetected, a.Aspect)
	}
}

// capConfidence lowers c to at most limit, never raises it.
func capConfidence(c, limit models.Confidence) models.Confidence {
	if rank(c) > rank(limit) {
		return limit
	}
	return c
}

func rank(c models.Confidence) int {
	switch c {
	case models.ConfidenceHigh:
		return 2
	case models.ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
