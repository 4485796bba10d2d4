// Package contract is the final, idempotent pass that guarantees
// cross-field invariants on every emitted record, regardless of what
// upstream stages produced.
//
// The signal extractors run independently and can disagree: urgent with
// Positive sentiment, a poisoning report with HIGH confidence, 1-star
// with Positive. Downstream consumers trust the emitted record, so every
// cross-module rule lives here and nowhere else. If a consumer ever sees
// a violation, the bug is in this package.
package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/rules"
)

// ErrViolation marks an internal logic defect: an invariant that rules
// 1-2 should have made impossible still held after they ran. This is a
// bug in enforcement, not bad input, and must fail loudly rather than be
// swallowed like a data problem.
var ErrViolation = errors.New("contract violation")

// Enforcer applies the invariant rules. Read-only after construction.
type Enforcer struct {
	rs *rules.Ruleset
}

func NewEnforcer(rs *rules.Ruleset) *Enforcer {
	return &Enforcer{rs: rs}
}

// Enforce applies the rules in fixed order to a working copy of rec and
// returns the corrected record. Each rule only moves sentiment toward
// Negative or Neutral, never toward Positive. Any change sets
// rating_override for audit visibility.
//
// Enforce is idempotent: running it on an already-enforced record is a
// no-op.
func (e *Enforcer) Enforce(rec *models.AnalysisRecord) (*models.AnalysisRecord, error) {
	if !models.ValidConfidence(rec.Confidence) {
		return nil, fmt.Errorf("%w: invalid confidence %q for review_id=%s",
			ErrViolation, rec.Confidence, rec.ReviewID)
	}

	out := rec.Clone()

	// Rule 1: urgency is a crisis signal; it must never read as
	// anything but Negative.
	if out.Urgent && out.OverallSentiment != models.SentimentNegative {
		out.OverallSentiment = models.SentimentNegative
		out.RatingOverride = true
	}

	// Rule 2: severity >= 7 means a hygiene failure or worse; a
	// stronger signal than any text score.
	if out.SeverityScore >= 7 && out.OverallSentiment != models.SentimentNegative {
		out.OverallSentiment = models.SentimentNegative
		out.RatingOverride = true
	}

	// Rule 3: a 1-2 star reviewer is unhappy whatever positive words
	// the text analysis found. Ceiling, not floor: Negative stands.
	if out.Rating <= 2 && out.OverallSentiment == models.SentimentPositive {
		out.OverallSentiment = models.SentimentNegative
		out.RatingOverride = true
	}

	// Rule 4: 3 stars is mediocre at best; Positive would inflate
	// aggregate metrics.
	if out.Rating == 3 && out.OverallSentiment == models.SentimentPositive {
		out.OverallSentiment = models.SentimentNeutral
		out.RatingOverride = true
	}

	// Rule 5: rules 1-2 make urgent+Positive impossible. Reaching this
	// state means the enforcement logic itself is broken.
	if out.Urgent && out.OverallSentiment == models.SentimentPositive {
		return nil, fmt.Errorf("%w: urgent=true and sentiment=Positive for review_id=%s",
			ErrViolation, out.ReviewID)
	}

	// Rule 6: poisoning reports are inherently high-conflict between
	// text and rating. Reporting HIGH confidence on one is false
	// certainty.
	if out.UrgencyReason == rules.CategoryFoodPoisoning && out.Confidence == models.ConfidenceHigh {
		out.Confidence = models.ConfidenceMedium
		out.RatingOverride = true
	}

	// Rule 7: complaint-sensitive aspects.
	e.enforceAspectSentiments(out)

	return out, nil
}

// enforceAspectSentiments forces hygiene/safety/service aspects to
// negative when their evidence contains complaint language or the rating
// is very low, regardless of what upstream stages computed.
func (e *Enforcer) enforceAspectSentiments(rec *models.AnalysisRecord) {
	lowRating := rec.Rating <= 2

	for aspect := range e.rs.ComplaintSensitiveAspects {
		detail, ok := rec.AspectSentiments[aspect]
		if !ok {
			continue
		}
		if detail.Sentiment == models.AspectNegative {
			continue
		}

		mentionsText := strings.ToLower(strings.Join(detail.Mentions, " "))
		hasComplaint := false
		for _, indicator := range e.rs.ComplaintIndicators {
			if strings.Contains(mentionsText, indicator) {
				hasComplaint = true
				break
			}
		}

		if hasComplaint || lowRating {
			detail.Sentiment = models.AspectNegative
			if detail.Score > 0 {
				detail.Score = -detail.Score
			}
			rec.RatingOverride = true
		}
	}
}
