// Package urgency flags reviews that need immediate management
// attention, using categorized keyword scans with severity scoring.
//
// Keyword matching over ML is deliberate: urgency triggers are concrete
// and enumerable, and false negatives (missing a poisoning report) are
// far more expensive than false positives. Severity ranks urgency: a
// hospitalization outranks a rude-staff complaint.
package urgency

import (
	"strings"

	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/rules"
)

// Result is the urgency verdict for one review.
type Result struct {
	Urgent          bool
	UrgencyReason   string
	SeverityScore   int
	MatchedPatterns []string
}

// Detector scans lowercased text for category keyword hits and applies
// rating-based severity modifiers. Read-only after construction.
type Detector struct {
	rs *rules.Ruleset
}

func NewDetector(rs *rules.Ruleset) *Detector {
	return &Detector{rs: rs}
}

// Detect scans the review for urgency signals. The highest-severity
// matching category wins; the star rating then modifies severity for
// non-health/safety categories only.
func (d *Detector) Detect(text string, rating int) Result {
	none := Result{UrgencyReason: models.UrgencyReasonNone, MatchedPatterns: []string{}}
	if strings.TrimSpace(text) == "" {
		return none
	}

	textLower := strings.ToLower(text)

	maxSeverity := 0
	bestCategory := models.UrgencyReasonNone
	var matches []string
	seen := make(map[string]bool)

	for _, category := range d.rs.UrgencyCategories {
		hit := false
		for _, kw := range category.Keywords {
			if strings.Contains(textLower, kw) {
				hit = true
				if !seen[kw] {
					seen[kw] = true
					matches = append(matches, kw)
				}
			}
		}
		if hit && category.Severity > maxSeverity {
			maxSeverity = category.Severity
			bestCategory = category.Name
		}
	}

	if len(matches) == 0 {
		return none
	}

	// Rating modifiers apply only to categories outside the exempt set.
	// 1 star: the reviewer is angry AND reporting, nudge severity up.
	// 4-5 stars: the keyword likely appeared in a non-complaint context
	// ("No stomach issues afterwards!"), reduce severity. Health and
	// safety categories are exempt from the reduction: silently
	// downgrading a genuine incident is the failure mode to avoid.
	if !d.rs.RatingExemptCategories[bestCategory] {
		if rating == 1 {
			maxSeverity = min(10, maxSeverity+1)
		} else if rating >= 4 {
			maxSeverity = max(0, maxSeverity-3)
		}
	}

	urgent := maxSeverity >= d.rs.UrgencyThreshold

	reason := models.UrgencyReasonNone
	if urgent {
		reason = bestCategory
	}

	if len(matches) > models.MaxMatchedPatterns {
		matches = matches[:models.MaxMatchedPatterns]
	}

	return Result{
		Urgent:          urgent,
		UrgencyReason:   reason,
		SeverityScore:   maxSeverity,
		MatchedPatterns: matches,
	}
}
