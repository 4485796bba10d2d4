package models

import (
	"fmt"
	"strings"
	"time"
)

// Review is a single ingested customer review. Immutable once loaded;
// the pipeline never writes back to it.
type Review struct {
	ReviewID     string `json:"review_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	ReviewDate   string `json:"review_date"`
}

// Accepted layouts for review_date. The scraper emits full ISO-8601
// timestamps but older exports carry date-only strings.
var reviewDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Validate checks the ingestion input contract: non-empty review_id,
// rating in 1-5, parseable ISO-8601 date. Text may be empty.
func (r Review) Validate() error {
	if strings.TrimSpace(r.ReviewID) == "" {
		return fmt.Errorf("review has empty review_id")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("review %s has rating %d outside 1-5", r.ReviewID, r.Rating)
	}
	if r.ReviewDate != "" {
		valid := false
		for _, layout := range reviewDateLayouts {
			if _, err := time.Parse(layout, r.ReviewDate); err == nil {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("review %s has unparseable review_date %q", r.ReviewID, r.ReviewDate)
		}
	}
	return nil
}

// HasText reports whether the review carries any usable text signal.
func (r Review) HasText() bool {
	return strings.TrimSpace(r.ReviewText) != ""
}
