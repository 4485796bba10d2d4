package pipeline

import (
	"log/slog"

	"github.com/skaranth/reviewpulse/internal/models"
)

// Deduplicate drops reviews whose review_id has already been seen,
// first occurrence wins. Duplicates arise from re-scraping the same
// review or identical reposts; counting them twice skews sentiment
// aggregates and urgency counts, so deduplication is mandatory before
// analysis. The duplicate count is logged so operators can investigate
// the data source when it gets noisy.
func Deduplicate(reviews []models.Review) []models.Review {
	seen := make(map[string]bool, len(reviews))
	unique := make([]models.Review, 0, len(reviews))
	dupes := 0

	for _, review := range reviews {
		if seen[review.ReviewID] {
			dupes++
			continue
		}
		seen[review.ReviewID] = true
		unique = append(unique, review)
	}

	if dupes > 0 {
		slog.Warn("[Pipeline] Deduplicated reviews",
			slog.Int("duplicates", dupes),
			slog.Int("unique", len(unique)))
	}

	return unique
}
