package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/skaranth/reviewpulse/internal/models"
)

// LoadReviews reads a reviews CSV into Review values. Tolerates the
// UTF-8 BOM that Excel likes to prepend, and treats missing review_text
// cells as empty strings. Rows with a malformed rating are logged and
// skipped; a single bad row never blocks the batch.
func LoadReviews(path string) ([]models.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reviews file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read reviews csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"review_id", "rating"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("reviews csv missing required column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var reviews []models.Review
	for n, row := range rows[1:] {
		rating, err := strconv.Atoi(strings.TrimSpace(cell(row, "rating")))
		if err != nil {
			slog.Warn("[Utils] Skipping row with malformed rating",
				slog.Int("row", n+2),
				slog.String("review_id", cell(row, "review_id")),
				slog.String("error", err.Error()))
			continue
		}

		reviews = append(reviews, models.Review{
			ReviewID:     cell(row, "review_id"),
			ReviewerName: cell(row, "reviewer_name"),
			Rating:       rating,
			ReviewText:   cell(row, "review_text"),
			ReviewDate:   cell(row, "review_date"),
		})
	}

	return reviews, nil
}

// SaveCSV writes records as a flat CSV; nested fields are JSON-embedded
// in their cells and round-trip losslessly through models.FromFlatRow.
func SaveCSV(records []*models.AnalysisRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(models.FlatHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row, err := rec.FlatRow()
		if err != nil {
			return fmt.Errorf("serialize record %s: %w", rec.ReviewID, err)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", rec.ReviewID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveJSON writes records as a pretty-printed JSON array (the nested
// document form).
func SaveJSON(records []*models.AnalysisRecord, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}
