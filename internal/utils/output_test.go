package utils

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaranth/reviewpulse/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReviews(t *testing.T) {
	path := writeFile(t, "reviews.csv",
		"review_id,reviewer_name,rating,review_text,review_date\n"+
			"r-1,Priya S,5,Loved the dosa!,2024-03-15\n"+
			"r-2,,2,\"Slow service, cold food\",2024-03-16\n")

	reviews, err := LoadReviews(path)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "r-1", reviews[0].ReviewID)
	assert.Equal(t, "Priya S", reviews[0].ReviewerName)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "Loved the dosa!", reviews[0].ReviewText)
	assert.Equal(t, "Slow service, cold food", reviews[1].ReviewText)
}

func TestLoadReviews_BOMAndMalformedRows(t *testing.T) {
	path := writeFile(t, "reviews.csv",
		"\uFEFFreview_id,rating,review_text\n"+
			"r-1,five,should be skipped\n"+
			"r-2, 4 ,kept despite padded rating\n"+
			"r-3,3\n")

	reviews, err := LoadReviews(path)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "r-2", reviews[0].ReviewID)
	assert.Equal(t, 4, reviews[0].Rating)
	// Short row: missing text cell reads as empty.
	assert.Equal(t, "r-3", reviews[1].ReviewID)
	assert.Empty(t, reviews[1].ReviewText)
}

func TestLoadReviews_MissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "reviews.csv", "review_id,review_text\nr-1,hello\n")

	_, err := LoadReviews(path)
	assert.Error(t, err)
}

func TestLoadReviews_EmptyFile(t *testing.T) {
	path := writeFile(t, "reviews.csv", "")

	reviews, err := LoadReviews(path)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func sampleRecords() []*models.AnalysisRecord {
	return []*models.AnalysisRecord{
		{
			Review: models.Review{
				ReviewID: "r-1", ReviewerName: "Priya S", Rating: 1,
				ReviewText: "Found a dead fly in my sambar.", ReviewDate: "2024-03-15",
			},
			OverallSentiment: models.SentimentNegative,
			VaderCompound:    -0.5, FinalScore: -0.5,
			Confidence:      models.ConfidenceMedium,
			AspectsDetected: []string{"hygiene"},
			AspectSentiments: map[string]*models.AspectDetail{
				"hygiene": {
					Sentiment: models.AspectNegative,
					Score:     -0.5,
					Mentions:  []string{"Found a dead fly in my sambar."},
				},
			},
			Urgent: true, UrgencyReason: "hygiene_severe", SeverityScore: 9,
			MatchedPatterns: []string{"dead fly"},
		},
	}
}

func TestSaveCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords()

	require.NoError(t, SaveCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.FlatHeader, rows[0])

	back, err := models.FromFlatRow(rows[1])
	require.NoError(t, err)
	assert.Equal(t, records[0], back)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	records := sampleRecords()

	require.NoError(t, SaveJSON(records, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []*models.AnalysisRecord
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, records[0].ReviewID, back[0].ReviewID)
	assert.Equal(t, records[0].AspectSentiments, back[0].AspectSentiments)
}
