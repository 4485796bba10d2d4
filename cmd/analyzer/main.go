package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/skaranth/reviewpulse/config"
	"github.com/skaranth/reviewpulse/internal/logging"
	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/opinion"
	"github.com/skaranth/reviewpulse/internal/pipeline"
	"github.com/skaranth/reviewpulse/internal/rules"
	"github.com/skaranth/reviewpulse/internal/utils"
)

func main() {
	input := flag.String("input", "reviews.csv", "path to the input reviews CSV")
	outputDir := flag.String("output-dir", "outputs", "directory for output files")
	deterministic := flag.Bool("deterministic", false, "skip the external semantic opinion even if credentials are set")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	settings := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("[Analyzer] Starting review analysis",
		slog.String("input", *input),
		slog.Int("workers", settings.Workers))

	reviews, err := utils.LoadReviews(*input)
	if err != nil {
		slog.Error("[Analyzer] Failed to load reviews",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Analyzer] Loaded reviews", slog.Int("count", len(reviews)))

	// Dedup must happen before any scoring: the pipeline assumes
	// review_id uniqueness.
	reviews = pipeline.Deduplicate(reviews)

	var provider opinion.Provider = opinion.Noop{}
	if !*deterministic && os.Getenv("OPENAI_API_KEY") != "" {
		provider = opinion.NewOpenAIProvider(settings.OpenAIModel)
		slog.Info("[Analyzer] Semantic opinion enabled",
			slog.String("model", settings.OpenAIModel))
	}

	analyzer := pipeline.New(rules.Default(), provider)
	records := analyzer.AnalyzeBatch(ctx, reviews, settings.Workers)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		slog.Error("[Analyzer] Failed to create output directory",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	csvPath := filepath.Join(*outputDir, "analysis_results.csv")
	jsonPath := filepath.Join(*outputDir, "analysis_results.json")

	if err := utils.SaveCSV(records, csvPath); err != nil {
		slog.Error("[Analyzer] Failed to save CSV results",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := utils.SaveJSON(records, jsonPath); err != nil {
		slog.Error("[Analyzer] Failed to save JSON results",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Analyzer] Results saved",
		slog.String("dir", *outputDir),
		slog.Int("records", len(records)))

	printSummary(records, settings.ResponseRatingMax)
}

func printSummary(records []*models.AnalysisRecord, responseRatingMax int) {
	sentiments := map[models.Sentiment]int{}
	aspectCounts := map[string]int{}
	urgentCount := 0
	responseEligible := 0

	for _, rec := range records {
		sentiments[rec.OverallSentiment]++
		if rec.Urgent {
			urgentCount++
		}
		if rec.EligibleForResponse(responseRatingMax) {
			responseEligible++
		}
		for _, aspect := range rec.AspectsDetected {
			aspectCounts[aspect]++
		}
	}

	total := len(records)
	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("ANALYSIS SUMMARY")
	fmt.Println("==================================================")
	fmt.Printf("Total reviews analysed: %d\n\n", total)

	fmt.Println("Sentiment distribution:")
	for _, label := range []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		count := sentiments[label]
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		fmt.Printf("  %-10s: %4d  (%.1f%%)\n", label, count, pct)
	}

	fmt.Printf("\nUrgent reviews: %d\n", urgentCount)
	fmt.Printf("Response-eligible reviews (rating <= %d): %d\n", responseRatingMax, responseEligible)

	if len(aspectCounts) > 0 {
		fmt.Println("\nAspect mentions:")
		names := make([]string, 0, len(aspectCounts))
		for name := range aspectCounts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if aspectCounts[names[i]] != aspectCounts[names[j]] {
				return aspectCounts[names[i]] > aspectCounts[names[j]]
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Printf("  %-12s: %4d\n", name, aspectCounts[name])
		}
	}
	fmt.Println("==================================================")
}
