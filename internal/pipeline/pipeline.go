// Package pipeline wires the signal extractors, fusion, and contract
// enforcement into a single per-review analysis function, plus a
// concurrent batch runner. Processing is stateless across reviews; the
// only shared state is the read-only ruleset and compiled patterns, so
// reviews parallelize freely.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/skaranth/reviewpulse/internal/aspects"
	"github.com/skaranth/reviewpulse/internal/contract"
	"github.com/skaranth/reviewpulse/internal/fusion"
	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/normalize"
	"github.com/skaranth/reviewpulse/internal/opinion"
	"github.com/skaranth/reviewpulse/internal/rules"
	"github.com/skaranth/reviewpulse/internal/sentiment"
	"github.com/skaranth/reviewpulse/internal/urgency"
	"github.com/skaranth/reviewpulse/internal/utils"
)

// DefaultWorkers is the batch concurrency when the caller does not pick
// one.
const DefaultWorkers = 4

// Analyzer owns one configured pipeline instance. Safe for concurrent
// use: all components are read-only after construction.
type Analyzer struct {
	rs         *rules.Ruleset
	classifier *sentiment.Classifier
	aspects    *aspects.Detector
	urgency    *urgency.Detector
	enforcer   *contract.Enforcer
	provider   opinion.Provider
}

// New builds an Analyzer from a ruleset and an opinion provider. Pass
// opinion.Noop{} to run deterministically.
func New(rs *rules.Ruleset, provider opinion.Provider) *Analyzer {
	norm := normalize.New(rs)
	scorer := sentiment.NewScorer()

	if provider == nil {
		provider = opinion.Noop{}
	}

	return &Analyzer{
		rs:         rs,
		classifier: sentiment.NewClassifier(rs, norm, scorer),
		aspects:    aspects.NewDetector(rs, norm, scorer),
		urgency:    urgency.NewDetector(rs),
		enforcer:   contract.NewEnforcer(rs),
		provider:   provider,
	}
}

// AnalyzeReview runs the full pipeline for one review:
// extract (sentiment, aspects, urgency) → fuse opinion → enforce
// contract. The returned record has every cross-field invariant applied.
//
// Errors are either input malformation (bad rating, empty id) or a
// contract violation; the latter indicates a pipeline bug and is
// logged loudly before being returned.
func (a *Analyzer) AnalyzeReview(ctx context.Context, review models.Review) (*models.AnalysisRecord, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}

	classified := a.classifier.Classify(review.ReviewText, review.Rating)
	detected := a.aspects.Detect(review.ReviewText)
	urgencyResult := a.urgency.Detect(review.ReviewText, review.Rating)

	rec := &models.AnalysisRecord{
		Review:           review,
		OverallSentiment: classified.OverallSentiment,
		VaderCompound:    classified.VaderCompound,
		FinalScore:       classified.FinalScore,
		Confidence:       classified.Confidence,
		RatingOverride:   classified.RatingOverride,
		AspectsDetected:  detected.AspectsDetected,
		AspectSentiments: detected.AspectSentiments,
		Urgent:           urgencyResult.Urgent,
		UrgencyReason:    urgencyResult.UrgencyReason,
		SeverityScore:    urgencyResult.SeverityScore,
		MatchedPatterns:  urgencyResult.MatchedPatterns,
	}

	// One attempt per review; the provider absorbs every failure into
	// a nil opinion.
	op := a.provider.Analyze(ctx, review)
	rec = fusion.Fuse(rec, op)

	rec, err := a.enforcer.Enforce(rec)
	if err != nil {
		slog.Error("[Pipeline] CONTRACT VIOLATION: pipeline logic defect",
			slog.String("review_id", review.ReviewID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return rec, nil
}

// AnalyzeBatch runs the pipeline over a batch with a bounded worker
// pool. Output order matches input order. A failing review is logged and
// skipped; it never aborts the batch.
//
// Callers must deduplicate by review_id before invoking; duplicates are
// treated as a caller bug, logged at Error level, and skipped.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reviews []models.Review, workers int) []*models.AnalysisRecord {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(reviews) {
		workers = len(reviews)
	}
	if len(reviews) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(reviews))
	slots := make([]*models.AnalysisRecord, len(reviews))
	jobs := make(chan int)
	skipped := utils.NewBatchBuffer[string]()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := a.AnalyzeReview(ctx, reviews[i])
				if err != nil {
					slog.Error("[Pipeline] Skipping review",
						slog.String("review_id", reviews[i].ReviewID),
						slog.String("error", err.Error()))
					skipped.Add(reviews[i].ReviewID)
					continue
				}
				slots[i] = rec
			}
		}()
	}

	for i, review := range reviews {
		if seen[review.ReviewID] {
			slog.Error("[Pipeline] Duplicate review_id in batch, caller must deduplicate",
				slog.String("review_id", review.ReviewID))
			continue
		}
		seen[review.ReviewID] = true

		select {
		case jobs <- i:
		case <-ctx.Done():
			slog.Warn("[Pipeline] Context canceled, stopping batch early")
			close(jobs)
			wg.Wait()
			return compact(slots)
		}
	}
	close(jobs)
	wg.Wait()

	if skipped.HasData() {
		ids := skipped.GetAndClear()
		slog.Warn("[Pipeline] Batch finished with skipped reviews",
			slog.Int("skipped", len(ids)),
			slog.Any("review_ids", ids))
	}

	return compact(slots)
}

// compact drops skipped slots while preserving input order.
func compact(slots []*models.AnalysisRecord) []*models.AnalysisRecord {
	out := make([]*models.AnalysisRecord, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out
}
