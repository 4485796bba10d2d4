// Package opinion wraps the optional external semantic judge. The
// pipeline depends only on the Provider capability, never on the network
// client directly; any failure collapses to "no opinion".
package opinion

import (
	"context"

	"github.com/skaranth/reviewpulse/internal/models"
)

// Provider produces an external semantic opinion for a review. A nil
// return means no opinion is available; implementations must never
// surface an error or panic into the pipeline.
type Provider interface {
	Analyze(ctx context.Context, review models.Review) *models.Opinion
}

// Noop is the trivial provider: it always has no opinion. Used in tests
// and whenever semantic analysis is disabled.
type Noop struct{}

func (Noop) Analyze(ctx context.Context, review models.Review) *models.Opinion {
	return nil
}
