package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/reviewlens/reviewlens/internal/models"
)

const (
	progressLogInterval = 10

	// Crude guard against the external service's rate limiter: a fixed
	// pause after every pacingInterval-th review, not adaptive backoff.
	pacingInterval = 20
	pacingDelay    = 500 * time.Millisecond
)

// BatchAnalyzer runs a sequence of reviews through a ReviewAnalyzer in
// order. A single review's Error outcome never aborts the batch.
type BatchAnalyzer struct {
	analyzer ReviewAnalyzer
	sleep    func(time.Duration)
}

func NewBatchAnalyzer(a ReviewAnalyzer) *BatchAnalyzer {
	return &BatchAnalyzer{analyzer: a, sleep: time.Sleep}
}

// AnalyzeAll returns one result per input review, same length and order.
func (b *BatchAnalyzer) AnalyzeAll(ctx context.Context, reviews []string) []models.AnalyzedReview {
	results := make([]models.AnalyzedReview, 0, len(reviews))
	total := len(reviews)

	for i, review := range reviews {
		idx := i + 1
		if idx%progressLogInterval == 0 {
			slog.Info("[BatchAnalyzer] Processing review",
				slog.Int("current", idx),
				slog.Int("total", total))
		}

		analysis := b.analyzer.Analyze(ctx, review)
		results = append(results, models.AnalyzedReview{
			ReviewAnalysis: analysis,
			ActionNeeded:   DetermineActionNeeded(analysis.Sentiment),
		})

		if idx%pacingInterval == 0 {
			b.sleep(pacingDelay)
		}
	}

	if total > 0 {
		slog.Info("[BatchAnalyzer] Completed analyzing reviews", slog.Int("total", total))
	}
	return results
}
