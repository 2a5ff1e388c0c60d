// Package analysis turns the processed review table into aggregate
// sentiment statistics, chart images, and a CSV export.
package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/reviewlens/reviewlens/internal/models"
	"github.com/reviewlens/reviewlens/internal/utils"
)

// BuildReport computes per-category and overall sentiment distributions
// from the processed table. Rows whose sentiment is not one of
// Positive/Negative/Neutral (empty and Error included) are excluded.
// Missing category or sentiment columns are an error: aggregation cannot
// degrade the way enrichment can.
func BuildReport(t models.Table, categoryColumn, sentimentColumn string) (models.Report, error) {
	if err := utils.ValidateColumns(t, []string{categoryColumn, sentimentColumn}); err != nil {
		return models.Report{}, fmt.Errorf("build report: %w", err)
	}

	slog.Info("[Report] Generating sentiment analysis report",
		slog.String("category_column", categoryColumn),
		slog.String("sentiment_column", sentimentColumn))

	type groupKey struct {
		category  string
		sentiment string
	}

	counts := make(map[groupKey]int)
	categoryTotals := make(map[string]int)
	overallCounts := make(map[string]int)
	var order []groupKey
	filtered := 0

	for _, row := range t.Rows {
		sentiment := row[sentimentColumn]
		switch sentiment {
		case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		default:
			continue
		}
		filtered++

		category := row[categoryColumn]
		key := groupKey{category: category, sentiment: sentiment}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
		categoryTotals[category]++
		overallCounts[sentiment]++
	}

	stats := make([]models.SentimentStat, 0, len(order))
	for _, key := range order {
		total := categoryTotals[key.category]
		count := counts[key]
		stats = append(stats, models.SentimentStat{
			Category:   key.category,
			Sentiment:  key.sentiment,
			Count:      count,
			Total:      total,
			Percentage: round2(float64(count) / float64(total) * 100),
		})
	}

	overall := models.OverallSentiment{TotalReviews: filtered}
	if filtered > 0 {
		overall.Positive = round2(float64(overallCounts[models.SentimentPositive]) / float64(filtered) * 100)
		overall.Negative = round2(float64(overallCounts[models.SentimentNegative]) / float64(filtered) * 100)
		overall.Neutral = round2(float64(overallCounts[models.SentimentNeutral]) / float64(filtered) * 100)
	}

	return models.Report{
		CategoryColumn:  categoryColumn,
		SentimentColumn: sentimentColumn,
		Overall:         overall,
		ByCategory:      stats,
		TopPositive:     topCategory(stats, models.SentimentPositive),
		TopNegative:     topCategory(stats, models.SentimentNegative),
		TopNeutral:      topCategory(stats, models.SentimentNeutral),
	}, nil
}

// topCategory picks the category with the highest share of the given label.
// Strict greater-than keeps the first-encountered category on ties.
func topCategory(stats []models.SentimentStat, sentiment string) models.TopCategory {
	top := models.TopCategory{Category: "None", Percentage: 0.0}
	found := false
	for _, stat := range stats {
		if stat.Sentiment != sentiment {
			continue
		}
		if !found || stat.Percentage > top.Percentage {
			top = models.TopCategory{Category: stat.Category, Percentage: stat.Percentage}
			found = true
		}
	}
	return top
}

// WriteSummary renders the human-readable console report.
func WriteSummary(w io.Writer, r models.Report) error {
	divider := "============================================================"

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "Sentiment Analysis Report")
	fmt.Fprintln(w, divider)

	fmt.Fprintln(w, "\nOverall Sentiment Distribution:")
	fmt.Fprintf(w, "  Positive: %.2f%%\n", r.Overall.Positive)
	fmt.Fprintf(w, "  Negative: %.2f%%\n", r.Overall.Negative)
	fmt.Fprintf(w, "  Neutral:  %.2f%%\n", r.Overall.Neutral)
	fmt.Fprintf(w, "  Total Reviews Analyzed: %d\n", r.Overall.TotalReviews)

	fmt.Fprintln(w, "\nTop Categories by Sentiment:")
	fmt.Fprintf(w, "  Highest Positive Sentiment: %s (%.2f%%)\n", r.TopPositive.Category, r.TopPositive.Percentage)
	fmt.Fprintf(w, "  Highest Negative Sentiment: %s (%.2f%%)\n", r.TopNegative.Category, r.TopNegative.Percentage)
	fmt.Fprintf(w, "  Highest Neutral Sentiment:  %s (%.2f%%)\n", r.TopNeutral.Category, r.TopNeutral.Percentage)

	fmt.Fprintln(w, "\nDetailed Breakdown by Category:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\tcount\ttotal\tpercentage\n", r.CategoryColumn, r.SentimentColumn)
	for _, stat := range r.ByCategory {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%.2f\n",
			stat.Category, stat.Sentiment, stat.Count, stat.Total, stat.Percentage)
	}
	return tw.Flush()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
