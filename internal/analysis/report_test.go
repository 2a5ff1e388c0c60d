package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewlens/reviewlens/internal/models"
)

func processedTable(rows ...[2]string) models.Table {
	t := models.NewTable("Class Name", models.ColumnSentiment)
	for _, row := range rows {
		t.AddRow(row[0], row[1])
	}
	return t
}

func findStat(t *testing.T, stats []models.SentimentStat, category, sentiment string) models.SentimentStat {
	t.Helper()
	for _, stat := range stats {
		if stat.Category == category && stat.Sentiment == sentiment {
			return stat
		}
	}
	t.Fatalf("no stat for (%s, %s)", category, sentiment)
	return models.SentimentStat{}
}

func TestBuildReport_PerCategoryPercentages(t *testing.T) {
	table := processedTable(
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentNegative},
		[2]string{"Pants", models.SentimentNegative},
	)

	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	dressPositive := findStat(t, report.ByCategory, "Dress", models.SentimentPositive)
	assert.Equal(t, 2, dressPositive.Count)
	assert.Equal(t, 3, dressPositive.Total)
	assert.InDelta(t, 66.67, dressPositive.Percentage, 0.001)

	dressNegative := findStat(t, report.ByCategory, "Dress", models.SentimentNegative)
	assert.InDelta(t, 33.33, dressNegative.Percentage, 0.001)

	pantsNegative := findStat(t, report.ByCategory, "Pants", models.SentimentNegative)
	assert.InDelta(t, 100.0, pantsNegative.Percentage, 0.001)

	assert.Equal(t, "Pants", report.TopNegative.Category, "100% beats 33.33%")
	assert.InDelta(t, 100.0, report.TopNegative.Percentage, 0.001)
	assert.Equal(t, "Dress", report.TopPositive.Category)
	assert.Equal(t, "None", report.TopNeutral.Category, "no neutral rows anywhere")
	assert.Zero(t, report.TopNeutral.Percentage)

	assert.Equal(t, 4, report.Overall.TotalReviews)
	assert.InDelta(t, 50.0, report.Overall.Positive, 0.001)
	assert.InDelta(t, 50.0, report.Overall.Negative, 0.001)
	assert.Zero(t, report.Overall.Neutral)
}

func TestBuildReport_CategoryPercentagesSumTo100(t *testing.T) {
	table := processedTable(
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentNegative},
		[2]string{"Dress", models.SentimentNeutral},
		[2]string{"Dress", models.SentimentNeutral},
		[2]string{"Dress", models.SentimentNeutral},
		[2]string{"Knits", models.SentimentPositive},
		[2]string{"Knits", models.SentimentNegative},
		[2]string{"Knits", models.SentimentNegative},
	)

	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	sums := make(map[string]float64)
	for _, stat := range report.ByCategory {
		sums[stat.Category] += stat.Percentage
	}
	for category, sum := range sums {
		assert.InDelta(t, 100.0, sum, 0.01, "category %s", category)
	}
}

func TestBuildReport_FiltersErrorAndEmptySentiments(t *testing.T) {
	table := processedTable(
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentError},
		[2]string{"Dress", ""},
		[2]string{"Dress", "Mixed"},
	)

	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Overall.TotalReviews)
	require.Len(t, report.ByCategory, 1)
	assert.InDelta(t, 100.0, report.ByCategory[0].Percentage, 0.001)
}

func TestBuildReport_TieKeepsFirstEncounteredCategory(t *testing.T) {
	table := processedTable(
		[2]string{"Skirts", models.SentimentNegative},
		[2]string{"Jackets", models.SentimentNegative},
	)

	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	assert.Equal(t, "Skirts", report.TopNegative.Category, "both at 100%, first encountered wins")
}

func TestBuildReport_EmptyTable(t *testing.T) {
	table := models.NewTable("Class Name", models.ColumnSentiment)

	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	assert.Zero(t, report.Overall.TotalReviews)
	assert.Zero(t, report.Overall.Positive)
	assert.Empty(t, report.ByCategory)
	assert.Equal(t, "None", report.TopPositive.Category)
	assert.Equal(t, "None", report.TopNegative.Category)
	assert.Equal(t, "None", report.TopNeutral.Category)
}

func TestBuildReport_MissingColumnsFailFast(t *testing.T) {
	table := models.NewTable("Title")

	_, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Class Name")
	assert.Contains(t, err.Error(), models.ColumnSentiment)
}

func TestWriteSummary(t *testing.T) {
	table := processedTable(
		[2]string{"Dress", models.SentimentPositive},
		[2]string{"Dress", models.SentimentNegative},
	)
	report, err := BuildReport(table, "Class Name", models.ColumnSentiment)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteSummary(&sb, report))
	out := sb.String()

	assert.Contains(t, out, "Overall Sentiment Distribution:")
	assert.Contains(t, out, "Positive: 50.00%")
	assert.Contains(t, out, "Total Reviews Analyzed: 2")
	assert.Contains(t, out, "Highest Negative Sentiment: Dress (50.00%)")
	assert.Contains(t, out, "Detailed Breakdown by Category:")
}
