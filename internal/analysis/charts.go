package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/reviewlens/reviewlens/internal/models"
)

const (
	pieChartFile         = "overall_sentiment_pie.png"
	categoryBarChartFile = "sentiment_by_class_bar.png"
	topCategoriesFile    = "top_classes_sentiment.png"
)

var sentimentColors = map[string]drawing.Color{
	models.SentimentPositive: {R: 0x28, G: 0xa7, B: 0x45, A: 0xff},
	models.SentimentNegative: {R: 0xdc, G: 0x35, B: 0x45, A: 0xff},
	models.SentimentNeutral:  {R: 0x6c, G: 0x75, B: 0x7d, A: 0xff},
}

// RenderCharts writes the report's chart images into outputDir and returns
// the paths written. Charts with no plottable values are skipped, not
// failed.
func RenderCharts(r models.Report, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", outputDir, err)
	}

	var files []string

	if path, ok, err := renderOverallPie(r, outputDir); err != nil {
		return files, err
	} else if ok {
		files = append(files, path)
	}

	if path, ok, err := renderCategoryBars(r, outputDir); err != nil {
		return files, err
	} else if ok {
		files = append(files, path)
	}

	if path, ok, err := renderTopCategories(r, outputDir); err != nil {
		return files, err
	} else if ok {
		files = append(files, path)
	}

	slog.Info("[Charts] Created visualizations",
		slog.Int("count", len(files)),
		slog.String("dir", outputDir))
	return files, nil
}

func renderOverallPie(r models.Report, outputDir string) (string, bool, error) {
	values := make([]chart.Value, 0, 3)
	for _, label := range []string{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		pct := overallPercentage(r, label)
		if pct <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: label,
			Value: pct,
			Style: chart.Style{FillColor: sentimentColors[label]},
		})
	}
	if len(values) == 0 {
		slog.Warn("[Charts] No sentiment data for pie chart, skipping")
		return "", false, nil
	}

	pie := chart.PieChart{
		Title:  "Overall Sentiment Distribution",
		Width:  800,
		Height: 600,
		Values: values,
	}
	path := filepath.Join(outputDir, pieChartFile)
	if err := renderToFile(path, pie.Render); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func renderCategoryBars(r models.Report, outputDir string) (string, bool, error) {
	bars := make([]chart.Value, 0, len(r.ByCategory))
	for _, stat := range r.ByCategory {
		if stat.Percentage <= 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s / %s", stat.Category, stat.Sentiment),
			Value: stat.Percentage,
			Style: chart.Style{FillColor: sentimentColors[stat.Sentiment]},
		})
	}
	if len(bars) == 0 {
		slog.Warn("[Charts] No per-category data for bar chart, skipping")
		return "", false, nil
	}

	bar := chart.BarChart{
		Title:    "Sentiment Distribution by Category",
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Bars:     bars,
	}
	path := filepath.Join(outputDir, categoryBarChartFile)
	if err := renderToFile(path, bar.Render); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func renderTopCategories(r models.Report, outputDir string) (string, bool, error) {
	tops := []struct {
		label     string
		sentiment string
		top       models.TopCategory
	}{
		{"Highest Positive", models.SentimentPositive, r.TopPositive},
		{"Highest Negative", models.SentimentNegative, r.TopNegative},
		{"Highest Neutral", models.SentimentNeutral, r.TopNeutral},
	}

	bars := make([]chart.Value, 0, len(tops))
	for _, t := range tops {
		if t.top.Percentage <= 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: %s", t.label, t.top.Category),
			Value: t.top.Percentage,
			Style: chart.Style{FillColor: sentimentColors[t.sentiment]},
		})
	}
	if len(bars) == 0 {
		slog.Warn("[Charts] No top-category data, skipping")
		return "", false, nil
	}

	bar := chart.BarChart{
		Title:    "Top Categories by Sentiment Type",
		Width:    1000,
		Height:   600,
		BarWidth: 60,
		Bars:     bars,
	}
	path := filepath.Join(outputDir, topCategoriesFile)
	if err := renderToFile(path, bar.Render); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func renderToFile(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file %q: %w", path, err)
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart %q: %w", path, err)
	}
	return f.Close()
}

func overallPercentage(r models.Report, sentiment string) float64 {
	switch sentiment {
	case models.SentimentPositive:
		return r.Overall.Positive
	case models.SentimentNegative:
		return r.Overall.Negative
	case models.SentimentNeutral:
		return r.Overall.Neutral
	}
	return 0
}
