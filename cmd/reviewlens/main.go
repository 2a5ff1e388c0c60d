package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/reviewlens/reviewlens/config"
	"github.com/reviewlens/reviewlens/internal/analysis"
	"github.com/reviewlens/reviewlens/internal/analyzer"
	"github.com/reviewlens/reviewlens/internal/clients"
	"github.com/reviewlens/reviewlens/internal/db"
	"github.com/reviewlens/reviewlens/internal/etl"
	"github.com/reviewlens/reviewlens/internal/logging"
	"github.com/reviewlens/reviewlens/internal/models"
	"github.com/reviewlens/reviewlens/internal/store"
)

func main() {
	config.LoadEnv()
	logging.InitLogger()

	if err := run(); err != nil {
		slog.Error("Pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	workbook, err := store.OpenSQLite(cfg.WorkbookPath)
	if err != nil {
		return err
	}
	defer workbook.Close()

	reviewAnalyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	pipeline := etl.New(workbook, analyzer.NewBatchAnalyzer(reviewAnalyzer), etl.Options{
		RawSheet:       cfg.RawSheet,
		StagingSheet:   cfg.StagingSheet,
		ProcessedSheet: cfg.ProcessedSheet,
		ReviewColumn:   cfg.ReviewColumn,
	})

	startedAt := time.Now()
	processed, err := pipeline.Run(ctx, true)
	if err != nil {
		return err
	}

	report, err := analysis.BuildReport(processed, cfg.CategoryColumn, models.ColumnSentiment)
	if err != nil {
		return err
	}
	if err := analysis.WriteSummary(os.Stdout, report); err != nil {
		return err
	}

	chartFiles, err := analysis.RenderCharts(report, cfg.OutputDir)
	if err != nil {
		return err
	}

	csvFile, err := analysis.ExportCSV(report, cfg.ReportCSV)
	if err != nil {
		return err
	}

	recordRun(ctx, workbook, processed, startedAt)

	slog.Info("Pipeline execution completed",
		slog.Int("reviews", len(processed.Rows)),
		slog.Int("visualizations", len(chartFiles)),
		slog.String("csv", csvFile))

	fmt.Println("\nGenerated Files:")
	for _, f := range chartFiles {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Printf("  - %s\n", csvFile)

	return nil
}

func buildAnalyzer(cfg config.Config) (analyzer.ReviewAnalyzer, error) {
	switch cfg.AnalyzerProvider {
	case config.ProviderVader:
		return analyzer.NewLocalClassifier(), nil
	case config.ProviderGroq:
		client, err := clients.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
		if err != nil {
			return nil, err
		}
		return analyzer.NewClassifier(client, analyzer.NewRetryPolicy(cfg.MaxRetries, cfg.RetryDelay)), nil
	default:
		return nil, fmt.Errorf("unknown analyzer provider %q", cfg.AnalyzerProvider)
	}
}

// recordRun appends the run to the workbook's history; failures here are
// informational only.
func recordRun(ctx context.Context, workbook *store.SQLiteStore, processed models.Table, startedAt time.Time) {
	runLog, err := db.NewRunLog(workbook.DB())
	if err != nil {
		slog.Warn("Could not open run log", slog.String("error", err.Error()))
		return
	}

	counts := make(map[string]int)
	for _, sentiment := range processed.Column(models.ColumnSentiment) {
		counts[sentiment]++
	}

	rec := db.RunRecord{
		ID:            uuid.NewString(),
		StartedAt:     startedAt,
		FinishedAt:    time.Now(),
		RowsProcessed: len(processed.Rows),
		Positive:      counts[models.SentimentPositive],
		Negative:      counts[models.SentimentNegative],
		Neutral:       counts[models.SentimentNeutral],
		Errors:        counts[models.SentimentError],
	}
	if err := runLog.RecordRun(ctx, rec); err != nil {
		slog.Warn("Could not record pipeline run", slog.String("error", err.Error()))
		return
	}
	slog.Info("Recorded pipeline run", slog.String("run_id", rec.ID))
}
