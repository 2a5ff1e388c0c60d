// Package etl runs the review pipeline: extract from the raw sheet,
// transform, load to staging, enrich with sentiment analysis, load to the
// processed sheet. Every load is a full overwrite, so rerunning against
// unchanged raw data reproduces the same processed contents.
package etl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reviewlens/reviewlens/internal/analyzer"
	"github.com/reviewlens/reviewlens/internal/models"
	"github.com/reviewlens/reviewlens/internal/store"
	"github.com/reviewlens/reviewlens/internal/utils"
)

const (
	// Capacity headroom applied when creating destination sheets.
	extraRows          = 100
	extraStagingCols   = 10
	extraProcessedCols = 5
)

type Options struct {
	RawSheet       string
	StagingSheet   string
	ProcessedSheet string
	ReviewColumn   string
}

func (o *Options) applyDefaults() {
	if o.RawSheet == "" {
		o.RawSheet = "raw_data"
	}
	if o.StagingSheet == "" {
		o.StagingSheet = "staging"
	}
	if o.ProcessedSheet == "" {
		o.ProcessedSheet = "processed"
	}
	if o.ReviewColumn == "" {
		o.ReviewColumn = "Review Text"
	}
}

type Pipeline struct {
	store store.Store
	batch *analyzer.BatchAnalyzer
	opts  Options
}

func New(st store.Store, batch *analyzer.BatchAnalyzer, opts Options) *Pipeline {
	opts.applyDefaults()
	return &Pipeline{store: st, batch: batch, opts: opts}
}

// Run executes the full pipeline and returns the processed table. When
// withAnalysis is false the derived columns are appended but left empty.
func (p *Pipeline) Run(ctx context.Context, withAnalysis bool) (models.Table, error) {
	slog.Info("[Pipeline] Starting ETL pipeline")

	raw, err := p.extractRaw()
	if err != nil {
		return models.Table{}, err
	}

	staged := Transform(raw)

	if err := p.overwrite(p.opts.StagingSheet, staged, extraStagingCols); err != nil {
		return models.Table{}, err
	}

	processed := PrepareProcessed(staged)

	if withAnalysis {
		p.enrich(ctx, &processed)
	}

	if err := p.overwrite(p.opts.ProcessedSheet, processed, extraProcessedCols); err != nil {
		return models.Table{}, err
	}

	slog.Info("[Pipeline] ETL pipeline completed", slog.Int("rows", len(processed.Rows)))
	return processed, nil
}

func (p *Pipeline) extractRaw() (models.Table, error) {
	sheet, err := p.store.Sheet(p.opts.RawSheet)
	if err != nil {
		return models.Table{}, fmt.Errorf("extract raw data: %w", err)
	}

	if protected, err := sheet.Protected(); err == nil && !protected {
		slog.Warn("[Pipeline] Raw sheet is not protected",
			slog.String("sheet", p.opts.RawSheet))
	}

	t, err := sheet.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("extract raw data: %w", err)
	}

	slog.Info("[Pipeline] Extracted raw rows",
		slog.String("sheet", p.opts.RawSheet),
		slog.Int("rows", len(t.Rows)))
	return t, nil
}

// Transform cleans every cell and drops rows left completely empty. Rows
// keeping at least one non-empty value survive.
func Transform(t models.Table) models.Table {
	out := models.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]models.Row, 0, len(t.Rows)),
	}

	dropped := 0
	for _, row := range t.Rows {
		clean := make(models.Row, len(out.Columns))
		for _, col := range out.Columns {
			clean[col] = utils.CleanText(row[col])
		}
		if clean.IsEmpty(out.Columns) {
			dropped++
			continue
		}
		out.Rows = append(out.Rows, clean)
	}

	if dropped > 0 {
		slog.Info("[Pipeline] Dropped completely empty rows", slog.Int("dropped", dropped))
	}
	slog.Info("[Pipeline] Transformed rows for staging", slog.Int("rows", len(out.Rows)))
	return out
}

// PrepareProcessed copies the staged table and appends the three derived
// columns, empty, in the order downstream consumers expect.
func PrepareProcessed(staged models.Table) models.Table {
	processed := staged.Clone()
	processed.AppendColumn(models.ColumnSentiment)
	processed.AppendColumn(models.ColumnSummary)
	processed.AppendColumn(models.ColumnAction)
	return processed
}

// enrich fills the derived columns from the batch analyzer. A missing
// review column degrades to a skip; it never fails the run.
func (p *Pipeline) enrich(ctx context.Context, t *models.Table) {
	if p.batch == nil {
		slog.Warn("[Pipeline] No analyzer configured, skipping analysis")
		return
	}
	if !t.HasColumn(p.opts.ReviewColumn) {
		slog.Warn("[Pipeline] Review column not found, skipping analysis",
			slog.String("column", p.opts.ReviewColumn),
			slog.Any("available", t.Columns))
		return
	}

	reviews := t.Column(p.opts.ReviewColumn)
	slog.Info("[Pipeline] Analyzing reviews", slog.Int("count", len(reviews)))

	results := p.batch.AnalyzeAll(ctx, reviews)

	sentiments := make([]string, len(results))
	summaries := make([]string, len(results))
	actions := make([]string, len(results))
	counts := make(map[string]int)
	for i, r := range results {
		sentiments[i] = r.Sentiment
		summaries[i] = r.Summary
		actions[i] = r.ActionNeeded
		counts[r.Sentiment]++
	}

	t.SetColumn(models.ColumnSentiment, sentiments)
	t.SetColumn(models.ColumnSummary, summaries)
	t.SetColumn(models.ColumnAction, actions)

	slog.Info("[Pipeline] Analysis completed",
		slog.Int("positive", counts[models.SentimentPositive]),
		slog.Int("negative", counts[models.SentimentNegative]),
		slog.Int("neutral", counts[models.SentimentNeutral]),
		slog.Int("errors", counts[models.SentimentError]))
}

// overwrite ensures the destination sheet exists with headroom, then does a
// clear-and-write of the whole table.
func (p *Pipeline) overwrite(name string, t models.Table, colHeadroom int) error {
	sheet, err := store.EnsureSheet(p.store, name, len(t.Rows)+extraRows, len(t.Columns)+colHeadroom)
	if err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	if err := sheet.Clear(); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	if err := sheet.WriteAll(t); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	slog.Info("[Pipeline] Loaded rows",
		slog.String("sheet", name),
		slog.Int("rows", len(t.Rows)))
	return nil
}
