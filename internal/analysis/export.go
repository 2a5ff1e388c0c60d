package analysis

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/reviewlens/reviewlens/internal/models"
)

// ExportCSV writes the per-category breakdown to a CSV file and returns its
// path.
func ExportCSV(r models.Report, path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report csv %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{r.CategoryColumn, r.SentimentColumn, "count", "total", "percentage"}); err != nil {
		f.Close()
		return "", fmt.Errorf("write report csv header: %w", err)
	}
	for _, stat := range r.ByCategory {
		record := []string{
			stat.Category,
			stat.Sentiment,
			strconv.Itoa(stat.Count),
			strconv.Itoa(stat.Total),
			strconv.FormatFloat(stat.Percentage, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return "", fmt.Errorf("write report csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush report csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report csv: %w", err)
	}

	slog.Info("[Export] Exported detailed analysis", slog.String("file", path))
	return path, nil
}
