package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/reviewlens/reviewlens/internal/models"
)

// CleanText coerces an arbitrary cell scalar to a standardized string: nil,
// NaN and empty values become "", everything else is stringified, trimmed,
// and has internal whitespace runs (newlines included) collapsed to a single
// space. Idempotent.
func CleanText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(v) {
			return ""
		}
	case float32:
		if math.IsNaN(float64(v)) {
			return ""
		}
	}

	s := cast.ToString(value)
	return strings.Join(strings.Fields(s), " ")
}

// ValidateColumns reports the columns missing from the table, if any.
func ValidateColumns(t models.Table, required []string) error {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
