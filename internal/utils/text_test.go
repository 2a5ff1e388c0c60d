package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reviewlens/reviewlens/internal/models"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil input", nil, ""},
		{"empty string", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"already clean", "Great dress", "Great dress"},
		{"leading and trailing whitespace", "  Great dress  ", "Great dress"},
		{"internal whitespace collapsed", "Great   \t dress", "Great dress"},
		{"embedded newlines", "Great\ndress\n\nfits well", "Great dress fits well"},
		{"integer input", 42, "42"},
		{"float input", 4.5, "4.5"},
		{"NaN input", math.NaN(), ""},
		{"boolean input", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"  plain  ",
		"multi\nline\ttext with   gaps",
		"already clean",
	}
	for _, input := range inputs {
		once := CleanText(input)
		assert.Equal(t, once, CleanText(once), "CleanText should be idempotent for %q", input)
	}
}

func TestValidateColumns(t *testing.T) {
	table := models.NewTable("Title", "Review Text", "Class Name")

	assert.NoError(t, ValidateColumns(table, []string{"Title", "Class Name"}))

	err := ValidateColumns(table, []string{"Class Name", "AI Sentiment"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AI Sentiment")
}
