package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Analyzer providers selectable through ANALYZER_PROVIDER.
const (
	ProviderGroq  = "groq"
	ProviderVader = "vader"
)

// Config carries every knob for one pipeline run. It is constructed once in
// main and passed into components explicitly; nothing reads the environment
// after this point.
type Config struct {
	WorkbookPath string `envconfig:"REVIEWLENS_WORKBOOK" default:"reviewlens.db"`

	RawSheet       string `envconfig:"RAW_SHEET" default:"raw_data"`
	StagingSheet   string `envconfig:"STAGING_SHEET" default:"staging"`
	ProcessedSheet string `envconfig:"PROCESSED_SHEET" default:"processed"`

	ReviewColumn   string `envconfig:"REVIEW_COLUMN" default:"Review Text"`
	CategoryColumn string `envconfig:"CATEGORY_COLUMN" default:"Class Name"`

	AnalyzerProvider string        `envconfig:"ANALYZER_PROVIDER" default:"groq"`
	GroqAPIKey       string        `envconfig:"GROQ_API_KEY"`
	GroqModel        string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GroqBaseURL      string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	MaxRetries       int           `envconfig:"ANALYZER_MAX_RETRIES" default:"3"`
	RetryDelay       time.Duration `envconfig:"ANALYZER_RETRY_DELAY" default:"1s"`

	OutputDir string `envconfig:"OUTPUT_DIR" default:"visualizations"`
	ReportCSV string `envconfig:"REPORT_CSV" default:"sentiment_analysis_report.csv"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}
