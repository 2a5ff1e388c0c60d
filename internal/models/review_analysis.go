package models

// Sentiment labels produced by the analyzer. Error marks a review the
// service could not classify after exhausting retries; the empty label marks
// a review that was empty to begin with.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
	SentimentError    = "Error"
)

const (
	ActionYes = "Yes"
	ActionNo  = "No"
)

// Derived columns appended to the processed sheet, in this order.
const (
	ColumnSentiment = "AI Sentiment"
	ColumnSummary   = "AI Summary"
	ColumnAction    = "Action Needed?"
)

type ReviewAnalysis struct {
	Sentiment string `json:"sentiment"`
	Summary   string `json:"summary"`
}

type AnalyzedReview struct {
	ReviewAnalysis
	ActionNeeded string `json:"action_needed"`
}
