package models

// SentimentStat is one (category, sentiment) cell of the per-category
// distribution: how many reviews of that category carry that label, out of
// the category's filtered total.
type SentimentStat struct {
	Category   string  `json:"category"`
	Sentiment  string  `json:"sentiment"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type OverallSentiment struct {
	Positive     float64 `json:"positive"`
	Negative     float64 `json:"negative"`
	Neutral      float64 `json:"neutral"`
	TotalReviews int     `json:"total_reviews"`
}

// TopCategory names the category with the highest share of a sentiment
// label. Category is "None" when no filtered row carries the label.
type TopCategory struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

type Report struct {
	CategoryColumn  string           `json:"category_column"`
	SentimentColumn string           `json:"sentiment_column"`
	Overall         OverallSentiment `json:"overall_sentiment"`
	ByCategory      []SentimentStat  `json:"by_category"`
	TopPositive     TopCategory      `json:"top_positive"`
	TopNegative     TopCategory      `json:"top_negative"`
	TopNeutral      TopCategory      `json:"top_neutral"`
}
