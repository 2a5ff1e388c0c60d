package analyzer

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/reviewlens/reviewlens/internal/models"
)

const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// LocalClassifier scores reviews with VADER, for offline runs where no
// completion service is configured. It cannot summarize, so the summary is
// always the review text itself.
type LocalClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLocalClassifier() *LocalClassifier {
	return &LocalClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (c *LocalClassifier) Analyze(ctx context.Context, reviewText string) models.ReviewAnalysis {
	if strings.TrimSpace(reviewText) == "" {
		return models.ReviewAnalysis{}
	}

	scores := c.analyzer.PolarityScores(markdownToText(reviewText))

	var sentiment string
	switch {
	case scores.Compound >= vaderPositiveThreshold:
		sentiment = models.SentimentPositive
	case scores.Compound <= vaderNegativeThreshold:
		sentiment = models.SentimentNegative
	default:
		sentiment = models.SentimentNeutral
	}

	return models.ReviewAnalysis{Sentiment: sentiment, Summary: reviewText}
}

func removeLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

func markdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")
	return removeLinks(plainText)
}
