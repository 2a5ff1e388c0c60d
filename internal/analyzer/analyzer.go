// Package analyzer classifies review sentiment and produces one-sentence
// summaries, either through an LLM completion service or a local VADER
// fallback.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/reviewlens/reviewlens/internal/models"
)

// CompletionService is the single-attempt call to the external language
// model; retries live in the policy wrapped around it.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ReviewAnalyzer classifies one review. Implementations never fail: an
// unclassifiable review comes back with the Error sentinel instead.
type ReviewAnalyzer interface {
	Analyze(ctx context.Context, reviewText string) models.ReviewAnalysis
}

const failedSummary = "Failed to analyze"

const promptTemplate = `Analyze the following customer review and provide:
1. Sentiment: Classify as exactly one of: Positive, Negative, or Neutral
2. Summary: Provide a one-sentence summary of the review

Review: "%s"

Respond in the following format:
Sentiment: [Positive/Negative/Neutral]
Summary: [One sentence summary]

If the review is too short to summarize meaningfully, just repeat the original text as the summary.`

// Classifier analyzes reviews through a CompletionService with a retry
// policy around each call.
type Classifier struct {
	svc   CompletionService
	retry RetryPolicy
}

func NewClassifier(svc CompletionService, retry RetryPolicy) *Classifier {
	return &Classifier{svc: svc, retry: retry}
}

// Analyze classifies a single review. Empty reviews short-circuit without a
// service call; exhausted retries yield the Error sentinel.
func (c *Classifier) Analyze(ctx context.Context, reviewText string) models.ReviewAnalysis {
	if strings.TrimSpace(reviewText) == "" {
		return models.ReviewAnalysis{}
	}

	prompt := fmt.Sprintf(promptTemplate, reviewText)

	var raw string
	err := c.retry.Do(func() error {
		var callErr error
		raw, callErr = c.svc.Complete(ctx, prompt)
		return callErr
	})
	if err != nil {
		return models.ReviewAnalysis{
			Sentiment: models.SentimentError,
			Summary:   failedSummary,
		}
	}

	sentiment, summary := parseResponse(raw, reviewText)
	return models.ReviewAnalysis{Sentiment: sentiment, Summary: summary}
}

// parseResponse extracts sentiment and summary from the raw completion text.
// The first "Sentiment:" line wins: an exact Positive/Negative/Neutral token
// is taken verbatim, otherwise a case-insensitive substring match on
// positive/negative decides, otherwise Neutral. The first "Summary:" line
// wins, falling back to the original review when its remainder is empty.
// A response with neither line yields Neutral plus the original review.
func parseResponse(raw, originalReview string) (string, string) {
	sentiment := models.SentimentNeutral
	summary := originalReview

	var haveSentiment, haveSummary bool
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case !haveSentiment && strings.HasPrefix(line, "Sentiment:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Sentiment:"))
			switch {
			case value == models.SentimentPositive ||
				value == models.SentimentNegative ||
				value == models.SentimentNeutral:
				sentiment = value
			case strings.Contains(strings.ToLower(value), "positive"):
				sentiment = models.SentimentPositive
			case strings.Contains(strings.ToLower(value), "negative"):
				sentiment = models.SentimentNegative
			default:
				sentiment = models.SentimentNeutral
			}
			haveSentiment = true

		case !haveSummary && strings.HasPrefix(line, "Summary:"):
			if value := strings.TrimSpace(strings.TrimPrefix(line, "Summary:")); value != "" {
				summary = value
			}
			haveSummary = true
		}
	}

	return sentiment, summary
}

// DetermineActionNeeded flags negative reviews for follow-up. Every other
// label, the empty one included, needs none.
func DetermineActionNeeded(sentiment string) string {
	if sentiment == models.SentimentNegative {
		return models.ActionYes
	}
	return models.ActionNo
}
