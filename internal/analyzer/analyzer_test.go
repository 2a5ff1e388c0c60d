package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewlens/reviewlens/internal/models"
)

type fakeService struct {
	calls     int
	responses []string
	errs      []error
}

func (f *fakeService) Complete(ctx context.Context, prompt string) (string, error) {
	idx := f.calls
	f.calls++
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func noSleepPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: maxAttempts, Delay: time.Second, sleep: func(time.Duration) {}}
}

func TestClassifier_EmptyReviewShortCircuits(t *testing.T) {
	svc := &fakeService{responses: []string{"Sentiment: Positive\nSummary: Should not be called."}}
	c := NewClassifier(svc, noSleepPolicy(3))

	for _, review := range []string{"", "   ", "\n\t"} {
		got := c.Analyze(context.Background(), review)
		assert.Equal(t, models.ReviewAnalysis{}, got)
	}
	assert.Zero(t, svc.calls, "empty reviews must not reach the service")
}

func TestClassifier_ParsesServiceResponse(t *testing.T) {
	svc := &fakeService{responses: []string{"Sentiment: Negative\nSummary: Poor fit."}}
	c := NewClassifier(svc, noSleepPolicy(3))

	got := c.Analyze(context.Background(), "The dress did not fit at all.")

	assert.Equal(t, models.SentimentNegative, got.Sentiment)
	assert.Equal(t, "Poor fit.", got.Summary)
	assert.Equal(t, 1, svc.calls)
}

func TestClassifier_RetryExhaustionReturnsSentinel(t *testing.T) {
	boom := errors.New("service unavailable")
	svc := &fakeService{errs: []error{boom, boom, boom}}
	c := NewClassifier(svc, noSleepPolicy(3))

	got := c.Analyze(context.Background(), "Lovely fabric")

	assert.Equal(t, models.SentimentError, got.Sentiment)
	assert.Equal(t, "Failed to analyze", got.Summary)
	assert.Equal(t, 3, svc.calls, "attempt budget of 3 means exactly 3 calls")
}

func TestClassifier_RecoversAfterTransientFailure(t *testing.T) {
	boom := errors.New("timeout")
	svc := &fakeService{
		errs:      []error{boom, boom, nil},
		responses: []string{"", "", "Sentiment: Positive\nSummary: Loved it."},
	}
	c := NewClassifier(svc, noSleepPolicy(3))

	got := c.Analyze(context.Background(), "Loved this top, wore it all week.")

	require.Equal(t, 3, svc.calls)
	assert.Equal(t, models.SentimentPositive, got.Sentiment)
	assert.Equal(t, "Loved it.", got.Summary)
}

func TestParseResponse(t *testing.T) {
	original := "The zipper broke on day one."

	tests := []struct {
		name          string
		raw           string
		wantSentiment string
		wantSummary   string
	}{
		{
			name:          "well formed response",
			raw:           "Sentiment: Negative\nSummary: Poor fit.",
			wantSentiment: models.SentimentNegative,
			wantSummary:   "Poor fit.",
		},
		{
			name:          "exact labels are taken verbatim",
			raw:           "Sentiment: Positive\nSummary: Works great.",
			wantSentiment: models.SentimentPositive,
			wantSummary:   "Works great.",
		},
		{
			name:          "invalid token without summary falls back",
			raw:           "Sentiment: Amazing",
			wantSentiment: models.SentimentNeutral,
			wantSummary:   original,
		},
		{
			name:          "substring match is case insensitive",
			raw:           "Sentiment: overwhelmingly POSITIVE review\nSummary: Glowing.",
			wantSentiment: models.SentimentPositive,
			wantSummary:   "Glowing.",
		},
		{
			name:          "negative substring",
			raw:           "Sentiment: clearly negative tone here",
			wantSentiment: models.SentimentNegative,
			wantSummary:   original,
		},
		{
			name:          "empty summary remainder falls back to review",
			raw:           "Sentiment: Neutral\nSummary:",
			wantSentiment: models.SentimentNeutral,
			wantSummary:   original,
		},
		{
			name:          "neither line present",
			raw:           "I could not classify this.",
			wantSentiment: models.SentimentNeutral,
			wantSummary:   original,
		},
		{
			name:          "first matching line wins",
			raw:           "Sentiment: Positive\nSentiment: Negative\nSummary: First.\nSummary: Second.",
			wantSentiment: models.SentimentPositive,
			wantSummary:   "First.",
		},
		{
			name:          "unrelated lines are ignored",
			raw:           "Here is my analysis:\nSentiment: Neutral\nSummary: Fine.\nThanks!",
			wantSentiment: models.SentimentNeutral,
			wantSummary:   "Fine.",
		},
		{
			name:          "indented lines are trimmed before matching",
			raw:           "  Sentiment: Negative  \n  Summary: Ripped seam.  ",
			wantSentiment: models.SentimentNegative,
			wantSummary:   "Ripped seam.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, summary := parseResponse(tt.raw, original)
			assert.Equal(t, tt.wantSentiment, sentiment)
			assert.Equal(t, tt.wantSummary, summary)
		})
	}
}

func TestDetermineActionNeeded(t *testing.T) {
	tests := []struct {
		sentiment string
		expected  string
	}{
		{models.SentimentNegative, models.ActionYes},
		{models.SentimentPositive, models.ActionNo},
		{models.SentimentNeutral, models.ActionNo},
		{models.SentimentError, models.ActionNo},
		{"", models.ActionNo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetermineActionNeeded(tt.sentiment), "sentiment %q", tt.sentiment)
	}
}

func TestRetryPolicy_Do(t *testing.T) {
	t.Run("stops on first success", func(t *testing.T) {
		calls := 0
		p := noSleepPolicy(3)
		err := p.Do(func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error after budget", func(t *testing.T) {
		calls := 0
		boom := errors.New("nope")
		p := noSleepPolicy(3)
		err := p.Do(func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("budget below one still runs once", func(t *testing.T) {
		calls := 0
		p := noSleepPolicy(0)
		err := p.Do(func() error {
			calls++
			return errors.New("nope")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("sleeps between attempts but not after the last", func(t *testing.T) {
		sleeps := 0
		p := RetryPolicy{MaxAttempts: 3, Delay: time.Second, sleep: func(d time.Duration) {
			sleeps++
			assert.Equal(t, time.Second, d)
		}}
		_ = p.Do(func() error { return errors.New("nope") })
		assert.Equal(t, 2, sleeps)
	})
}
