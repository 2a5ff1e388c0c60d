package analyzer

import (
	"log/slog"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
)

// RetryPolicy retries an operation a fixed number of times with a fixed
// delay between attempts. It carries no backoff or jitter; the external
// service's own rate limiter recovers during the pause.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration

	sleep func(time.Duration)
}

func NewRetryPolicy(maxAttempts int, delay time.Duration) RetryPolicy {
	return RetryPolicy{MaxAttempts: maxAttempts, Delay: delay, sleep: time.Sleep}
}

// Do runs op until it succeeds or the attempt budget is exhausted, returning
// the last error. A MaxAttempts below 1 still runs op once.
func (p RetryPolicy) Do(op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt < attempts {
			slog.Warn("[Analyzer] Service call failed, retrying...",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", attempts),
				slog.String("error", err.Error()))
			sleep(p.Delay)
		}
	}

	slog.Warn("[Analyzer] Service call failed after all attempts",
		slog.Int("attempts", attempts),
		slog.String("error", err.Error()))
	return err
}
