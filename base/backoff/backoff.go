// Package backoff spaces out retries of an operation that failed for a
// transient reason.
package backoff

import (
	"context"
	"time"
)

// Strategy returns the wait before the next attempt, given how many waits
// already happened.
type Strategy func(count int, start time.Duration) time.Duration

func exponential(count int, start time.Duration) time.Duration {
	return start << uint(count)
}

type Backoff struct {
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     Strategy
}

// New caps every wait at limit; a zero limit means uncapped.
func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential, start, limit)
}

func (b *Backoff) Reset() {
	b.count = 0
	b.NextDuration = b.next()
}

// Count is the number of completed waits since the last Reset.
func (b *Backoff) Count() int {
	return b.count
}

// Backoff waits NextDuration, or returns early with ctx's error.
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.count++
	b.NextDuration = b.next()
	return nil
}

// Retry calls fn until it succeeds, retryable reports false, attempts run
// out or ctx is done.
func (b *Backoff) Retry(ctx context.Context, attempts int, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		if berr := b.Backoff(ctx); berr != nil {
			return berr
		}
	}
	return err
}

func (b *Backoff) next() time.Duration {
	d := b.strategy(b.count, b.start)
	// the shift overflows to zero or below after enough doublings
	if d <= 0 || (b.limit > 0 && d > b.limit) {
		d = b.limit
	}
	return d
}
