package clock

import (
	"sync"
	"time"
)

// Clock is the single time source shared by the auction components.
// Implementations return UTC times truncated to the second.
type Clock interface {
	Now() time.Time
}

type system struct{}

// System returns the wall clock.
func System() Clock {
	return system{}
}

func (system) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Manual is a settable clock for tests and replays. It never moves on its own.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UTC().Truncate(time.Second)}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d).Truncate(time.Second)
}

// Set jumps to t, which must not be before the current time.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t = t.UTC().Truncate(time.Second)
	if t.After(m.now) {
		m.now = t
	}
}
