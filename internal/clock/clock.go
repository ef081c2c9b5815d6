// Package clock provides the process-wide nanosecond clock used to stamp
// ledger entities.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time in nanoseconds since the Unix epoch.
type Clock interface {
	Now() int64
}

// ToTime converts a nanosecond reading into a UTC calendar timestamp.
func ToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// Monotonic wraps the wall clock so that readings never go backwards, even
// if the system time is stepped.
type Monotonic struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMonotonic returns a Monotonic clock backed by time.Now.
func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// Now returns the current reading, clamped to be no earlier than the
// previous one.
func (m *Monotonic) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns := m.now().UnixNano()
	if ns < m.last {
		ns = m.last
	}
	m.last = ns
	return ns
}

// Fixed always reports the same instant.
type Fixed int64

// Now implements Clock.
func (f Fixed) Now() int64 { return int64(f) }

// Stepping starts at a fixed instant and advances by a constant step on
// every reading.
type Stepping struct {
	mu   sync.Mutex
	next int64
	step int64
}

// NewStepping returns a Stepping clock starting at start.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{next: start.UnixNano(), step: int64(step)}
}

// Now implements Clock.
func (s *Stepping) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.next
	s.next += s.step
	return ns
}
