package clock

import (
	"testing"
	"time"
)

func TestMonotonicNeverGoesBackwards(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	readings := []time.Time{
		base,
		base.Add(time.Second),
		base.Add(-time.Hour), // system clock stepped back
		base.Add(2 * time.Second),
	}
	i := 0
	m := &Monotonic{now: func() time.Time {
		r := readings[i]
		i++
		return r
	}}

	var prev int64
	for range readings {
		got := m.Now()
		if got < prev {
			t.Fatalf("reading %d went backwards: %d < %d", i, got, prev)
		}
		prev = got
	}
	if want := base.Add(2 * time.Second).UnixNano(); prev != want {
		t.Errorf("last reading = %d, want %d", prev, want)
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2023, 11, 14, 22, 13, 20, 123, time.UTC)
	got := ToTime(want.UnixNano())
	if !got.Equal(want) {
		t.Errorf("ToTime = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}

func TestStepping(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStepping(start, time.Millisecond)

	first := s.Now()
	second := s.Now()
	if first != start.UnixNano() {
		t.Errorf("first = %d, want %d", first, start.UnixNano())
	}
	if second-first != int64(time.Millisecond) {
		t.Errorf("step = %d, want %d", second-first, time.Millisecond)
	}
}

func TestFixed(t *testing.T) {
	f := Fixed(42)
	if f.Now() != 42 || f.Now() != 42 {
		t.Error("Fixed clock should always report the same value")
	}
}
