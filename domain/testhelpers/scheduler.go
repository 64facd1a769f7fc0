package testhelpers

import (
	"sort"
	"sync"
	"time"

	"streambot/domain/interfaces"
)

// ManualScheduler is a Scheduler whose clock only moves when a test advances it
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*ManualTimer
}

// ManualTimer is a callback registered on a ManualScheduler
type ManualTimer struct {
	scheduler *ManualScheduler
	delay     time.Duration
	due       time.Time
	fn        func()
	stopped   bool
	fired     bool
}

// NewManualScheduler creates a scheduler frozen at now
func NewManualScheduler(now time.Time) *ManualScheduler {
	return &ManualScheduler{now: now}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) interfaces.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &ManualTimer{scheduler: s, delay: d, due: s.now.Add(d), fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward and runs every live timer that became due
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due []*ManualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && !t.due.After(s.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns timers that are neither stopped nor fired
func (s *ManualScheduler) Pending() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*ManualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
		}
	}
	return pending
}

// All returns every timer ever scheduled, in scheduling order
func (s *ManualScheduler) All() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ManualTimer(nil), s.timers...)
}

// Stop cancels the timer
func (t *ManualTimer) Stop() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback immediately, even if the timer was stopped or already fired.
// It simulates a callback that was dispatched before Stop won the race.
func (t *ManualTimer) Fire() {
	t.scheduler.mu.Lock()
	t.fired = true
	t.scheduler.mu.Unlock()

	t.fn()
}

// Delay returns the duration the timer was scheduled with
func (t *ManualTimer) Delay() time.Duration {
	return t.delay
}

// Stopped reports whether Stop cancelled the timer
func (t *ManualTimer) Stopped() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.stopped
}
