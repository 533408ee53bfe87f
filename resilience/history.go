package resilience

import (
	"sync"
	"time"
)

// DefaultWindow is the trailing window failures are counted over.
const DefaultWindow = 60 * time.Second

// DefaultThreshold is the failure count at which an operation is
// considered frequently failing.
const DefaultThreshold = 3

// Stat is a read-only snapshot of one operation's recent failures.
type Stat struct {
	// Count is the number of failures inside the trailing window.
	Count int `json:"count"`

	// LastError is the timestamp of the most recent failure, or nil
	// when no failure is inside the window.
	LastError *time.Time `json:"last_error"`
}

// History tracks failure timestamps per operation name over a trailing
// window. Entries older than the window are pruned lazily on both read and
// write and are never returned by read accessors.
//
// Contract:
// - Concurrency: safe for concurrent use from multiple named operations.
// - Ownership: mutation only through RecordError and Clear; accessors
//   return caller-owned snapshots.
type History struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	failures map[string][]time.Time
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithClock replaces the time source. Tests use this to advance a mock
// clock instead of waiting out the real window.
func WithClock(now func() time.Time) HistoryOption {
	return func(h *History) {
		h.now = now
	}
}

// WithWindow overrides the trailing window length.
func WithWindow(window time.Duration) HistoryOption {
	return func(h *History) {
		h.window = window
	}
}

// NewHistory creates an empty failure history with a 60-second window and
// the real clock.
func NewHistory(opts ...HistoryOption) *History {
	h := &History{
		window:   DefaultWindow,
		now:      time.Now,
		failures: make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RecordError appends a failure timestamp for name, pruning aged entries
// first.
func (h *History) RecordError(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	h.failures[name] = append(h.pruneLocked(name, now), now)
}

// Clear forgets all failures recorded for name.
func (h *History) Clear(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.failures, name)
}

// Count returns the number of failures for name inside the window.
func (h *History) Count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	recent := h.pruneLocked(name, h.now())
	h.storeLocked(name, recent)
	return len(recent)
}

// IsFrequentlyFailing reports whether name has accumulated at least
// threshold failures inside the trailing window. A threshold of zero or
// less falls back to [DefaultThreshold].
func (h *History) IsFrequentlyFailing(name string, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return h.Count(name) >= threshold
}

// Stats returns a snapshot of every operation with at least one failure
// inside the window.
func (h *History) Stats() map[string]Stat {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	stats := make(map[string]Stat, len(h.failures))
	for name := range h.failures {
		recent := h.pruneLocked(name, now)
		h.storeLocked(name, recent)
		if len(recent) == 0 {
			continue
		}
		last := recent[len(recent)-1]
		stats[name] = Stat{Count: len(recent), LastError: &last}
	}
	return stats
}

// Window returns the trailing window length.
func (h *History) Window() time.Duration {
	return h.window
}

// pruneLocked returns name's timestamps still inside the window at now.
// Caller holds h.mu.
func (h *History) pruneLocked(name string, now time.Time) []time.Time {
	cutoff := now.Add(-h.window)
	entries := h.failures[name]
	kept := entries[:0:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// storeLocked writes back a pruned slice, dropping empty entries so the
// map does not grow without bound. Caller holds h.mu.
func (h *History) storeLocked(name string, entries []time.Time) {
	if len(entries) == 0 {
		delete(h.failures, name)
		return
	}
	h.failures[name] = entries
}
