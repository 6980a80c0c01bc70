// Package ratelimit implements a process-local sliding-window rate limiter
// keyed by client identifier. It is best effort: state lives in memory, so
// horizontally scaled deployments get independent limits per instance. The
// admission interface is the contract; a shared counter store could replace
// the in-process cache behind it without touching callers.
package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Clock supplies the current time. Injectable for tests.
type Clock func() time.Time

// SlidingWindow admits at most capacity requests per key within the trailing
// window. Entries are pruned lazily on each check; keys whose window has
// drained are swept by the underlying cache janitor so the map does not grow
// without bound.
type SlidingWindow struct {
	window   time.Duration
	capacity int
	clock    Clock

	mu      sync.Mutex // guards entry creation only
	entries *cache.Cache
}

// entry carries its own lock so concurrent admits for the same key are
// linearizable while different keys never contend.
type entry struct {
	mu     sync.Mutex
	stamps []time.Time
}

// Option configures a SlidingWindow.
type Option func(*SlidingWindow)

// WithClock replaces the wall clock, used by tests to control time.
func WithClock(clock Clock) Option {
	return func(l *SlidingWindow) {
		l.clock = clock
	}
}

// NewSlidingWindow creates a limiter with the given window and capacity.
// Idle keys are evicted after twice the window, which is always past the
// point where their remaining timestamps could still matter.
func NewSlidingWindow(window time.Duration, capacity int, opts ...Option) *SlidingWindow {
	l := &SlidingWindow{
		window:   window,
		capacity: capacity,
		clock:    time.Now,
		entries:  cache.New(2*window, window),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Admit reports whether a request under key is allowed right now, recording
// the admission timestamp when it is.
func (l *SlidingWindow) Admit(key string) bool {
	return l.AdmitAt(key, l.clock())
}

// AdmitAt is Admit with an explicit evaluation instant. Timestamps that have
// aged out of the trailing window are discarded; if the remaining count has
// reached capacity the request is rejected without being recorded.
//
// The janitor may evict a key between fetching its entry and locking it, in
// which case a concurrent request would be counting against a fresh entry.
// Admitting into the stale one could briefly exceed capacity, so the entry
// is re-checked against the cache under its own lock and refetched if it
// lost the race.
func (l *SlidingWindow) AdmitAt(key string, now time.Time) bool {
	for {
		e := l.entry(key)

		e.mu.Lock()
		if !l.holds(key, e) {
			e.mu.Unlock()
			continue
		}

		cutoff := now.Add(-l.window)
		recent := e.stamps[:0]
		for _, ts := range e.stamps {
			if ts.After(cutoff) {
				recent = append(recent, ts)
			}
		}
		e.stamps = recent

		admitted := len(e.stamps) < l.capacity
		if admitted {
			e.stamps = append(e.stamps, now)
		}
		e.mu.Unlock()
		return admitted
	}
}

// entry returns the live entry for key, creating it if absent. The Set also
// refreshes the eviction deadline so the janitor only reaps idle keys.
func (l *SlidingWindow) entry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var e *entry
	if v, ok := l.entries.Get(key); ok {
		e = v.(*entry)
	} else {
		e = &entry{}
	}
	l.entries.Set(key, e, cache.DefaultExpiration)
	return e
}

// holds reports whether e is still the cached entry for key.
func (l *SlidingWindow) holds(key string, e *entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.entries.Get(key)
	return ok && v.(*entry) == e
}
