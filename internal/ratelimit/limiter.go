// Package ratelimit provides a per-client sliding-window request limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per client identity inside a trailing time window.
// State is process-local and resets on restart.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string][]time.Time
	clock   func() time.Time
}

func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		max:     maxRequests,
		window:  window,
		clients: make(map[string][]time.Time),
		clock:   time.Now,
	}
}

// Allow reports whether the identity may make a request now. An allowed
// request is recorded; a denied one is not.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	recent := l.pruneLocked(identity, now)
	if len(recent) >= l.max {
		return false
	}
	l.clients[identity] = append(recent, now)
	return true
}

// Remaining returns how many requests the identity has left in the current
// window. It never records a request and never returns a negative number.
func (l *Limiter) Remaining(identity string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.pruneLocked(identity, l.clock())
	if remaining := l.max - len(recent); remaining > 0 {
		return remaining
	}
	return 0
}

// Sweep drops identities whose every recorded request has aged out of the
// window and returns how many were removed. The runtime calls this
// periodically so idle clients do not accumulate forever.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	removed := 0
	for identity := range l.clients {
		if len(l.pruneLocked(identity, now)) == 0 {
			removed++
		}
	}
	return removed
}

// pruneLocked drops timestamps older than the window and deletes the map
// entry when nothing recent remains. Caller must hold l.mu.
func (l *Limiter) pruneLocked(identity string, now time.Time) []time.Time {
	stamps := l.clients[identity]
	cutoff := now.Add(-l.window)
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.clients, identity)
		return nil
	}
	l.clients[identity] = kept
	return kept
}
