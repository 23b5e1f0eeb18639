package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }
	return l, &now
}

func TestAllowUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("request over the limit should be denied")
	}
	if l.Remaining("10.0.0.1") != 0 {
		t.Fatalf("expected 0 remaining, got %d", l.Remaining("10.0.0.1"))
	}
}

func TestDeniedRequestNotRecorded(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Allow("client")
	for i := 0; i < 5; i++ {
		if l.Allow("client") {
			t.Fatal("expected denial")
		}
	}
	// Denials must not extend the window occupancy.
	if got := l.Remaining("client"); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}

func TestCapacityFreesAfterWindow(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	l.Allow("client")
	*now = now.Add(30 * time.Second)
	l.Allow("client")
	if l.Allow("client") {
		t.Fatal("third request inside window should be denied")
	}

	// 61s after the oldest request: exactly one slot frees up.
	*now = now.Add(31 * time.Second)
	if l.Remaining("client") != 1 {
		t.Fatalf("expected 1 remaining, got %d", l.Remaining("client"))
	}
	if !l.Allow("client") {
		t.Fatal("request should be allowed after oldest entry expired")
	}
	if l.Allow("client") {
		t.Fatal("capacity should free one slot at a time")
	}
}

func TestRemainingBounds(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	if got := l.Remaining("fresh"); got != 2 {
		t.Fatalf("expected full capacity for unseen identity, got %d", got)
	}
	l.Allow("fresh")
	l.Allow("fresh")
	l.Allow("fresh")
	l.Allow("fresh")
	if got := l.Remaining("fresh"); got != 0 {
		t.Fatalf("remaining must never go negative, got %d", got)
	}
}

func TestIdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first identity should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("second identity should be unaffected by the first")
	}
	if l.Allow("a") {
		t.Fatal("first identity should now be at its limit")
	}
}

func TestSweepEvictsIdleIdentities(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.Allow("idle")
	l.Allow("busy")
	*now = now.Add(2 * time.Minute)
	l.Allow("busy")

	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("expected 1 idle identity removed, got %d", removed)
	}
	l.mu.Lock()
	_, idleKept := l.clients["idle"]
	_, busyKept := l.clients["busy"]
	l.mu.Unlock()
	if idleKept {
		t.Fatal("idle identity should have been evicted")
	}
	if !busyKept {
		t.Fatal("active identity should have been kept")
	}
}

func TestConcurrentAllowDoesNotExceedLimit(t *testing.T) {
	l := New(10, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan struct{}, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for range allowed {
		count++
	}
	if count != 10 {
		t.Fatalf("expected exactly 10 allowed under contention, got %d", count)
	}
}
