package vault

import (
	"sync"
	"time"
)

const (
	maxFailures   = 5
	failureWindow = 5 * time.Minute
	lockoutPeriod = 30 * time.Second
)

// RateLimiter tracks failed unlock attempts in-process. Five failures
// inside a rolling five-minute window lock the vault for thirty seconds.
// State is not persisted; a restart clears it.
type RateLimiter struct {
	mu          sync.Mutex
	failures    []time.Time
	lockedUntil time.Time
	now         func() time.Time
}

// NewRateLimiter returns a limiter using the wall clock.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{now: time.Now}
}

// NewRateLimiterWithClock returns a limiter with an injected clock for
// tests.
func NewRateLimiterWithClock(now func() time.Time) *RateLimiter {
	return &RateLimiter{now: now}
}

// Locked reports whether attempts are currently refused, and if so for
// how much longer.
func (r *RateLimiter) Locked() (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if now.Before(r.lockedUntil) {
		return true, r.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailure registers a failed attempt and returns true if it
// triggered a lockout.
func (r *RateLimiter) RecordFailure() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()

	cutoff := now.Add(-failureWindow)
	kept := r.failures[:0]
	for _, t := range r.failures {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.failures = append(kept, now)

	if len(r.failures) >= maxFailures {
		r.lockedUntil = now.Add(lockoutPeriod)
		r.failures = r.failures[:0]
		return true
	}
	return false
}

// RecordSuccess clears the failure history.
func (r *RateLimiter) RecordSuccess() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = r.failures[:0]
	r.lockedUntil = time.Time{}
}
