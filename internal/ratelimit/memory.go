package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// keyWindow is the attempt budget of one key in its current window.
type keyWindow struct {
	// limiter has a zero refill rate, so its burst is the whole budget of
	// the window.
	limiter *rate.Limiter
	resetAt time.Time
}

// MemoryLimiter is a per-key fixed window kept in process memory. A key's
// window opens at its first attempt and allows Attempts attempts until it
// closes Window later.
type MemoryLimiter struct {
	policy          Policy
	cleanupInterval time.Duration

	mu      sync.Mutex
	windows map[string]*keyWindow

	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewMemoryLimiter starts a limiter with a background goroutine that drops
// expired windows. Call Stop to release it.
func NewMemoryLimiter(policy Policy, cleanupInterval time.Duration) *MemoryLimiter {
	if cleanupInterval <= 0 {
		cleanupInterval = policy.Window
	}
	ml := &MemoryLimiter{
		policy:          policy,
		cleanupInterval: cleanupInterval,
		windows:         make(map[string]*keyWindow),
		stopCh:          make(chan struct{}),
		now:             time.Now,
	}

	go ml.cleanupLoop()

	return ml
}

// Stop terminates the cleanup goroutine. It is safe to call more than once.
func (ml *MemoryLimiter) Stop() {
	ml.stopOnce.Do(func() { close(ml.stopCh) })
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := ml.now()

	ml.mu.Lock()
	defer ml.mu.Unlock()

	w, exists := ml.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &keyWindow{
			limiter: rate.NewLimiter(0, ml.policy.Attempts),
			resetAt: now.Add(ml.policy.Window),
		}
		ml.windows[key] = w
	}

	if w.limiter.AllowN(now, 1) {
		return true, 0, nil
	}
	return false, w.resetAt.Sub(now), nil
}

// KeyCount returns the number of tracked keys.
func (ml *MemoryLimiter) KeyCount() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.windows)
}

func (ml *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(ml.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ml.cleanup(ml.now())
		case <-ml.stopCh:
			return
		}
	}
}

// cleanup drops keys whose window has closed. Their next attempt opens a new
// window anyway.
func (ml *MemoryLimiter) cleanup(now time.Time) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	for key, w := range ml.windows {
		if !now.Before(w.resetAt) {
			delete(ml.windows, key)
		}
	}
}
