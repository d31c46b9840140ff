// Package ratelimit bounds how often a key (a client IP for logins) may
// perform an action within a window.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether the next attempt of key is allowed. When it is not,
// retryAfter says how long the caller should wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// Policy is the number of attempts allowed per window.
type Policy struct {
	Attempts int
	Window   time.Duration
}
