package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
)

// LoginLimiter counts failed password logins per username in a fixed window.
type LoginLimiter struct {
	store       cache.Store
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window
func NewLoginLimiter(store cache.Store, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{store: store, maxAttempts: maxAttempts, window: window}
}

// Window is the length of the lockout window.
func (l *LoginLimiter) Window() time.Duration {
	return l.window
}

// Blocked reports whether username has used up its failures for the current window.
func (l *LoginLimiter) Blocked(ctx context.Context, username string) (bool, error) {
	v, ok, err := l.store.Get(ctx, cache.LoginAttemptsKey(normalize(username)))
	if err != nil || !ok {
		return false, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, err
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure counts one failed attempt and returns the running total.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) (int64, error) {
	return l.store.IncrWithExpiry(ctx, cache.LoginAttemptsKey(normalize(username)), l.window)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.store.Delete(ctx, cache.LoginAttemptsKey(normalize(username)))
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
