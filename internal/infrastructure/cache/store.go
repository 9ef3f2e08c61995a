// Package cache provides the key-value store shared by the login limiter,
// OAuth state tokens and cached statistics.
package cache

import (
	"context"
	"time"
)

// Store is a string key-value store with per-key expiry.
// Implementations must be safe for concurrent use.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	// Take returns the value and deletes the key in one step.
	Take(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// IncrWithExpiry increments a counter. The expiry is set only when the
	// counter is created, so the window is fixed from the first increment.
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

// Key prefixes
const (
	LoginAttemptsPrefix = "login:attempts:"
	OAuthStatePrefix    = "oauth:state:"
	StatisticsPrefix    = "stats:"
)

// LoginAttemptsKey is the failed-login counter of a username.
func LoginAttemptsKey(username string) string {
	return LoginAttemptsPrefix + username
}

// OAuthStateKey holds a pending OAuth state token.
func OAuthStateKey(state string) string {
	return OAuthStatePrefix + state
}

// StatisticsKey holds one cached statistics response.
func StatisticsKey(name string) string {
	return StatisticsPrefix + name
}
