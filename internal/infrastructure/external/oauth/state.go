package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
)

const stateExpiration = 10 * time.Minute

// StateManager issues and consumes OAuth state tokens for CSRF protection
type StateManager struct {
	store      cache.Store
	expiration time.Duration
}

// NewStateManager creates a state manager backed by store
func NewStateManager(store cache.Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: stateExpiration,
	}
}

// GenerateState generates a random state token and stores it
func (sm *StateManager) GenerateState(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	if err := sm.store.Set(ctx, cache.OAuthStateKey(state), "1", sm.expiration); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeState reports whether state was issued and not yet used. A state
// validates at most once.
func (sm *StateManager) ConsumeState(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	_, ok, err := sm.store.Take(ctx, cache.OAuthStateKey(state))
	if err != nil {
		return false, err
	}
	return ok, nil
}
