package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration.
// It backs a single process when Redis is not configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	now   func() time.Time
	done  chan struct{}
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	close(ms.done)
}

func (ms *MemoryStore) Ping(context.Context) error {
	return nil
}

// Set stores a key-value pair with expiration. A non-positive ttl never expires.
func (ms *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{value: value, expireTime: ms.expiry(ttl)}
	return nil
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, ok := ms.live(key)
	if !ok {
		return "", false, nil
	}
	return item.value, true, nil
}

func (ms *MemoryStore) Take(_ context.Context, key string) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.live(key)
	delete(ms.items, key)
	if !ok {
		return "", false, nil
	}
	return item.value, true, nil
}

// Delete removes a key
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

func (ms *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for key := range ms.items {
		if strings.HasPrefix(key, prefix) {
			delete(ms.items, key)
		}
	}
	return nil
}

func (ms *MemoryStore) IncrWithExpiry(_ context.Context, key string, expiry time.Duration) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.live(key)
	if !ok {
		ms.items[key] = &memoryItem{value: "1", expireTime: ms.expiry(expiry)}
		return 1, nil
	}

	n, err := strconv.ParseInt(item.value, 10, 64)
	if err != nil {
		return 0, err
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	return n, nil
}

// live returns the item if present and unexpired. Callers hold the lock.
func (ms *MemoryStore) live(key string) (*memoryItem, bool) {
	item, exists := ms.items[key]
	if !exists {
		return nil, false
	}
	if !item.expireTime.IsZero() && ms.now().After(item.expireTime) {
		return nil, false
	}
	return item, true
}

func (ms *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return ms.now().Add(ttl)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := ms.now()
			for key, item := range ms.items {
				if !item.expireTime.IsZero() && now.After(item.expireTime) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
