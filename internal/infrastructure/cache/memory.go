package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is an in-process Locker for single-instance deployments
type MemoryLocker struct {
	mu    sync.Mutex
	items map[string]time.Time
}

// NewMemoryLocker creates a new in-memory locker
func NewMemoryLocker() *MemoryLocker {
	locker := &MemoryLocker{
		items: make(map[string]time.Time),
	}

	// Remove expired leases in the background
	go locker.cleanupExpired()

	return locker
}

// TryLock acquires the lease when free or expired
func (ml *MemoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	expireTime, exists := ml.items[key]
	if exists && time.Now().Before(expireTime) {
		return false, nil
	}

	ml.items[key] = time.Now().Add(ttl)
	return true, nil
}

// Unlock releases the lease
func (ml *MemoryLocker) Unlock(_ context.Context, key string) error {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	delete(ml.items, key)
	return nil
}

// cleanupExpired periodically removes expired leases
func (ml *MemoryLocker) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ml.mu.Lock()
		now := time.Now()
		for key, expireTime := range ml.items {
			if now.After(expireTime) {
				delete(ml.items, key)
			}
		}
		ml.mu.Unlock()
	}
}
