package cache

import (
	"context"
	"time"
)

// Locker provides short-lived advisory locks keyed by string.
// TryLock acquires the lock when free and reports whether it
// succeeded; the lease expires on its own after ttl.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}
