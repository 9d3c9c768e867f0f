package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker on Redis for multi-instance deployments
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a Redis-backed locker and verifies connectivity
func NewRedisLocker(addr, password string, db int) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLocker{client: client}, nil
}

// TryLock acquires the lease with SET NX
func (rl *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return rl.client.SetNX(ctx, key, "1", ttl).Result()
}

// Unlock releases the lease
func (rl *RedisLocker) Unlock(ctx context.Context, key string) error {
	return rl.client.Del(ctx, key).Err()
}

// Close closes the underlying connection
func (rl *RedisLocker) Close() error {
	return rl.client.Close()
}
