// Package automation wires the transaction generation engine to its
// infrastructure: the per-user processing lock, the expiry notifier and the
// background worker.
package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fintrack/backend/internal/application/adapter"
)

// lockTTL bounds how long a crashed run can hold a user's lock.
const lockTTL = 5 * time.Minute

// redisProcessingLock implements adapter.ProcessingLock on Redis SET NX.
// The lock is advisory: the transaction store's uniqueness guard is what
// actually prevents double materialization.
type redisProcessingLock struct {
	client *redis.Client
}

// NewRedisProcessingLock creates a Redis-backed processing lock.
func NewRedisProcessingLock(client *redis.Client) adapter.ProcessingLock {
	return &redisProcessingLock{client: client}
}

func lockKey(userID string) string {
	return fmt.Sprintf("automation:lock:%s", userID)
}

// Acquire attempts to take the lock for a user.
func (l *redisProcessingLock) Acquire(ctx context.Context, userID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(userID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire processing lock: %w", err)
	}
	return ok, nil
}

// Release releases the lock for a user.
func (l *redisProcessingLock) Release(ctx context.Context, userID string) error {
	if err := l.client.Del(ctx, lockKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to release processing lock: %w", err)
	}
	return nil
}
