package automation

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) *redisProcessingLock {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &redisProcessingLock{client: client}
}

func TestRedisProcessingLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire for the same user fails until release", func(t *testing.T) {
		lock := newTestLock(t)

		ok, err := lock.Acquire(ctx, "user-a")
		if err != nil || !ok {
			t.Fatalf("Acquire() = %v, %v, want true, nil", ok, err)
		}

		ok, err = lock.Acquire(ctx, "user-a")
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if ok {
			t.Error("second Acquire() succeeded while lock held")
		}

		if err := lock.Release(ctx, "user-a"); err != nil {
			t.Fatalf("Release() error = %v", err)
		}

		ok, err = lock.Acquire(ctx, "user-a")
		if err != nil || !ok {
			t.Errorf("Acquire() after release = %v, %v, want true, nil", ok, err)
		}
	})

	t.Run("locks are per user", func(t *testing.T) {
		lock := newTestLock(t)

		if ok, _ := lock.Acquire(ctx, "user-a"); !ok {
			t.Fatal("Acquire(user-a) failed")
		}
		if ok, _ := lock.Acquire(ctx, "user-b"); !ok {
			t.Error("Acquire(user-b) blocked by user-a's lock")
		}
	})
}
