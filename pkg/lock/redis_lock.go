// Package lock provides a minimal Redis-backed run lock so only one weekly
// batch run is active at a time.
package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRunLock(client *redis.Client, key string, ttl time.Duration) *RunLock {
	return &RunLock{client: client, key: key, ttl: ttl}
}

// Acquire takes the lock via SETNX. The TTL bounds how long a crashed run can
// block the next one.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// Release deletes the lock key. Safe to call after a failed run.
func (l *RunLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
