package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/accountd/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RotationLock = (*RotationLock)(nil)

const rotationLockPrefix = "accountd:lock:refresh:"

// RotationLock serializes refresh token rotation per user across instances.
// It uses Redis SETNX with TTL, with a unique owner ID so one instance
// cannot release a lock held by another.
type RotationLock struct {
	client  *redis.Client
	ownerID string
}

// NewRotationLock creates a new Redis-backed rotation lock.
// The owner ID is automatically generated to uniquely identify this instance.
func NewRotationLock(client *redis.Client) *RotationLock {
	return &RotationLock{
		client:  client,
		ownerID: generateOwnerID(),
	}
}

// generateOwnerID creates a unique identifier for this lock holder.
// Format: hostname:pid:random
func generateOwnerID() string {
	hostname, _ := os.Hostname()
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(randomBytes))
}

// Acquire attempts to take the rotation lock for a user with the given TTL.
// Uses Redis SETNX (SET if Not eXists) for atomic acquisition.
// Returns true if acquired, false if a rotation is already in flight.
func (l *RotationLock) Acquire(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	key := rotationLockPrefix + userID
	result, err := l.client.SetNX(ctx, key, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire rotation lock for %s: %w", userID, err)
	}
	return result, nil
}

// releaseScript is a Lua script for safe lock release.
// It only deletes the lock if the current owner matches, preventing
// accidental release of locks held by other instances.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release releases a user's rotation lock if held by this instance.
// Safe to call even if the lock is not held or has expired.
func (l *RotationLock) Release(ctx context.Context, userID string) error {
	key := rotationLockPrefix + userID
	_, err := releaseScript.Run(ctx, l.client, []string{key}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release rotation lock for %s: %w", userID, err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy.
func (l *RotationLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID returns the unique identifier for this lock instance.
// Useful for debugging and logging.
func (l *RotationLock) OwnerID() string {
	return l.ownerID
}
