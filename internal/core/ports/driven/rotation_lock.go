package driven

import (
	"context"
	"time"
)

// RotationLock serializes refresh-token rotation for a single user across
// instances. Without it, two concurrent refreshes with the same valid token
// can both pass the stored-hash comparison before either writes; the design
// accepts that last-writer-wins race, so the lock is an optional hardening.
type RotationLock interface {
	// Acquire attempts to acquire the rotation lock for a user with the
	// given TTL. Returns true if acquired, false if another rotation for
	// the same user is in flight.
	Acquire(ctx context.Context, userID string, ttl time.Duration) (acquired bool, err error)

	// Release releases the rotation lock for a user.
	// Safe to call even if the lock is not held or has expired.
	Release(ctx context.Context, userID string) error

	// Ping checks if the lock backend is healthy.
	Ping(ctx context.Context) error
}
