package driven

import (
	"context"

	"github.com/custodia-labs/accountd/internal/core/domain"
)

// UserStore handles user persistence (PostgreSQL)
type UserStore interface {
	// Create inserts a new user row.
	// Returns domain.ErrAlreadyExists on a name/email unique violation and
	// domain.ErrInvalidInput on a not-null violation.
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRefreshTokenHash replaces the stored refresh-token hash for a
	// user. Passing nil clears it. The overwrite is what invalidates all
	// previously issued refresh tokens.
	UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error
}
