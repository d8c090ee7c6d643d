package driving

import (
	"context"

	"github.com/custodia-labs/accountd/internal/core/domain"
)

// RegisterRequest carries the fields needed to create an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService handles account registration and lookup
type UserService interface {
	// Register creates a new account with a hashed password.
	// Returns domain.ErrAlreadyExists when name or email is taken.
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
