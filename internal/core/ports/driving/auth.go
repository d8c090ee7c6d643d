package driving

import (
	"context"

	"github.com/custodia-labs/accountd/internal/core/domain"
)

// AuthService handles credential verification and refresh-token rotation
type AuthService interface {
	// Login validates credentials, issues a fresh access/refresh token pair
	// and persists the refresh-token hash, superseding any prior one.
	// Every failure surfaces as domain.ErrUnauthorized.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)

	// Refresh exchanges a valid, most-recently-issued refresh token for a
	// new token pair. The presented token is invalidated by the rotation.
	// Every failure surfaces as domain.ErrUnauthorized.
	Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResult, error)

	// ValidateAccessToken checks an access token's signature and expiry and
	// returns the authenticated context. Stateless; never touches the store.
	ValidateAccessToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
