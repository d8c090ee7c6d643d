package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/accountd/internal/core/domain"
	"github.com/custodia-labs/accountd/internal/core/ports/driven"
	"github.com/custodia-labs/accountd/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// rotationLockTTL bounds how long a crashed rotation can block a user
const rotationLockTTL = 10 * time.Second

// authService implements the AuthService interface.
//
// All failure paths in Login and Refresh collapse into domain.ErrUnauthorized
// before leaving this package. A caller can never tell an unknown email from
// a wrong password, or a forged token from a superseded one; the real cause
// is logged server-side only.
type authService struct {
	userStore  driven.UserStore
	hasher     driven.PasswordHasher
	issuer     driven.TokenIssuer
	lock       driven.RotationLock // optional, nil disables serialization
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// AuthServiceConfig holds the dependencies and token lifetimes for the
// auth service. Lock may be nil; rotation then runs last-writer-wins.
type AuthServiceConfig struct {
	UserStore  driven.UserStore
	Hasher     driven.PasswordHasher
	Issuer     driven.TokenIssuer
	Lock       driven.RotationLock
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg AuthServiceConfig) driving.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userStore:  cfg.UserStore,
		hasher:     cfg.Hasher,
		issuer:     cfg.Issuer,
		lock:       cfg.Lock,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		logger:     logger,
	}
}

// Login validates credentials and issues a fresh token pair
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		// Unknown email and store failure look identical to the caller
		s.logger.Debug("login rejected", "reason", "lookup failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.logger.Debug("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, domain.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		s.logger.Error("login token issuance failed", "user_id", user.ID, "error", err)
		return nil, domain.ErrUnauthorized
	}

	return &domain.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Name:         user.Name,
		Email:        user.Email,
	}, nil
}

// Refresh validates a presented refresh token and rotates it
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug("refresh rejected", "reason", "token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	// Serialize the read-compare-write below when a lock backend is
	// configured. A concurrent rotation holding the lock would supersede
	// this token anyway, so contention is reported as unauthorized.
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, claims.UserID, rotationLockTTL)
		if err != nil {
			s.logger.Error("rotation lock unavailable", "user_id", claims.UserID, "error", err)
			return nil, domain.ErrUnauthorized
		}
		if !acquired {
			s.logger.Debug("refresh rejected", "reason", "rotation in flight", "user_id", claims.UserID)
			return nil, domain.ErrUnauthorized
		}
		defer func() {
			if err := s.lock.Release(ctx, claims.UserID); err != nil {
				s.logger.Warn("rotation lock release failed", "user_id", claims.UserID, "error", err)
			}
		}()
	}

	user, err := s.userStore.Get(ctx, claims.UserID)
	if err != nil {
		s.logger.Debug("refresh rejected", "reason", "user lookup failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	// Single-validity: only the most recently issued refresh token matches
	// the stored hash. A well-formed, unexpired but superseded token fails
	// here exactly like a forged one.
	if !user.HasRefreshToken() || !s.hasher.VerifyToken(refreshToken, *user.RefreshTokenHash) {
		s.logger.Debug("refresh rejected", "reason", "superseded token", "user_id", user.ID)
		return nil, domain.ErrUnauthorized
	}

	accessToken, newRefreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		s.logger.Error("refresh rotation failed", "user_id", user.ID, "error", err)
		return nil, domain.ErrUnauthorized
	}

	return &domain.RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken checks an access token and returns the auth context
func (s *authService) ValidateAccessToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.issuer.ParseAccessToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// issueTokens signs a new refresh token, persists its hash (superseding any
// prior token for the user) and signs a matching access token.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (accessToken, refreshToken string, err error) {
	now := time.Now()

	refreshToken, err = s.issuer.SignRefreshToken(&domain.RefreshClaims{
		UserID:    user.ID,
		TokenID:   uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}

	hash, err := s.hasher.HashToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	// The write is the invalidation point: once it lands, every previously
	// issued refresh token for this user is dead.
	if err := s.userStore.UpdateRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return "", "", err
	}

	accessToken, err = s.issuer.SignAccessToken(&domain.AccessClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
