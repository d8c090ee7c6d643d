package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/accountd/internal/core/domain"
	"github.com/custodia-labs/accountd/internal/core/ports/driven"
)

// Ensure Adapter implements both crypto ports
var (
	_ driven.PasswordHasher = (*Adapter)(nil)
	_ driven.TokenIssuer    = (*Adapter)(nil)
)

// accessClaims wraps domain.AccessClaims for JWT compatibility
type accessClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// refreshClaims wraps domain.RefreshClaims for JWT compatibility
type refreshClaims struct {
	jwt.RegisteredClaims
}

// Adapter handles credential hashing with bcrypt and token signing with
// HMAC-SHA256 JWTs. Access and refresh tokens use separate secrets.
type Adapter struct {
	accessSecret  []byte
	refreshSecret []byte
	bcryptCost    int
}

// NewAdapter creates a new auth adapter with the given token secrets
func NewAdapter(accessSecret, refreshSecret string) *Adapter {
	return &Adapter{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		bcryptCost:    bcrypt.DefaultCost,
	}
}

// NewAdapterWithCost creates a new auth adapter with custom bcrypt cost
func NewAdapterWithCost(accessSecret, refreshSecret string, bcryptCost int) *Adapter {
	a := NewAdapter(accessSecret, refreshSecret)
	a.bcryptCost = bcryptCost
	return a
}

// Hash generates a bcrypt hash from a plaintext password
func (a *Adapter) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks if a password matches a bcrypt hash.
// bcrypt's comparison is constant-time; any malformed hash is a mismatch.
func (a *Adapter) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken hashes a refresh token for storage. Signed tokens exceed
// bcrypt's 72-byte input limit, so the token is digested with SHA-256
// before the bcrypt round.
func (a *Adapter) HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digestToken(token), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyToken checks if a token matches a stored token hash
func (a *Adapter) VerifyToken(token, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), digestToken(token))
	return err == nil
}

func digestToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return []byte(base64.RawURLEncoding.EncodeToString(sum[:]))
}

// SignAccessToken creates a signed access JWT from domain claims
func (a *Adapter) SignAccessToken(claims *domain.AccessClaims) (string, error) {
	ac := accessClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ac)
	return token.SignedString(a.accessSecret)
}

// ParseAccessToken validates an access JWT and extracts domain claims.
// Signature and expiry failures are not distinguished for the caller.
func (a *Adapter) ParseAccessToken(tokenString string) (*domain.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, a.keyFunc(a.accessSecret))
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	// Tokens must be time-bound; jwt only validates exp when present
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AccessClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

// SignRefreshToken creates a signed refresh JWT from domain claims
func (a *Adapter) SignRefreshToken(claims *domain.RefreshClaims) (string, error) {
	rc := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, rc)
	return token.SignedString(a.refreshSecret)
}

// ParseRefreshToken validates a refresh JWT and extracts domain claims
func (a *Adapter) ParseRefreshToken(tokenString string) (*domain.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &refreshClaims{}, a.keyFunc(a.refreshSecret))
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*refreshClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.RefreshClaims{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (a *Adapter) keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}
}
