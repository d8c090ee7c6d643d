package driven

import "github.com/custodia-labs/accountd/internal/core/domain"

// PasswordHasher handles adaptive, salted hashing of secrets.
// This does NOT handle storage - use UserStore for persistence.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Constant-time; returns
	// false for any mismatch or malformed hash, never an error.
	Verify(password, hash string) bool

	// HashToken hashes a refresh token for server-side storage. Tokens are
	// longer than the hash function's input limit, so implementations
	// digest them first.
	HashToken(token string) (string, error)

	// VerifyToken reports whether token matches a stored token hash
	VerifyToken(token, hash string) bool
}

// TokenIssuer signs and validates time-bound signed tokens. Access and
// refresh tokens use separate secrets so one class can never stand in for
// the other.
type TokenIssuer interface {
	SignAccessToken(claims *domain.AccessClaims) (string, error)

	// ParseAccessToken validates signature and expiry together; a forged
	// token and an expired token fail identically.
	ParseAccessToken(token string) (*domain.AccessClaims, error)

	SignRefreshToken(claims *domain.RefreshClaims) (string, error)

	// ParseRefreshToken validates signature and expiry together
	ParseRefreshToken(token string) (*domain.RefreshClaims, error)
}
