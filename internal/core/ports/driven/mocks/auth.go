package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/accountd/internal/core/domain"
	"github.com/custodia-labs/accountd/internal/core/ports/driven"
)

// Ensure mocks implement the driven ports
var (
	_ driven.PasswordHasher = (*MockHasher)(nil)
	_ driven.TokenIssuer    = (*MockIssuer)(nil)
)

// MockHasher is a mock implementation of PasswordHasher for testing.
// It uses reversible prefixing instead of real hashing.
// NOT secure - only for testing.
type MockHasher struct {
	// HashErr, when set, is returned by Hash and HashToken
	HashErr error
}

// NewMockHasher creates a new MockHasher
func NewMockHasher() *MockHasher {
	return &MockHasher{}
}

func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

func (m *MockHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

func (m *MockHasher) HashToken(token string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "token-hashed:" + token, nil
}

func (m *MockHasher) VerifyToken(token, hash string) bool {
	return hash == "token-hashed:"+token
}

// MockIssuer is a mock implementation of TokenIssuer for testing.
// Tokens are prefixed base64-encoded JSON claims; expiry is still enforced
// on parse so rotation and expiry paths can be exercised.
type MockIssuer struct{}

// NewMockIssuer creates a new MockIssuer
func NewMockIssuer() *MockIssuer {
	return &MockIssuer{}
}

const (
	mockAccessPrefix  = "access."
	mockRefreshPrefix = "refresh."
)

func (m *MockIssuer) SignAccessToken(claims *domain.AccessClaims) (string, error) {
	return mockSign(mockAccessPrefix, claims)
}

func (m *MockIssuer) ParseAccessToken(token string) (*domain.AccessClaims, error) {
	var claims domain.AccessClaims
	if err := mockParse(mockAccessPrefix, token, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}

func (m *MockIssuer) SignRefreshToken(claims *domain.RefreshClaims) (string, error) {
	return mockSign(mockRefreshPrefix, claims)
}

func (m *MockIssuer) ParseRefreshToken(token string) (*domain.RefreshClaims, error) {
	var claims domain.RefreshClaims
	if err := mockParse(mockRefreshPrefix, token, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}

func mockSign(prefix string, claims any) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return prefix + base64.StdEncoding.EncodeToString(data), nil
}

func mockParse(prefix, token string, claims any) error {
	if !strings.HasPrefix(token, prefix) {
		return domain.ErrTokenInvalid
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, prefix))
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if err := json.Unmarshal(data, claims); err != nil {
		return domain.ErrTokenInvalid
	}
	return nil
}
