package domain

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned after successful authentication.
// The refresh token travels back to the client in an HttpOnly cookie,
// never in the response body.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// RefreshResult is returned after a successful token rotation
type RefreshResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}

// AccessClaims is the payload of a short-lived access token
type AccessClaims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RefreshClaims is the payload of a refresh token. It carries only the
// subject; profile fields are re-read from the store on rotation. TokenID
// makes every issued token distinct, so rotation within the same second
// still supersedes the previous token.
type RefreshClaims struct {
	UserID    string `json:"sub"`
	TokenID   string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// AuthContext contains authenticated user info for request context
type AuthContext struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
