package domain

import "time"

// User represents a registered account
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize
	// RefreshTokenHash holds the hash of the most recently issued refresh
	// token. Nil until the first login. Overwritten on every login and every
	// refresh, which invalidates all previously issued refresh tokens.
	RefreshTokenHash *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserSummary provides a safe view of user data (no credential material)
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// HasRefreshToken reports whether a refresh token has been issued for this
// user and not superseded by a cleared hash.
func (u *User) HasRefreshToken() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
