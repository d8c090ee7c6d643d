package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_ToSummary(t *testing.T) {
	hash := "some-refresh-hash"
	user := &User{
		ID:               "user-123",
		Name:             "alice",
		Email:            "a@x.com",
		PasswordHash:     "$2a$10$secret",
		RefreshTokenHash: &hash,
	}

	summary := user.ToSummary()

	if summary.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, summary.ID)
	}
	if summary.Name != user.Name {
		t.Errorf("expected Name %s, got %s", user.Name, summary.Name)
	}
	if summary.Email != user.Email {
		t.Errorf("expected Email %s, got %s", user.Email, summary.Email)
	}
}

func TestUser_JSONNeverLeaksCredentials(t *testing.T) {
	hash := "refresh-hash"
	user := &User{
		ID:               "user-123",
		Name:             "alice",
		Email:            "a@x.com",
		PasswordHash:     "password-hash",
		RefreshTokenHash: &hash,
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to marshal user: %v", err)
	}

	s := string(data)
	if strings.Contains(s, "password-hash") {
		t.Error("serialized user must not contain the password hash")
	}
	if strings.Contains(s, "refresh-hash") {
		t.Error("serialized user must not contain the refresh token hash")
	}
}

func TestUser_HasRefreshToken(t *testing.T) {
	empty := ""
	hash := "hash"

	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "nil hash", user: User{}, want: false},
		{name: "empty hash", user: User{RefreshTokenHash: &empty}, want: false},
		{name: "set hash", user: User{RefreshTokenHash: &hash}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasRefreshToken(); got != tt.want {
				t.Errorf("HasRefreshToken() = %v, want %v", got, tt.want)
			}
		})
	}
}
