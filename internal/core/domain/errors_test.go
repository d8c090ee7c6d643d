package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrTokenInvalid,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("expected %v and %v to be distinct", a, b)
			}
		}
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{
		"email":    "must be a valid email address",
		"password": "must be between 8 and 50 characters",
	}

	msg := fe.Error()
	if !strings.Contains(msg, "email") {
		t.Errorf("expected message to mention email, got %q", msg)
	}
	if !strings.Contains(msg, "password") {
		t.Errorf("expected message to mention password, got %q", msg)
	}
	// Field order is stable so log lines stay comparable
	if strings.Index(msg, "email") > strings.Index(msg, "password") {
		t.Errorf("expected fields in sorted order, got %q", msg)
	}
}

func TestFieldErrors_IsError(t *testing.T) {
	var err error = FieldErrors{"name": "required"}

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to unwrap FieldErrors")
	}
	if fe["name"] != "required" {
		t.Errorf("expected field message to survive unwrap, got %q", fe["name"])
	}
}
