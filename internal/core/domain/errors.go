package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed. Bad credentials,
	// unknown users, invalid, expired and superseded tokens all collapse
	// into this one error so callers cannot enumerate accounts.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenInvalid indicates a token is malformed, forged or expired
	ErrTokenInvalid = errors.New("token invalid")
)

// FieldErrors carries per-field validation messages, surfaced as a 400
// response at the HTTP boundary.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		fmt.Fprintf(&b, " %s: %s;", f, fe[f])
	}
	return strings.TrimSuffix(b.String(), ";")
}
