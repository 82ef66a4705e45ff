package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrPrincipalInactive  = errors.New("account is not active")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Two-factor errors
var (
	ErrTwoFactorRequired    = errors.New("two-factor verification required")
	ErrTwoFactorCodeInvalid = errors.New("invalid verification code")
	ErrTwoFactorExpired     = errors.New("verification code has expired")
	ErrTwoFactorMaxAttempts = errors.New("maximum verification attempts exceeded")
	ErrTwoFactorThrottled   = errors.New("verification code recently sent")
)

// Misc guard errors
var (
	ErrRegistrationClosed = errors.New("registration is not available for this guard")
	ErrAdminDeleted       = errors.New("admin has been deleted")
)

// ValidationError carries a field -> message map for 422 responses. Both
// pre-checks and storage-level unique constraint failures are expressed
// through this type so callers see one taxonomy.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether any field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
