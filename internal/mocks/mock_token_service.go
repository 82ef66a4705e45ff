package mocks

import (
	"context"
	"time"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	IssueFunc      func(principalID uint, guard domain.Guard) (*domain.IssuedToken, error)
	DecodeFunc     func(raw string) (*domain.TokenClaims, error)
	ValidateFunc   func(ctx context.Context, raw string) (*domain.TokenClaims, error)
	RefreshFunc    func(ctx context.Context, raw string) (*domain.IssuedToken, error)
	InvalidateFunc func(ctx context.Context, raw string) error
}

// NewMockTokenService creates a new MockTokenService with default behaviors.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue mints a token.
func (m *MockTokenService) Issue(principalID uint, guard domain.Guard) (*domain.IssuedToken, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(principalID, guard)
	}
	// Default behavior: fixed opaque token
	return &domain.IssuedToken{
		Token:     "mock-token",
		TokenType: "bearer",
		ExpiresIn: int64(time.Hour / time.Second),
	}, nil
}

// Decode decodes a token without liveness checks.
func (m *MockTokenService) Decode(raw string) (*domain.TokenClaims, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(raw)
	}
	// Default behavior: valid user token
	return &domain.TokenClaims{
		PrincipalID: 1,
		Guard:       domain.GuardUser,
		TokenID:     "mock-jti",
	}, nil
}

// Validate verifies a live token.
func (m *MockTokenService) Validate(ctx context.Context, raw string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, raw)
	}
	// Default behavior: valid user token
	return &domain.TokenClaims{
		PrincipalID: 1,
		Guard:       domain.GuardUser,
		TokenID:     "mock-jti",
	}, nil
}

// Refresh re-issues a token.
func (m *MockTokenService) Refresh(ctx context.Context, raw string) (*domain.IssuedToken, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, raw)
	}
	// Default behavior: fresh opaque token
	return &domain.IssuedToken{
		Token:     "mock-refreshed-token",
		TokenType: "bearer",
		ExpiresIn: int64(time.Hour / time.Second),
	}, nil
}

// Invalidate revokes a token.
func (m *MockTokenService) Invalidate(ctx context.Context, raw string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, raw)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
