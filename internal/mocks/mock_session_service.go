package mocks

import (
	"context"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockSessionService implements domain.SessionService for testing.
type MockSessionService struct {
	GuardValue          domain.Guard
	LoginFunc           func(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error)
	VerifyTwoFactorFunc func(ctx context.Context, email, code string, meta domain.LoginMeta) (*domain.AuthResult, error)
	RegisterFunc        func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error)
	RefreshFunc         func(ctx context.Context, raw string) (*domain.IssuedToken, error)
	LogoutFunc          func(ctx context.Context, raw string) error
	ProfileFunc         func(ctx context.Context, principalID uint) (*domain.Principal, error)
	UpdateProfileFunc   func(ctx context.Context, principalID uint, in domain.ProfileUpdateInput) (*domain.Principal, error)
}

// NewMockSessionService creates a new MockSessionService for the given guard.
func NewMockSessionService(guard domain.Guard) *MockSessionService {
	return &MockSessionService{GuardValue: guard}
}

func (m *MockSessionService) defaultResult(email string) *domain.AuthResult {
	return &domain.AuthResult{
		Principal: &domain.Principal{
			ID:     1,
			Guard:  m.GuardValue,
			Name:   "Test Principal",
			Email:  email,
			Status: domain.StatusActive,
			Roles:  []string{"student"},
		},
		Token: &domain.IssuedToken{Token: "mock-token", TokenType: "bearer", ExpiresIn: 3600},
	}
}

// Guard returns the guard this service authenticates.
func (m *MockSessionService) Guard() domain.Guard {
	return m.GuardValue
}

// Login authenticates by email and password.
func (m *MockSessionService) Login(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, meta)
	}
	// Default behavior: success
	return m.defaultResult(email), nil
}

// VerifyTwoFactor completes a two-factor login.
func (m *MockSessionService) VerifyTwoFactor(ctx context.Context, email, code string, meta domain.LoginMeta) (*domain.AuthResult, error) {
	if m.VerifyTwoFactorFunc != nil {
		return m.VerifyTwoFactorFunc(ctx, email, code, meta)
	}
	// Default behavior: success
	return m.defaultResult(email), nil
}

// Register creates a new account.
func (m *MockSessionService) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	// Default behavior: success
	return m.defaultResult(in.Email), nil
}

// Refresh re-issues a session token.
func (m *MockSessionService) Refresh(ctx context.Context, raw string) (*domain.IssuedToken, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, raw)
	}
	// Default behavior: fresh token
	return &domain.IssuedToken{Token: "mock-refreshed-token", TokenType: "bearer", ExpiresIn: 3600}, nil
}

// Logout revokes a session token.
func (m *MockSessionService) Logout(ctx context.Context, raw string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, raw)
	}
	// Default behavior: success
	return nil
}

// Profile returns the authenticated principal's profile.
func (m *MockSessionService) Profile(ctx context.Context, principalID uint) (*domain.Principal, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, principalID)
	}
	// Default behavior: success
	return m.defaultResult("test@example.com").Principal, nil
}

// UpdateProfile applies a partial profile update.
func (m *MockSessionService) UpdateProfile(ctx context.Context, principalID uint, in domain.ProfileUpdateInput) (*domain.Principal, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, principalID, in)
	}
	// Default behavior: success
	return m.defaultResult("test@example.com").Principal, nil
}

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)
