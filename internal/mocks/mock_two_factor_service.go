package mocks

import (
	"context"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockTwoFactorService implements domain.TwoFactorService for testing.
type MockTwoFactorService struct {
	ChallengeFunc func(ctx context.Context, adminID uint, phone string) error
	VerifyFunc    func(ctx context.Context, adminID uint, code string) error
	CanResendFunc func(ctx context.Context, adminID uint) (bool, int64, error)
}

// NewMockTwoFactorService creates a new MockTwoFactorService with default behaviors.
func NewMockTwoFactorService() *MockTwoFactorService {
	return &MockTwoFactorService{}
}

// Challenge issues a login challenge.
func (m *MockTwoFactorService) Challenge(ctx context.Context, adminID uint, phone string) error {
	if m.ChallengeFunc != nil {
		return m.ChallengeFunc(ctx, adminID, phone)
	}
	// Default behavior: success
	return nil
}

// Verify checks a challenge code.
func (m *MockTwoFactorService) Verify(ctx context.Context, adminID uint, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, adminID, code)
	}
	// Default behavior: "123456" is the valid code
	if code == "123456" {
		return nil
	}
	return domain.ErrTwoFactorCodeInvalid
}

// CanResend reports whether a new challenge may be issued.
func (m *MockTwoFactorService) CanResend(ctx context.Context, adminID uint) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, adminID)
	}
	// Default behavior: allowed
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.TwoFactorService = (*MockTwoFactorService)(nil)
