package mocks

import (
	"context"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockPrincipalStore implements domain.PrincipalStore for testing.
type MockPrincipalStore struct {
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.Credential, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Credential, error)
	EmailTakenFunc    func(ctx context.Context, email string, excludeID uint) (bool, error)
	RegisterFunc      func(ctx context.Context, name, email, passwordHash string) (*domain.Principal, error)
	UpdateProfileFunc func(ctx context.Context, id uint, changes domain.ProfileChanges) (*domain.Principal, error)
	RecordLoginFunc   func(ctx context.Context, id uint, ip, userAgent string) error
}

// NewMockPrincipalStore creates a new MockPrincipalStore with default behaviors.
func NewMockPrincipalStore() *MockPrincipalStore {
	return &MockPrincipalStore{}
}

// FindByEmail finds a credential by email.
func (m *MockPrincipalStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// FindByID finds a credential by id.
func (m *MockPrincipalStore) FindByID(ctx context.Context, id uint) (*domain.Credential, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// EmailTaken reports email uniqueness.
func (m *MockPrincipalStore) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	if m.EmailTakenFunc != nil {
		return m.EmailTakenFunc(ctx, email, excludeID)
	}
	// Default behavior: available
	return false, nil
}

// Register persists a new principal.
func (m *MockPrincipalStore) Register(ctx context.Context, name, email, passwordHash string) (*domain.Principal, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, passwordHash)
	}
	// Default behavior: echo back a persisted principal
	return &domain.Principal{
		ID:     1,
		Guard:  domain.GuardUser,
		Name:   name,
		Email:  email,
		Status: domain.StatusActive,
		Roles:  []string{"student"},
	}, nil
}

// UpdateProfile applies a partial update.
func (m *MockPrincipalStore) UpdateProfile(ctx context.Context, id uint, changes domain.ProfileChanges) (*domain.Principal, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, changes)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// RecordLogin records the last-login audit.
func (m *MockPrincipalStore) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, id, ip, userAgent)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PrincipalStore = (*MockPrincipalStore)(nil)
