package mocks

import (
	"context"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockAdminRepository implements domain.AdminRepository for testing.
type MockAdminRepository struct {
	CreateFunc               func(ctx context.Context, admin *domain.Admin) error
	FindActiveFunc           func(ctx context.Context, id uint) (*domain.Admin, error)
	FindByEmailFunc          func(ctx context.Context, email string) (*domain.Admin, error)
	FindIncludingDeletedFunc func(ctx context.Context, id uint) (*domain.Admin, error)
	FindOnlyDeletedFunc      func(ctx context.Context, id uint) (*domain.Admin, error)
	ListActiveFunc           func(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error)
	ListDeletedFunc          func(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error)
	UpdateFunc               func(ctx context.Context, admin *domain.Admin) error
	SoftDeleteFunc           func(ctx context.Context, id uint) error
	RestoreFunc              func(ctx context.Context, id uint) error
	ForceDeleteFunc          func(ctx context.Context, id uint) error
	EmailTakenFunc           func(ctx context.Context, email string, excludeID uint) (bool, error)
	RecordLoginFunc          func(ctx context.Context, id uint, ip, userAgent string) error
}

// NewMockAdminRepository creates a new MockAdminRepository with default behaviors.
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{}
}

// Create persists a new admin.
func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	// Default behavior: assign an id and succeed
	if admin.ID == 0 {
		admin.ID = 1
	}
	return nil
}

// FindActive finds a non-deleted admin by id.
func (m *MockAdminRepository) FindActive(ctx context.Context, id uint) (*domain.Admin, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// FindByEmail finds a non-deleted admin by email.
func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// FindIncludingDeleted finds an admin regardless of deletion state.
func (m *MockAdminRepository) FindIncludingDeleted(ctx context.Context, id uint) (*domain.Admin, error) {
	if m.FindIncludingDeletedFunc != nil {
		return m.FindIncludingDeletedFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// FindOnlyDeleted finds a soft-deleted admin by id.
func (m *MockAdminRepository) FindOnlyDeleted(ctx context.Context, id uint) (*domain.Admin, error) {
	if m.FindOnlyDeletedFunc != nil {
		return m.FindOnlyDeletedFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPrincipalNotFound
}

// ListActive lists non-deleted admins.
func (m *MockAdminRepository) ListActive(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, page)
	}
	// Default behavior: empty list
	return []domain.Admin{}, 0, nil
}

// ListDeleted lists soft-deleted admins.
func (m *MockAdminRepository) ListDeleted(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
	if m.ListDeletedFunc != nil {
		return m.ListDeletedFunc(ctx, page)
	}
	// Default behavior: empty list
	return []domain.Admin{}, 0, nil
}

// Update persists changes to an admin.
func (m *MockAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, admin)
	}
	// Default behavior: success
	return nil
}

// SoftDelete marks an admin deleted.
func (m *MockAdminRepository) SoftDelete(ctx context.Context, id uint) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Restore clears an admin's deletion mark.
func (m *MockAdminRepository) Restore(ctx context.Context, id uint) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// ForceDelete permanently removes an admin.
func (m *MockAdminRepository) ForceDelete(ctx context.Context, id uint) error {
	if m.ForceDeleteFunc != nil {
		return m.ForceDeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// EmailTaken reports email uniqueness across all admins, deleted included.
func (m *MockAdminRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	if m.EmailTakenFunc != nil {
		return m.EmailTakenFunc(ctx, email, excludeID)
	}
	// Default behavior: available
	return false, nil
}

// RecordLogin records the last-login audit.
func (m *MockAdminRepository) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, id, ip, userAgent)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AdminRepository = (*MockAdminRepository)(nil)
