package mocks

import "github.com/Abdallah-SE/academy-learning-sub001/domain"

// MockPolicyService implements domain.PolicyService for testing.
type MockPolicyService struct {
	GrantFunc               func(guard domain.Guard, role, permission string) error
	RevokeFunc              func(guard domain.Guard, role, permission string) error
	RoleHasPermissionFunc   func(guard domain.Guard, role, permission string) (bool, error)
	PermissionsForRolesFunc func(guard domain.Guard, roles []string) ([]string, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors.
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// Grant grants a permission to a role.
func (m *MockPolicyService) Grant(guard domain.Guard, role, permission string) error {
	if m.GrantFunc != nil {
		return m.GrantFunc(guard, role, permission)
	}
	// Default behavior: success
	return nil
}

// Revoke removes a permission from a role.
func (m *MockPolicyService) Revoke(guard domain.Guard, role, permission string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(guard, role, permission)
	}
	// Default behavior: success
	return nil
}

// RoleHasPermission checks a single role -> permission implication.
func (m *MockPolicyService) RoleHasPermission(guard domain.Guard, role, permission string) (bool, error) {
	if m.RoleHasPermissionFunc != nil {
		return m.RoleHasPermissionFunc(guard, role, permission)
	}
	// Default behavior: no implication
	return false, nil
}

// PermissionsForRoles resolves the permission set implied by roles.
func (m *MockPolicyService) PermissionsForRoles(guard domain.Guard, roles []string) ([]string, error) {
	if m.PermissionsForRolesFunc != nil {
		return m.PermissionsForRolesFunc(guard, roles)
	}
	// Default behavior: empty set
	return []string{}, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
