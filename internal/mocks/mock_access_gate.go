package mocks

import "github.com/Abdallah-SE/academy-learning-sub001/domain"

// MockAccessGate implements domain.AccessGate for testing.
type MockAccessGate struct {
	AllowFunc   func(p *domain.Principal, req domain.Requirement) (bool, error)
	RequireFunc func(p *domain.Principal, req domain.Requirement) error
}

// NewMockAccessGate creates a new MockAccessGate with default behaviors.
func NewMockAccessGate() *MockAccessGate {
	return &MockAccessGate{}
}

// Allow evaluates a requirement.
func (m *MockAccessGate) Allow(p *domain.Principal, req domain.Requirement) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(p, req)
	}
	// Default behavior: allow authenticated principals
	if p == nil {
		return false, domain.ErrUnauthenticated
	}
	return true, nil
}

// Require evaluates a requirement, returning a sentinel error on denial.
func (m *MockAccessGate) Require(p *domain.Principal, req domain.Requirement) error {
	if m.RequireFunc != nil {
		return m.RequireFunc(p, req)
	}
	// Default behavior: allow authenticated principals
	if p == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccessGate = (*MockAccessGate)(nil)
