package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockTokenBlacklist implements domain.TokenBlacklist for testing. When no
// override funcs are set it behaves as an in-memory blacklist.
type MockTokenBlacklist struct {
	RevokeFunc    func(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevokedFunc func(ctx context.Context, tokenID string) (bool, error)

	mu      sync.Mutex
	revoked map[string]struct{}
}

// NewMockTokenBlacklist creates a new MockTokenBlacklist with default behaviors.
func NewMockTokenBlacklist() *MockTokenBlacklist {
	return &MockTokenBlacklist{revoked: make(map[string]struct{})}
}

// Revoke marks a token id revoked.
func (m *MockTokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]struct{})
	}
	m.revoked[tokenID] = struct{}{}
	return nil
}

// IsRevoked reports whether a token id was revoked.
func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, tokenID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// Compile-time interface compliance verification
var _ domain.TokenBlacklist = (*MockTokenBlacklist)(nil)
