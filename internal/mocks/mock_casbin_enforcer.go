package mocks

import (
	"sync"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// MockCasbinEnforcer implements domain.CasbinEnforcer for testing. When no
// override funcs are set it keeps policies in memory.
type MockCasbinEnforcer struct {
	AddPolicyFunc         func(params ...interface{}) (bool, error)
	RemovePolicyFunc      func(params ...interface{}) (bool, error)
	EnforceFunc           func(rvals ...interface{}) (bool, error)
	GetFilteredPolicyFunc func(fieldIndex int, fieldValues ...string) ([][]string, error)
	SavePolicyFunc        func() error

	mu       sync.Mutex
	policies [][]string
	Saves    int
}

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors.
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func toStrings(params []interface{}) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		s, _ := p.(string)
		out = append(out, s)
	}
	return out
}

func equalRule(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddPolicy stores a policy rule.
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toStrings(params)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if equalRule(p, rule) {
			return false, nil
		}
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a policy rule.
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	rule := toStrings(params)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.policies {
		if equalRule(p, rule) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce matches a request against stored rules.
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toStrings(rvals)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if equalRule(p, req) {
			return true, nil
		}
	}
	return false, nil
}

// GetFilteredPolicy returns rules matching the field filter.
func (m *MockCasbinEnforcer) GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error) {
	if m.GetFilteredPolicyFunc != nil {
		return m.GetFilteredPolicyFunc(fieldIndex, fieldValues...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]string
	for _, p := range m.policies {
		match := true
		for i, v := range fieldValues {
			if v == "" {
				continue
			}
			if fieldIndex+i >= len(p) || p[fieldIndex+i] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, append([]string(nil), p...))
		}
	}
	return out, nil
}

// SavePolicy counts persistence calls.
func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	return nil
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)
