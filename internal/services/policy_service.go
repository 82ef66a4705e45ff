package services

import (
	"fmt"
	"sort"

	"github.com/casbin/casbin/v2"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// PolicyServiceImpl implements domain.PolicyService using Casbin. Policies
// are (subject, permission) pairs where the subject is a guard-scoped role,
// e.g. "admin:moderator". Roles of different guards never collide.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over the real Casbin enforcer.
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// NewPolicyServiceWithEnforcer creates a policy service over any enforcer
// implementation (used by tests).
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

func subject(guard domain.Guard, role string) string {
	return fmt.Sprintf("%s:%s", guard, role)
}

// Grant implements domain.PolicyService.
func (p *PolicyServiceImpl) Grant(guard domain.Guard, role, permission string) error {
	if _, err := p.enforcer.AddPolicy(subject(guard, role), permission); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return p.enforcer.SavePolicy()
}

// Revoke implements domain.PolicyService.
func (p *PolicyServiceImpl) Revoke(guard domain.Guard, role, permission string) error {
	if _, err := p.enforcer.RemovePolicy(subject(guard, role), permission); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return p.enforcer.SavePolicy()
}

// RoleHasPermission implements domain.PolicyService.
func (p *PolicyServiceImpl) RoleHasPermission(guard domain.Guard, role, permission string) (bool, error) {
	return p.enforcer.Enforce(subject(guard, role), permission)
}

// PermissionsForRoles implements domain.PolicyService. The result is the
// deduplicated union over all the roles, sorted for stable responses.
func (p *PolicyServiceImpl) PermissionsForRoles(guard domain.Guard, roles []string) ([]string, error) {
	seen := map[string]struct{}{}
	for _, role := range roles {
		policies, err := p.enforcer.GetFilteredPolicy(0, subject(guard, role))
		if err != nil {
			return nil, fmt.Errorf("failed to list permissions for role %s: %w", role, err)
		}
		for _, policy := range policies {
			if len(policy) >= 2 {
				seen[policy[1]] = struct{}{}
			}
		}
	}
	perms := make([]string, 0, len(seen))
	for perm := range seen {
		perms = append(perms, perm)
	}
	sort.Strings(perms)
	return perms, nil
}

var _ domain.PolicyService = (*PolicyServiceImpl)(nil)
