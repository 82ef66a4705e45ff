package services

import (
	"fmt"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// PredicateFunc is a named custom check over principal attributes.
type PredicateFunc func(p *domain.Principal) bool

// AccessGateImpl implements domain.AccessGate. Evaluation order: super_admin
// wildcard, direct permission grant, role -> permission implication, then
// named predicates.
type AccessGateImpl struct {
	policies   domain.PolicyService
	predicates map[string]PredicateFunc
}

// NewAccessGate creates the gate with the default predicate set.
func NewAccessGate(policies domain.PolicyService) *AccessGateImpl {
	g := &AccessGateImpl{
		policies:   policies,
		predicates: map[string]PredicateFunc{},
	}
	g.RegisterPredicate("moderation_staff", func(p *domain.Principal) bool {
		return p.IsActive() && (p.HasRole("admin") || p.HasRole("moderator"))
	})
	return g
}

// RegisterPredicate adds or replaces a named predicate.
func (g *AccessGateImpl) RegisterPredicate(name string, fn PredicateFunc) {
	g.predicates[name] = fn
}

// Allow implements domain.AccessGate.
func (g *AccessGateImpl) Allow(p *domain.Principal, req domain.Requirement) (bool, error) {
	if p == nil {
		return false, domain.ErrUnauthenticated
	}
	if p.HasRole(domain.RoleSuperAdmin) {
		return true, nil
	}

	switch req.Kind {
	case domain.ReqPermission:
		if p.HasPermission(req.Permission) {
			return true, nil
		}
		for _, role := range p.Roles {
			ok, err := g.policies.RoleHasPermission(p.Guard, role, req.Permission)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case domain.ReqAnyOfRoles:
		for _, role := range req.Roles {
			if p.HasRole(role) {
				return true, nil
			}
		}
		return false, nil

	case domain.ReqAllOfRoles:
		for _, role := range req.Roles {
			if !p.HasRole(role) {
				return false, nil
			}
		}
		return len(req.Roles) > 0, nil

	case domain.ReqPredicate:
		fn, ok := g.predicates[req.Predicate]
		if !ok {
			return false, fmt.Errorf("unknown predicate %q", req.Predicate)
		}
		return fn(p), nil

	default:
		return false, fmt.Errorf("unknown requirement kind %d", req.Kind)
	}
}

// Require implements domain.AccessGate.
func (g *AccessGateImpl) Require(p *domain.Principal, req domain.Requirement) error {
	ok, err := g.Allow(p, req)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

var _ domain.AccessGate = (*AccessGateImpl)(nil)
