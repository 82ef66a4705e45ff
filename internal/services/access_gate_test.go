package services

import (
	"errors"
	"testing"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/mocks"
)

func activePrincipal(roles ...string) *domain.Principal {
	return &domain.Principal{
		ID:     1,
		Guard:  domain.GuardAdmin,
		Status: domain.StatusActive,
		Roles:  roles,
	}
}

func TestAccessGate_NilPrincipal(t *testing.T) {
	gate := NewAccessGate(mocks.NewMockPolicyService())

	if _, err := gate.Allow(nil, domain.RequirePermission("admins.view")); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Allow(nil) error = %v, want ErrUnauthenticated", err)
	}
	if err := gate.Require(nil, domain.RequirePermission("admins.view")); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Require(nil) error = %v, want ErrUnauthenticated", err)
	}
}

func TestAccessGate_SuperAdminBypass(t *testing.T) {
	gate := NewAccessGate(mocks.NewMockPolicyService())
	p := activePrincipal(domain.RoleSuperAdmin)

	tests := []struct {
		name string
		req  domain.Requirement
	}{
		{"unheld permission", domain.RequirePermission("export.data")},
		{"unheld role", domain.RequireAnyRole("auditor")},
		{"all-of unheld roles", domain.RequireAllRoles("auditor", "reviewer")},
		{"unknown predicate", domain.RequirePredicate("no-such-predicate")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := gate.Allow(p, tt.req)
			if err != nil {
				t.Fatalf("Allow() error = %v", err)
			}
			if !ok {
				t.Error("super_admin must pass every requirement")
			}
		})
	}
}

func TestAccessGate_PermissionRequirement(t *testing.T) {
	policies := mocks.NewMockPolicyService()
	policies.RoleHasPermissionFunc = func(guard domain.Guard, role, permission string) (bool, error) {
		return guard == domain.GuardAdmin && role == "moderator" && permission == "admins.view", nil
	}
	gate := NewAccessGate(policies)

	t.Run("direct grant", func(t *testing.T) {
		p := activePrincipal("editor")
		p.Permissions = []string{"admins.view"}
		ok, err := gate.Allow(p, domain.RequirePermission("admins.view"))
		if err != nil || !ok {
			t.Errorf("Allow() = (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("role implication", func(t *testing.T) {
		ok, err := gate.Allow(activePrincipal("moderator"), domain.RequirePermission("admins.view"))
		if err != nil || !ok {
			t.Errorf("Allow() = (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("no grant", func(t *testing.T) {
		ok, err := gate.Allow(activePrincipal("moderator"), domain.RequirePermission("admins.delete"))
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if ok {
			t.Error("moderator must not hold admins.delete")
		}
	})
}

func TestAccessGate_RoleRequirements(t *testing.T) {
	gate := NewAccessGate(mocks.NewMockPolicyService())

	tests := []struct {
		name  string
		roles []string
		req   domain.Requirement
		want  bool
	}{
		{"any-of holds one", []string{"moderator"}, domain.RequireAnyRole("admin", "moderator"), true},
		{"any-of holds none", []string{"editor"}, domain.RequireAnyRole("admin", "moderator"), false},
		{"all-of holds all", []string{"admin", "moderator"}, domain.RequireAllRoles("admin", "moderator"), true},
		{"all-of holds some", []string{"admin"}, domain.RequireAllRoles("admin", "moderator"), false},
		{"all-of empty list denies", []string{"admin"}, domain.RequireAllRoles(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := gate.Allow(activePrincipal(tt.roles...), tt.req)
			if err != nil {
				t.Fatalf("Allow() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Allow() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestAccessGate_Predicates(t *testing.T) {
	gate := NewAccessGate(mocks.NewMockPolicyService())

	t.Run("moderation_staff allows active moderator", func(t *testing.T) {
		ok, err := gate.Allow(activePrincipal("moderator"), domain.RequirePredicate("moderation_staff"))
		if err != nil || !ok {
			t.Errorf("Allow() = (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("moderation_staff denies suspended moderator", func(t *testing.T) {
		p := activePrincipal("moderator")
		p.Status = domain.StatusSuspended
		ok, err := gate.Allow(p, domain.RequirePredicate("moderation_staff"))
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if ok {
			t.Error("suspended principal must not pass moderation_staff")
		}
	})

	t.Run("unknown predicate errors", func(t *testing.T) {
		if _, err := gate.Allow(activePrincipal("moderator"), domain.RequirePredicate("nonexistent")); err == nil {
			t.Error("unknown predicate should be an error, not a silent deny")
		}
	})

	t.Run("registered predicate", func(t *testing.T) {
		gate.RegisterPredicate("always", func(p *domain.Principal) bool { return true })
		ok, err := gate.Allow(activePrincipal(), domain.RequirePredicate("always"))
		if err != nil || !ok {
			t.Errorf("Allow() = (%v, %v), want (true, nil)", ok, err)
		}
	})
}

func TestAccessGate_RequireMapsDenyToForbidden(t *testing.T) {
	gate := NewAccessGate(mocks.NewMockPolicyService())

	err := gate.Require(activePrincipal("editor"), domain.RequireAnyRole("admin"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Require() error = %v, want ErrForbidden", err)
	}
}
