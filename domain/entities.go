package domain

import "time"

// Guard identifies the authentication domain a principal and its tokens
// belong to. Tokens minted for one guard never authenticate against the other.
type Guard string

const (
	GuardUser  Guard = "user"
	GuardAdmin Guard = "admin"
)

// Principal status values shared by both guards.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// RoleSuperAdmin passes every authorization requirement unconditionally.
const RoleSuperAdmin = "super_admin"

// User represents a regular account on the learning platform.
type User struct {
	ID           uint
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string // student, teacher or admin
	Status       string
	Preferences  map[string]string
	LastLoginAt  *time.Time
	LastLoginIP  string
	LastLoginUA  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admin represents a back-office account. Admins are soft-deletable and may
// carry several roles.
type Admin struct {
	ID               uint
	Username         string
	Email            string
	PasswordHash     string
	Status           string
	Roles            []string
	TwoFactorEnabled bool
	TwoFactorPhone   string
	LastLoginAt      *time.Time
	LastLoginIP      string
	LastLoginUA      string
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Role is a named tag scoped to a guard. A role implies a set of permissions
// kept in the policy store.
type Role struct {
	ID    uint
	Name  string
	Guard Guard
}

// Principal is the guard-neutral snapshot of an authenticated identity that
// travels with a request. It is rebuilt on every request, never cached.
type Principal struct {
	ID          uint
	Guard       Guard
	Name        string
	Email       string
	Status      string
	Roles       []string
	Permissions []string
}

// HasRole reports whether the principal holds the named role.
func (p *Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasPermission reports whether the named permission is in the principal's
// resolved permission set.
func (p *Principal) HasPermission(name string) bool {
	for _, perm := range p.Permissions {
		if perm == name {
			return true
		}
	}
	return false
}

// IsActive reports whether the principal may perform operations that require
// an active account.
func (p *Principal) IsActive() bool {
	return p.Status == StatusActive
}

// Credential is the authentication view of a stored principal: the snapshot
// plus what the session service needs to verify a login.
type Credential struct {
	Principal        Principal
	PasswordHash     string
	TwoFactorEnabled bool
	TwoFactorPhone   string
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	PrincipalID uint
	Guard       Guard
	TokenID     string // jti, the blacklist key
	IssuedAt    int64
	ExpiresAt   int64
}

// IssuedToken is the wire shape of a freshly minted session token.
type IssuedToken struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "bearer"
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// AuthResult is returned by login, register and two-factor verification.
type AuthResult struct {
	Principal   *Principal
	Token       *IssuedToken // nil when registration persisted but issuance failed
	Requires2FA bool
}

// LoginMeta carries request metadata recorded on successful login.
type LoginMeta struct {
	IP        string
	UserAgent string
	Remember  bool
}

// Pagination bounds list queries.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps a pagination request to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 15
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}
