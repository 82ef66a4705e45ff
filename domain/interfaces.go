package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	RecordLogin(ctx context.Context, id uint, ip, userAgent string) error
}

// AdminRepository defines admin data access operations. Soft deletion is
// explicit: callers choose which visibility they want, there is no implicit
// query scope.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	FindActive(ctx context.Context, id uint) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindIncludingDeleted(ctx context.Context, id uint) (*Admin, error)
	FindOnlyDeleted(ctx context.Context, id uint) (*Admin, error)
	ListActive(ctx context.Context, page Pagination) ([]Admin, int64, error)
	ListDeleted(ctx context.Context, page Pagination) ([]Admin, int64, error)
	Update(ctx context.Context, admin *Admin) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	ForceDelete(ctx context.Context, id uint) error
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	RecordLogin(ctx context.Context, id uint, ip, userAgent string) error
}

// ProfileChanges is a partial update applied to a principal's own record.
// Nil pointers mean "leave unchanged".
type ProfileChanges struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string
}

// PrincipalStore is the guard-specific storage adapter consumed by the
// session service. One implementation wraps the user repository, another the
// admin repository.
type PrincipalStore interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	FindByID(ctx context.Context, id uint) (*Credential, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	// Register persists a new principal. Stores that do not support
	// self-registration return ErrRegistrationClosed.
	Register(ctx context.Context, name, email, passwordHash string) (*Principal, error)
	UpdateProfile(ctx context.Context, id uint, changes ProfileChanges) (*Principal, error)
	RecordLogin(ctx context.Context, id uint, ip, userAgent string) error
}

// TokenService mints, verifies, refreshes and revokes session tokens.
type TokenService interface {
	Issue(principalID uint, guard Guard) (*IssuedToken, error)
	// Decode verifies the signature and returns claims without enforcing
	// expiry or the blacklist; callers decide how stale a token they accept.
	Decode(raw string) (*TokenClaims, error)
	// Validate verifies signature, expiry and the blacklist, returning the
	// claims of a live token.
	Validate(ctx context.Context, raw string) (*TokenClaims, error)
	// Refresh re-issues a token that is valid, or expired but still inside
	// its refresh window. The old token is revoked.
	Refresh(ctx context.Context, raw string) (*IssuedToken, error)
	// Invalidate blacklists the token for its remaining usable lifetime.
	// Invalidating an unusable token returns ErrTokenInvalid.
	Invalidate(ctx context.Context, raw string) error
}

// TokenBlacklist stores revoked token identifiers until the token would have
// aged out on its own.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PasswordService defines the one-way password hashing primitive.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// PasswordPolicy is the per-guard credential policy applied by the validator.
type PasswordPolicy struct {
	MinLength int
}

// CredentialInput is the raw payload checked by the credential validator.
type CredentialInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Meta                 LoginMeta
}

// ProfileUpdateInput is the payload accepted by UpdateProfile. Password
// changes must carry the current password.
type ProfileUpdateInput struct {
	Name                 *string
	Email                *string
	Phone                *string
	Password             *string
	PasswordConfirmation *string
	CurrentPassword      string
}

// SessionService orchestrates the session lifecycle for one guard.
type SessionService interface {
	Guard() Guard
	Login(ctx context.Context, email, password string, meta LoginMeta) (*AuthResult, error)
	VerifyTwoFactor(ctx context.Context, email, code string, meta LoginMeta) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Refresh(ctx context.Context, raw string) (*IssuedToken, error)
	Logout(ctx context.Context, raw string) error
	Profile(ctx context.Context, principalID uint) (*Principal, error)
	UpdateProfile(ctx context.Context, principalID uint, in ProfileUpdateInput) (*Principal, error)
}

// AccessGate evaluates authorization requirements against a principal.
type AccessGate interface {
	Allow(p *Principal, req Requirement) (bool, error)
	// Require returns nil, ErrUnauthenticated (no principal) or ErrForbidden.
	Require(p *Principal, req Requirement) error
}

// PolicyService manages role -> permission implications, scoped per guard.
type PolicyService interface {
	Grant(guard Guard, role, permission string) error
	Revoke(guard Guard, role, permission string) error
	RoleHasPermission(guard Guard, role, permission string) (bool, error)
	PermissionsForRoles(guard Guard, roles []string) ([]string, error)
}

// CasbinEnforcer is the slice of the Casbin enforcer the policy service
// needs; kept as an interface so tests can swap it.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error)
	SavePolicy() error
}

// NotificationService defines outbound notification delivery.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// TwoFactorService issues and verifies short-lived login challenges for
// admins with two-factor enabled.
type TwoFactorService interface {
	Challenge(ctx context.Context, adminID uint, phone string) error
	Verify(ctx context.Context, adminID uint, code string) error
	CanResend(ctx context.Context, adminID uint) (bool, int64, error)
}

// Clock abstracts time for TTL computation.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
