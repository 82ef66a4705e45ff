package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// fillerHash is compared against when the email is unknown, so a failed
// login costs one bcrypt comparison whether or not the account exists.
const fillerHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// GuardSessionConfig parameterizes the session service per guard instead of
// duplicating the service for users and admins.
type GuardSessionConfig struct {
	Guard          domain.Guard
	Store          domain.PrincipalStore
	PasswordPolicy domain.PasswordPolicy
	// TwoFactor is optional; when set, principals with two-factor enabled
	// must complete a challenge before a token is issued.
	TwoFactor domain.TwoFactorService
}

// SessionServiceImpl implements domain.SessionService for one guard.
type SessionServiceImpl struct {
	guard       domain.Guard
	store       domain.PrincipalStore
	validator   *CredentialValidator
	twoFactor   domain.TwoFactorService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	policySvc   domain.PolicyService
	logger      *slog.Logger
}

// NewSessionService creates a session service for the configured guard.
func NewSessionService(
	cfg GuardSessionConfig,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	policySvc domain.PolicyService,
	logger *slog.Logger,
) domain.SessionService {
	return &SessionServiceImpl{
		guard:       cfg.Guard,
		store:       cfg.Store,
		validator:   NewCredentialValidator(cfg.PasswordPolicy),
		twoFactor:   cfg.TwoFactor,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		policySvc:   policySvc,
		logger:      logger,
	}
}

// Guard implements domain.SessionService.
func (s *SessionServiceImpl) Guard() domain.Guard {
	return s.guard
}

// Login implements domain.SessionService. Bad credentials never reveal
// whether the email exists.
func (s *SessionServiceImpl) Login(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error) {
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	cred, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			s.passwordSvc.Verify(fillerHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(cred.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if cred.Principal.Status != domain.StatusActive {
		return nil, domain.ErrPrincipalInactive
	}

	if s.twoFactor != nil && cred.TwoFactorEnabled {
		if err := s.twoFactor.Challenge(ctx, cred.Principal.ID, cred.TwoFactorPhone); err != nil {
			return nil, err
		}
		snapshot := cred.Principal
		return &domain.AuthResult{Principal: &snapshot, Requires2FA: true}, nil
	}

	return s.finishLogin(ctx, cred, meta)
}

// VerifyTwoFactor implements domain.SessionService. It completes a login
// that was answered with a two-factor challenge.
func (s *SessionServiceImpl) VerifyTwoFactor(ctx context.Context, email, code string, meta domain.LoginMeta) (*domain.AuthResult, error) {
	if s.twoFactor == nil {
		return nil, domain.ErrTwoFactorCodeInvalid
	}
	email = NormalizeEmail(email)

	cred, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrTwoFactorCodeInvalid
		}
		return nil, err
	}
	if !cred.TwoFactorEnabled {
		return nil, domain.ErrTwoFactorCodeInvalid
	}
	if cred.Principal.Status != domain.StatusActive {
		return nil, domain.ErrPrincipalInactive
	}

	if err := s.twoFactor.Verify(ctx, cred.Principal.ID, code); err != nil {
		return nil, err
	}
	return s.finishLogin(ctx, cred, meta)
}

// finishLogin issues the token, resolves permissions and records the
// last-login audit. The audit is best-effort: its failure is logged, never
// surfaced.
func (s *SessionServiceImpl) finishLogin(ctx context.Context, cred *domain.Credential, meta domain.LoginMeta) (*domain.AuthResult, error) {
	token, err := s.tokenSvc.Issue(cred.Principal.ID, s.guard)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	snapshot := cred.Principal
	s.attachPermissions(&snapshot)

	if err := s.store.RecordLogin(ctx, snapshot.ID, meta.IP, meta.UserAgent); err != nil {
		s.logger.Warn("last-login audit update failed",
			"guard", s.guard, "principal_id", snapshot.ID, "error", err)
	}

	return &domain.AuthResult{Principal: &snapshot, Token: token}, nil
}

// Register implements domain.SessionService. Registration success is defined
// by the persisted principal: if token issuance fails afterwards the account
// still exists and the result carries no token.
func (s *SessionServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if s.guard != domain.GuardUser {
		return nil, domain.ErrRegistrationClosed
	}

	if err := s.validator.ValidateRegistration(domain.CredentialInput{
		Name:                 in.Name,
		Email:                in.Email,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)

	taken, err := s.store.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewValidationError("email", "has already been taken")
	}

	hashed, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The store re-checks uniqueness via the unique constraint inside the
	// insert transaction and reports a duplicate as a ValidationError.
	principal, err := s.store.Register(ctx, in.Name, email, hashed)
	if err != nil {
		return nil, err
	}
	s.attachPermissions(principal)

	token, err := s.tokenSvc.Issue(principal.ID, s.guard)
	if err != nil {
		s.logger.Warn("token issuance after registration failed",
			"guard", s.guard, "principal_id", principal.ID, "error", err)
		return &domain.AuthResult{Principal: principal}, nil
	}
	return &domain.AuthResult{Principal: principal, Token: token}, nil
}

// Refresh implements domain.SessionService. The token must belong to this
// guard and its principal must still be active.
func (s *SessionServiceImpl) Refresh(ctx context.Context, raw string) (*domain.IssuedToken, error) {
	claims, err := s.tokenSvc.Decode(raw)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Guard != s.guard {
		return nil, domain.ErrTokenInvalid
	}

	cred, err := s.store.FindByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if cred.Principal.Status != domain.StatusActive {
		return nil, domain.ErrPrincipalInactive
	}

	return s.tokenSvc.Refresh(ctx, raw)
}

// Logout implements domain.SessionService. Invalidating an already-dead
// token is reported as success so the endpoint does not leak token validity;
// the token service logs the distinction internally.
func (s *SessionServiceImpl) Logout(ctx context.Context, raw string) error {
	err := s.tokenSvc.Invalidate(ctx, raw)
	if err != nil && errors.Is(err, domain.ErrTokenInvalid) {
		return nil
	}
	return err
}

// Profile implements domain.SessionService.
func (s *SessionServiceImpl) Profile(ctx context.Context, principalID uint) (*domain.Principal, error) {
	cred, err := s.store.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	snapshot := cred.Principal
	s.attachPermissions(&snapshot)
	return &snapshot, nil
}

// UpdateProfile implements domain.SessionService. Email changes re-check
// uniqueness excluding the principal itself; password changes require the
// current password.
func (s *SessionServiceImpl) UpdateProfile(ctx context.Context, principalID uint, in domain.ProfileUpdateInput) (*domain.Principal, error) {
	if err := s.validator.ValidateProfileUpdate(in); err != nil {
		return nil, err
	}

	cred, err := s.store.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	changes := domain.ProfileChanges{
		Name:  in.Name,
		Phone: in.Phone,
	}

	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != cred.Principal.Email {
			taken, err := s.store.EmailTaken(ctx, email, principalID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.NewValidationError("email", "has already been taken")
			}
		}
		changes.Email = &email
	}

	if in.Password != nil {
		if !s.passwordSvc.Verify(cred.PasswordHash, in.CurrentPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		hashed, err := s.passwordSvc.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes.PasswordHash = &hashed
	}

	principal, err := s.store.UpdateProfile(ctx, principalID, changes)
	if err != nil {
		return nil, err
	}
	s.attachPermissions(principal)
	return principal, nil
}

// attachPermissions resolves the principal's permission set for the guard.
// Resolution failure degrades to an empty set rather than failing the
// operation that produced the principal.
func (s *SessionServiceImpl) attachPermissions(p *domain.Principal) {
	perms, err := s.policySvc.PermissionsForRoles(p.Guard, p.Roles)
	if err != nil {
		s.logger.Warn("permission resolution failed",
			"guard", p.Guard, "principal_id", p.ID, "error", err)
		return
	}
	p.Permissions = perms
}

var _ domain.SessionService = (*SessionServiceImpl)(nil)
