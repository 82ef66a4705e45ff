package repositories

import (
	"context"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// UserPrincipalStore adapts the user repository to the guard-neutral
// PrincipalStore consumed by the session service.
type UserPrincipalStore struct {
	users domain.UserRepository
}

// NewUserPrincipalStore creates the user-guard principal store.
func NewUserPrincipalStore(users domain.UserRepository) domain.PrincipalStore {
	return &UserPrincipalStore{users: users}
}

// FindByEmail implements domain.PrincipalStore.
func (s *UserPrincipalStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return userCredential(user), nil
}

// FindByID implements domain.PrincipalStore.
func (s *UserPrincipalStore) FindByID(ctx context.Context, id uint) (*domain.Credential, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userCredential(user), nil
}

// EmailTaken implements domain.PrincipalStore.
func (s *UserPrincipalStore) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.users.EmailTaken(ctx, email, excludeID)
}

// Register implements domain.PrincipalStore. New accounts start as active
// students.
func (s *UserPrincipalStore) Register(ctx context.Context, name, email, passwordHash string) (*domain.Principal, error) {
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "student",
		Status:       domain.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return userSnapshot(user), nil
}

// UpdateProfile implements domain.PrincipalStore.
func (s *UserPrincipalStore) UpdateProfile(ctx context.Context, id uint, changes domain.ProfileChanges) (*domain.Principal, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.Phone != nil {
		user.Phone = *changes.Phone
	}
	if changes.PasswordHash != nil {
		user.PasswordHash = *changes.PasswordHash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return userSnapshot(user), nil
}

// RecordLogin implements domain.PrincipalStore.
func (s *UserPrincipalStore) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	return s.users.RecordLogin(ctx, id, ip, userAgent)
}

func userSnapshot(user *domain.User) *domain.Principal {
	return &domain.Principal{
		ID:     user.ID,
		Guard:  domain.GuardUser,
		Name:   user.Name,
		Email:  user.Email,
		Status: user.Status,
		Roles:  []string{user.Role},
	}
}

func userCredential(user *domain.User) *domain.Credential {
	return &domain.Credential{
		Principal:    *userSnapshot(user),
		PasswordHash: user.PasswordHash,
	}
}

// AdminPrincipalStore adapts the admin repository to the PrincipalStore
// interface. Admin lookups exclude soft-deleted rows, so a tombstoned admin
// can never authenticate.
type AdminPrincipalStore struct {
	admins domain.AdminRepository
}

// NewAdminPrincipalStore creates the admin-guard principal store.
func NewAdminPrincipalStore(admins domain.AdminRepository) domain.PrincipalStore {
	return &AdminPrincipalStore{admins: admins}
}

// FindByEmail implements domain.PrincipalStore.
func (s *AdminPrincipalStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return adminCredential(admin), nil
}

// FindByID implements domain.PrincipalStore.
func (s *AdminPrincipalStore) FindByID(ctx context.Context, id uint) (*domain.Credential, error) {
	admin, err := s.admins.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return adminCredential(admin), nil
}

// EmailTaken implements domain.PrincipalStore.
func (s *AdminPrincipalStore) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.admins.EmailTaken(ctx, email, excludeID)
}

// Register implements domain.PrincipalStore. Admins are created by
// privileged operations, never by self-registration.
func (s *AdminPrincipalStore) Register(ctx context.Context, name, email, passwordHash string) (*domain.Principal, error) {
	return nil, domain.ErrRegistrationClosed
}

// UpdateProfile implements domain.PrincipalStore.
func (s *AdminPrincipalStore) UpdateProfile(ctx context.Context, id uint, changes domain.ProfileChanges) (*domain.Principal, error) {
	admin, err := s.admins.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if changes.Name != nil {
		admin.Username = *changes.Name
	}
	if changes.Email != nil {
		admin.Email = *changes.Email
	}
	if changes.PasswordHash != nil {
		admin.PasswordHash = *changes.PasswordHash
	}
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return adminSnapshot(admin), nil
}

// RecordLogin implements domain.PrincipalStore.
func (s *AdminPrincipalStore) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	return s.admins.RecordLogin(ctx, id, ip, userAgent)
}

func adminSnapshot(admin *domain.Admin) *domain.Principal {
	return &domain.Principal{
		ID:     admin.ID,
		Guard:  domain.GuardAdmin,
		Name:   admin.Username,
		Email:  admin.Email,
		Status: admin.Status,
		Roles:  append([]string(nil), admin.Roles...),
	}
}

func adminCredential(admin *domain.Admin) *domain.Credential {
	return &domain.Credential{
		Principal:        *adminSnapshot(admin),
		PasswordHash:     admin.PasswordHash,
		TwoFactorEnabled: admin.TwoFactorEnabled,
		TwoFactorPhone:   admin.TwoFactorPhone,
	}
}

var (
	_ domain.PrincipalStore = (*UserPrincipalStore)(nil)
	_ domain.PrincipalStore = (*AdminPrincipalStore)(nil)
)
