package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// AdminRepositoryImpl implements domain.AdminRepository using GORM. Soft
// deletion is explicit at the method level: FindActive, FindIncludingDeleted
// and FindOnlyDeleted pick the visibility, nothing toggles a global scope.
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// DBAdmin represents the database model for Admin.
type DBAdmin struct {
	ID               uint    `gorm:"primaryKey"`
	Username         *string `gorm:"uniqueIndex;size:64"`
	Email            string  `gorm:"uniqueIndex;size:255"`
	PasswordHash     string  `gorm:"column:password"`
	Status           string  `gorm:"index;size:32"`
	TwoFactorEnabled bool
	TwoFactorPhone   string `gorm:"size:32"`
	LastLoginAt      *time.Time
	LastLoginIP      string         `gorm:"size:64"`
	LastLoginUA      string         `gorm:"size:512"`
	Roles            []DBRole       `gorm:"many2many:admin_roles"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBAdmin) TableName() string {
	return "admins"
}

// DBRole represents the database model for Role.
type DBRole struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex:idx_roles_name_guard;size:64"`
	Guard string `gorm:"uniqueIndex:idx_roles_name_guard;size:16"`
}

// TableName returns the table name for GORM.
func (DBRole) TableName() string {
	return "roles"
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// Create implements domain.AdminRepository. Role rows are created on demand
// inside the same transaction as the admin insert.
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := r.domainToDB(admin)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := r.ensureRoles(tx, admin.Roles)
		if err != nil {
			return err
		}
		dbAdmin.Roles = roles
		return tx.Create(dbAdmin).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewValidationError("email", "has already been taken")
		}
		return err
	}
	admin.ID = dbAdmin.ID
	admin.CreatedAt = dbAdmin.CreatedAt
	admin.UpdatedAt = dbAdmin.UpdatedAt
	return nil
}

// FindActive implements domain.AdminRepository. GORM's soft-delete scope
// already excludes tombstoned rows here.
func (r *AdminRepositoryImpl) FindActive(ctx context.Context, id uint) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&dbAdmin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindByEmail implements domain.AdminRepository. Soft-deleted admins never
// authenticate, so the default scope applies.
func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&dbAdmin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindIncludingDeleted implements domain.AdminRepository.
func (r *AdminRepositoryImpl) FindIncludingDeleted(ctx context.Context, id uint) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Unscoped().Preload("Roles").Where("id = ?", id).First(&dbAdmin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindOnlyDeleted implements domain.AdminRepository.
func (r *AdminRepositoryImpl) FindOnlyDeleted(ctx context.Context, id uint) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Unscoped().Preload("Roles").
		Where("id = ? AND deleted_at IS NOT NULL", id).First(&dbAdmin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// ListActive implements domain.AdminRepository.
func (r *AdminRepositoryImpl) ListActive(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
	page = page.Normalize()
	var total int64
	if err := r.db.WithContext(ctx).Model(&DBAdmin{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbAdmins []DBAdmin
	err := r.db.WithContext(ctx).Preload("Roles").
		Order("id").Limit(page.PerPage).Offset(page.Offset()).Find(&dbAdmins).Error
	if err != nil {
		return nil, 0, err
	}
	return r.dbListToDomain(dbAdmins), total, nil
}

// ListDeleted implements domain.AdminRepository.
func (r *AdminRepositoryImpl) ListDeleted(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
	page = page.Normalize()
	var total int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&DBAdmin{}).
		Where("deleted_at IS NOT NULL").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbAdmins []DBAdmin
	err := r.db.WithContext(ctx).Unscoped().Preload("Roles").
		Where("deleted_at IS NOT NULL").
		Order("id").Limit(page.PerPage).Offset(page.Offset()).Find(&dbAdmins).Error
	if err != nil {
		return nil, 0, err
	}
	return r.dbListToDomain(dbAdmins), total, nil
}

// Update implements domain.AdminRepository.
func (r *AdminRepositoryImpl) Update(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := r.domainToDB(admin)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := r.ensureRoles(tx, admin.Roles)
		if err != nil {
			return err
		}
		if err := tx.Omit("Roles", "CreatedAt", "DeletedAt").Save(dbAdmin).Error; err != nil {
			return err
		}
		return tx.Model(dbAdmin).Association("Roles").Replace(roles)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewValidationError("email", "has already been taken")
		}
		return err
	}
	return nil
}

// SoftDelete implements domain.AdminRepository.
func (r *AdminRepositoryImpl) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBAdmin{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

// Restore implements domain.AdminRepository.
func (r *AdminRepositoryImpl) Restore(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Model(&DBAdmin{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

// ForceDelete implements domain.AdminRepository. The role links go with the
// row.
func (r *AdminRepositoryImpl) ForceDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := DBAdmin{ID: id}
		if err := tx.Model(&admin).Association("Roles").Clear(); err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&DBAdmin{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPrincipalNotFound
		}
		return nil
	})
}

// EmailTaken implements domain.AdminRepository. Soft-deleted admins still
// hold their email, so the unscoped table is consulted.
func (r *AdminRepositoryImpl) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&DBAdmin{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordLogin implements domain.AdminRepository.
func (r *AdminRepositoryImpl) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&DBAdmin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": ip,
		"last_login_ua": userAgent,
	}).Error
}

// ensureRoles loads or creates the admin-guard role rows for the given names.
func (r *AdminRepositoryImpl) ensureRoles(tx *gorm.DB, names []string) ([]DBRole, error) {
	roles := make([]DBRole, 0, len(names))
	for _, name := range names {
		var role DBRole
		err := tx.Where(DBRole{Name: name, Guard: string(domain.GuardAdmin)}).
			FirstOrCreate(&role).Error
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *AdminRepositoryImpl) domainToDB(admin *domain.Admin) *DBAdmin {
	var username *string
	if admin.Username != "" {
		u := admin.Username
		username = &u
	}
	return &DBAdmin{
		ID:               admin.ID,
		Username:         username,
		Email:            admin.Email,
		PasswordHash:     admin.PasswordHash,
		Status:           admin.Status,
		TwoFactorEnabled: admin.TwoFactorEnabled,
		TwoFactorPhone:   admin.TwoFactorPhone,
		LastLoginAt:      admin.LastLoginAt,
		LastLoginIP:      admin.LastLoginIP,
		LastLoginUA:      admin.LastLoginUA,
	}
}

func (r *AdminRepositoryImpl) dbToDomain(dbAdmin *DBAdmin) *domain.Admin {
	username := ""
	if dbAdmin.Username != nil {
		username = *dbAdmin.Username
	}
	roles := make([]string, 0, len(dbAdmin.Roles))
	for _, role := range dbAdmin.Roles {
		roles = append(roles, role.Name)
	}
	var deletedAt *time.Time
	if dbAdmin.DeletedAt.Valid {
		t := dbAdmin.DeletedAt.Time
		deletedAt = &t
	}
	return &domain.Admin{
		ID:               dbAdmin.ID,
		Username:         username,
		Email:            dbAdmin.Email,
		PasswordHash:     dbAdmin.PasswordHash,
		Status:           dbAdmin.Status,
		Roles:            roles,
		TwoFactorEnabled: dbAdmin.TwoFactorEnabled,
		TwoFactorPhone:   dbAdmin.TwoFactorPhone,
		LastLoginAt:      dbAdmin.LastLoginAt,
		LastLoginIP:      dbAdmin.LastLoginIP,
		LastLoginUA:      dbAdmin.LastLoginUA,
		DeletedAt:        deletedAt,
		CreatedAt:        dbAdmin.CreatedAt,
		UpdatedAt:        dbAdmin.UpdatedAt,
	}
}

func (r *AdminRepositoryImpl) dbListToDomain(dbAdmins []DBAdmin) []domain.Admin {
	admins := make([]domain.Admin, 0, len(dbAdmins))
	for i := range dbAdmins {
		admins = append(admins, *r.dbToDomain(&dbAdmins[i]))
	}
	return admins
}

var _ domain.AdminRepository = (*AdminRepositoryImpl)(nil)
