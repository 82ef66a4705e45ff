package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User.
type DBUser struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"size:255"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	Phone        string     `gorm:"index;size:32"`
	PasswordHash string     `gorm:"column:password"`
	Role         string     `gorm:"index;size:64"`
	Status       string     `gorm:"index;size:32"`
	Preferences  string     `gorm:"type:text"` // JSON blob
	LastLoginAt  *time.Time
	LastLoginIP  string `gorm:"size:64"`
	LastLoginUA  string `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The insert runs in its own
// transaction so the unique constraint is the final race-safety guarantee;
// a duplicate key at commit is folded into the validation taxonomy.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(dbUser).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewValidationError("email", "has already been taken")
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(dbUser).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewValidationError("email", "has already been taken")
		}
		return err
	}
	return nil
}

// EmailTaken implements domain.UserRepository.
func (r *UserRepositoryImpl) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordLogin implements domain.UserRepository.
func (r *UserRepositoryImpl) RecordLogin(ctx context.Context, id uint, ip, userAgent string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": ip,
		"last_login_ua": userAgent,
	}).Error
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	prefs := ""
	if len(user.Preferences) > 0 {
		if data, err := json.Marshal(user.Preferences); err == nil {
			prefs = string(data)
		}
	}
	return &DBUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Status:       user.Status,
		Preferences:  prefs,
		LastLoginAt:  user.LastLoginAt,
		LastLoginIP:  user.LastLoginIP,
		LastLoginUA:  user.LastLoginUA,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	var prefs map[string]string
	if dbUser.Preferences != "" {
		_ = json.Unmarshal([]byte(dbUser.Preferences), &prefs)
	}
	return &domain.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		Email:        dbUser.Email,
		Phone:        dbUser.Phone,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		Status:       dbUser.Status,
		Preferences:  prefs,
		LastLoginAt:  dbUser.LastLoginAt,
		LastLoginIP:  dbUser.LastLoginIP,
		LastLoginUA:  dbUser.LastLoginUA,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

var _ domain.UserRepository = (*UserRepositoryImpl)(nil)
