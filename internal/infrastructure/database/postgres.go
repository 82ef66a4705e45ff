package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abdallah-SE/academy-learning-sub001/internal/infrastructure/repositories"
)

// Open creates a new database connection. TranslateError is on so unique
// constraint violations surface as gorm.ErrDuplicatedKey and can be folded
// into the validation error taxonomy.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the principal, role and Casbin policy tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBRole{},
		&repositories.DBAdmin{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// The Casbin adapter creates the casbin_rules table on first use.
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}
	return nil
}
