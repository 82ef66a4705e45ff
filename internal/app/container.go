package app

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/config"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/infrastructure/auth"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/infrastructure/database"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/infrastructure/notifications"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/infrastructure/repositories"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/services"
)

// Container holds the wired dependency graph.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo   domain.UserRepository
	AdminRepo  domain.AdminRepository
	Blacklist  domain.TokenBlacklist
	UserStore  domain.PrincipalStore
	AdminStore domain.PrincipalStore

	PasswordSvc  domain.PasswordService
	TokenSvc     domain.TokenService
	PolicySvc    domain.PolicyService
	Gate         domain.AccessGate
	TwoFactorSvc domain.TwoFactorService

	UserSessions  domain.SessionService
	AdminSessions domain.SessionService
}

// NewContainer wires the full dependency graph from configuration.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	c.UserRepo = repositories.NewUserRepository(gdb)
	c.AdminRepo = repositories.NewAdminRepository(gdb)
	c.Blacklist = repositories.NewTokenBlacklist(c.RedisClient)
	c.UserStore = repositories.NewUserPrincipalStore(c.UserRepo)
	c.AdminStore = repositories.NewAdminPrincipalStore(c.AdminRepo)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		cfg.JWTSecret, cfg.JWTIssuer,
		cfg.AccessTTL, cfg.RefreshTTL,
		c.Blacklist, domain.ClockFunc(time.Now), logger,
	)
	c.PolicySvc = services.NewPolicyService(cas.E)
	c.Gate = services.NewAccessGate(c.PolicySvc)

	notifier := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)
	c.TwoFactorSvc = services.NewTwoFactorService(notifier, c.RedisClient, services.TwoFactorConfig{
		Length:       cfg.TwoFactorLength,
		TTL:          cfg.TwoFactorTTL,
		MaxAttempts:  cfg.TwoFactorAttempts,
		ResendWindow: cfg.TwoFactorResend,
	}, logger)

	c.UserSessions = services.NewSessionService(services.GuardSessionConfig{
		Guard:          domain.GuardUser,
		Store:          c.UserStore,
		PasswordPolicy: domain.PasswordPolicy{MinLength: cfg.UserPasswordMin},
	}, c.PasswordSvc, c.TokenSvc, c.PolicySvc, logger)

	c.AdminSessions = services.NewSessionService(services.GuardSessionConfig{
		Guard:          domain.GuardAdmin,
		Store:          c.AdminStore,
		PasswordPolicy: domain.PasswordPolicy{MinLength: cfg.AdminPasswordMin},
		TwoFactor:      c.TwoFactorSvc,
	}, c.PasswordSvc, c.TokenSvc, c.PolicySvc, logger)

	return c, nil
}

// Close closes the backing connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
