package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Debug   bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type GuardConfig struct {
	PasswordMinLength int `yaml:"password_min_length"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TwoFactorConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	UserGuard GuardConfig     `yaml:"user_guard"`
	AdminGuard GuardConfig    `yaml:"admin_guard"`
	CORS      CORSConfig      `yaml:"cors"`
	TwoFactor TwoFactorConfig `yaml:"two_factor"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port              string
	GinMode           string
	Debug             bool
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	UserPasswordMin   int
	AdminPasswordMin  int
	AllowedOrigins    []string
	TwoFactorTTL      time.Duration
	TwoFactorLength   int
	TwoFactorAttempts int
	TwoFactorResend   time.Duration
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	CasbinModelPath   string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// values that differ per deployment.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFrom reads the config file at path.
func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(file.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(file.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	tfTTL, err := time.ParseDuration(file.TwoFactor.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid two-factor TTL: %w", err)
	}
	tfResend, err := time.ParseDuration(file.TwoFactor.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid two-factor resend window: %w", err)
	}

	cfg := &Config{
		Port:              strconv.Itoa(file.App.Port),
		GinMode:           file.App.GinMode,
		Debug:             file.App.Debug,
		DSN:               env("DATABASE_DSN", file.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:           file.Redis.DB,
		JWTSecret:         env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:         file.JWT.Issuer,
		AccessTTL:         accTTL,
		RefreshTTL:        refTTL,
		UserPasswordMin:   file.UserGuard.PasswordMinLength,
		AdminPasswordMin:  file.AdminGuard.PasswordMinLength,
		AllowedOrigins:    file.CORS.AllowedOrigins,
		TwoFactorTTL:      tfTTL,
		TwoFactorLength:   file.TwoFactor.Length,
		TwoFactorAttempts: file.TwoFactor.MaxAttempts,
		TwoFactorResend:   tfResend,
		TwilioSID:         env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:       env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:        file.Twilio.FromNumber,
		CasbinModelPath:   file.Casbin.ModelPath,
	}

	if cfg.UserPasswordMin == 0 {
		cfg.UserPasswordMin = 8
	}
	if cfg.AdminPasswordMin == 0 {
		cfg.AdminPasswordMin = 6
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}
