package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// TwoFactorConfig bounds the lifetime and retry budget of a login challenge.
type TwoFactorConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// TwoFactorServiceImpl implements domain.TwoFactorService with Redis-held
// challenge state and SMS delivery.
type TwoFactorServiceImpl struct {
	notifier    domain.NotificationService
	redisClient *redis.Client
	config      TwoFactorConfig
	logger      *slog.Logger
}

// NewTwoFactorService creates a new Redis-backed two-factor service.
func NewTwoFactorService(notifier domain.NotificationService, redisClient *redis.Client, config TwoFactorConfig, logger *slog.Logger) domain.TwoFactorService {
	return &TwoFactorServiceImpl{
		notifier:    notifier,
		redisClient: redisClient,
		config:      config,
		logger:      logger,
	}
}

func (s *TwoFactorServiceImpl) codeKey(adminID uint) string {
	return fmt.Sprintf("tfa:%d", adminID)
}

func (s *TwoFactorServiceImpl) attemptsKey(adminID uint) string {
	return fmt.Sprintf("tfa:att:%d", adminID)
}

func (s *TwoFactorServiceImpl) resendKey(adminID uint) string {
	return fmt.Sprintf("tfa:res:%d", adminID)
}

// Challenge implements domain.TwoFactorService.
func (s *TwoFactorServiceImpl) Challenge(ctx context.Context, adminID uint, phone string) error {
	if canResend, _, err := s.CanResend(ctx, adminID); err != nil {
		return err
	} else if !canResend {
		return domain.ErrTwoFactorThrottled
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.codeKey(adminID), code, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.attemptsKey(adminID), 0, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.resendKey(adminID), 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your admin login code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notifier.SendSMS(phone, message); err != nil {
		// Roll the challenge back so the admin can request a new one.
		s.redisClient.Del(ctx, s.codeKey(adminID), s.attemptsKey(adminID), s.resendKey(adminID))
		return fmt.Errorf("failed to deliver verification code: %w", err)
	}

	s.logger.Info("two-factor challenge issued", "admin_id", adminID)
	return nil
}

// Verify implements domain.TwoFactorService.
func (s *TwoFactorServiceImpl) Verify(ctx context.Context, adminID uint, code string) error {
	attempts, err := s.redisClient.Incr(ctx, s.attemptsKey(adminID)).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, s.codeKey(adminID), s.attemptsKey(adminID))
		return domain.ErrTwoFactorMaxAttempts
	}

	stored, err := s.redisClient.Get(ctx, s.codeKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrTwoFactorExpired
	}
	if err != nil {
		return fmt.Errorf("failed to load verification code: %w", err)
	}

	if stored != code {
		return domain.ErrTwoFactorCodeInvalid
	}

	s.redisClient.Del(ctx, s.codeKey(adminID), s.attemptsKey(adminID))
	return nil
}

// CanResend implements domain.TwoFactorService.
func (s *TwoFactorServiceImpl) CanResend(ctx context.Context, adminID uint) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, s.resendKey(adminID)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

func (s *TwoFactorServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

var _ domain.TwoFactorService = (*TwoFactorServiceImpl)(nil)
