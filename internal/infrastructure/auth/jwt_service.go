package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// JWTService implements domain.TokenService with HS256 tokens. A token
// carries its guard as a claim, so a user token can never resolve against the
// admin guard. Revocation goes through the blacklist keyed by jti.
type JWTService struct {
	secretKey     []byte
	issuer        string
	accessTTL     time.Duration
	refreshWindow time.Duration
	blacklist     domain.TokenBlacklist
	clock         domain.Clock
	logger        *slog.Logger
}

// NewJWTService creates a new JWT token service. refreshWindow bounds how
// long after issuance an expired token may still be refreshed.
func NewJWTService(secretKey, issuer string, accessTTL, refreshWindow time.Duration, blacklist domain.TokenBlacklist, clock domain.Clock, logger *slog.Logger) *JWTService {
	return &JWTService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshWindow: refreshWindow,
		blacklist:     blacklist,
		clock:         clock,
		logger:        logger,
	}
}

// generateJTI creates a unique JWT ID used as the blacklist key.
func (j *JWTService) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue implements domain.TokenService.
func (j *JWTService) Issue(principalID uint, guard domain.Guard) (*domain.IssuedToken, error) {
	now := j.clock.Now()
	claims := jwt.MapClaims{
		"sub":   int64(principalID),
		"guard": string(guard),
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(j.accessTTL).Unix(),
		"jti":   j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return nil, err
	}

	return &domain.IssuedToken{
		Token:     signed,
		TokenType: "bearer",
		ExpiresIn: int64(j.accessTTL.Seconds()),
	}, nil
}

// Validate implements domain.TokenService. It rejects expired, revoked and
// malformed tokens.
func (j *JWTService) Validate(ctx context.Context, raw string) (*domain.TokenClaims, error) {
	claims, err := j.parse(raw)
	if err != nil {
		return nil, err
	}

	if time.Unix(claims.ExpiresAt, 0).Before(j.clock.Now()) {
		return nil, domain.ErrTokenExpired
	}

	revoked, err := j.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Refresh implements domain.TokenService. A token may be refreshed while it
// is still valid or after expiry as long as the refresh window from its
// issuance has not passed. The old token is revoked so it cannot be replayed.
func (j *JWTService) Refresh(ctx context.Context, raw string) (*domain.IssuedToken, error) {
	claims, err := j.parse(raw)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	now := j.clock.Now()
	refreshDeadline := time.Unix(claims.IssuedAt, 0).Add(j.refreshWindow)
	if now.After(refreshDeadline) {
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := j.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenInvalid
	}

	if err := j.blacklist.Revoke(ctx, claims.TokenID, refreshDeadline.Sub(now)); err != nil {
		return nil, err
	}
	return j.Issue(claims.PrincipalID, claims.Guard)
}

// Invalidate implements domain.TokenService. The blacklist entry lives only
// as long as the token could still be used, bounding storage growth.
func (j *JWTService) Invalidate(ctx context.Context, raw string) error {
	claims, err := j.parse(raw)
	if err != nil {
		j.logger.Info("invalidate called with unparseable token")
		return domain.ErrTokenInvalid
	}

	now := j.clock.Now()
	usableUntil := time.Unix(claims.IssuedAt, 0).Add(j.refreshWindow)
	if usableUntil.Before(now) {
		j.logger.Info("invalidate called with token past refresh window",
			"principal_id", claims.PrincipalID, "guard", claims.Guard)
		return domain.ErrTokenInvalid
	}

	revoked, err := j.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return err
	}
	if revoked {
		j.logger.Info("invalidate called with already revoked token",
			"principal_id", claims.PrincipalID, "guard", claims.Guard)
		return domain.ErrTokenInvalid
	}

	return j.blacklist.Revoke(ctx, claims.TokenID, usableUntil.Sub(now))
}

// Decode implements domain.TokenService.
func (j *JWTService) Decode(raw string) (*domain.TokenClaims, error) {
	return j.parse(raw)
}

// parse verifies the signature and extracts claims without enforcing expiry;
// callers decide how stale a token they accept.
func (j *JWTService) parse(raw string) (*domain.TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	guard, ok := claims["guard"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		PrincipalID: uint(sub),
		Guard:       domain.Guard(guard),
		TokenID:     jti,
		IssuedAt:    int64(iat),
		ExpiresAt:   int64(exp),
	}, nil
}

var _ domain.TokenService = (*JWTService)(nil)
