package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// TokenBlacklistImpl implements domain.TokenBlacklist using Redis. Entries
// carry a TTL no longer than the token's own remaining lifetime, so the
// store cannot grow past the set of tokens that could still be presented.
type TokenBlacklistImpl struct {
	client *redis.Client
	prefix string
}

// NewTokenBlacklist creates a new Redis-backed token blacklist.
func NewTokenBlacklist(client *redis.Client) domain.TokenBlacklist {
	return &TokenBlacklistImpl{
		client: client,
		prefix: "blacklist:",
	}
}

// Revoke implements domain.TokenBlacklist.
func (r *TokenBlacklistImpl) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already dead on its own; nothing to store.
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenID, 1, ttl).Err()
}

// IsRevoked implements domain.TokenBlacklist.
func (r *TokenBlacklistImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ domain.TokenBlacklist = (*TokenBlacklistImpl)(nil)
