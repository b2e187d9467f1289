package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "blacklist:"

// RevokedTokenKey is the key marking a token id as revoked.
func RevokedTokenKey(jti string) string {
	return revokedKeyPrefix + jti
}

// TokenBlacklist records revoked token ids until the token would have expired
// anyway. A nil client makes every method a no-op.
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

// Enabled reports whether revocations are persisted.
func (b *TokenBlacklist) Enabled() bool {
	return b != nil && b.rdb != nil
}

// Revoke stores jti for ttl. Tokens already past expiry are skipped.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !b.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	if err := b.rdb.Set(ctx, RevokedTokenKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked fails open: a Redis error is returned with false so the caller
// can log it and accept the token.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !b.Enabled() || jti == "" {
		return false, nil
	}
	n, err := b.rdb.Exists(ctx, RevokedTokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}
