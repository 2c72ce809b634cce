// Package redisstore holds the Redis-backed pieces of the API: the logout
// denylist, the login rate limit counter and the role-permission event bus.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stayhub/hotel-booking-backend/internal/config"
)

// TokenDenylist stores the jti of logged-out tokens until they expire.
type TokenDenylist struct {
	rdb *redis.Client
}

// NewTokenDenylist creates a TokenDenylist.
func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

// Revoke marks the token id as revoked for ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, config.CacheKey.RevokedTokenKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}
