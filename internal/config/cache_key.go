package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RateLimitKey returns the counter key for a client IP within a fixed window.
func (r *CacheKeyStruct) RateLimitKey(scope, ip string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, ip, window)
}

// RevokedTokenKey returns the denylist key for a logged-out token.
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// RolePermissionChannel returns the Redis PubSub channel for role-permission changes.
func (r *CacheKeyStruct) RolePermissionChannel() string {
	return "rbac:role_permissions:changes"
}

var CacheKey = NewCacheKeyStruct()
