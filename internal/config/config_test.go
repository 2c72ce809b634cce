package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"https://book.stayhub.io", "http://localhost:5173"},
		parseOrigins(" https://book.stayhub.io, ,http://localhost:5173 "),
	)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.stayhub.io")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"https://admin.stayhub.io"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "ratelimit:login:10.0.0.1:42", CacheKey.RateLimitKey("login", "10.0.0.1", 42))
	assert.Equal(t, "auth:revoked:abc", CacheKey.RevokedTokenKey("abc"))
}
