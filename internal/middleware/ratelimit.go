package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
)

// HitCounter counts requests per scope and client IP in the current window.
type HitCounter interface {
	Hit(ctx context.Context, scope, ip string) (int64, error)
}

// RateLimiter rejects clients that exceed limit requests per window.
type RateLimiter struct {
	counter HitCounter
	scope   string
	limit   int64
	log     zerolog.Logger
}

// NewRateLimiter creates a RateLimiter for one route scope, e.g. "login".
func NewRateLimiter(counter HitCounter, scope string, limit int, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		scope:   scope,
		limit:   int64(limit),
		log:     log.With().Str("component", "rate_limiter").Str("scope", scope).Logger(),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// If the counter store is down the request is let through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		hits, err := rl.counter.Hit(c.Request.Context(), rl.scope, c.ClientIP())
		if err != nil {
			rl.log.Warn().Err(err).Msg("rate limit counter unavailable")
			c.Next()
			return
		}

		if hits > rl.limit {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
