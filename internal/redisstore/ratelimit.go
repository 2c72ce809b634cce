package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stayhub/hotel-booking-backend/internal/config"
)

// WindowCounter is a fixed-window request counter shared by every API replica.
type WindowCounter struct {
	rdb    *redis.Client
	window time.Duration
}

// NewWindowCounter creates a counter whose windows last for window.
func NewWindowCounter(rdb *redis.Client, window time.Duration) *WindowCounter {
	return &WindowCounter{rdb: rdb, window: window}
}

// Hit increments the counter for scope and ip in the current window and
// returns the new count.
func (w *WindowCounter) Hit(ctx context.Context, scope, ip string) (int64, error) {
	slot := time.Now().Unix() / int64(w.window.Seconds())
	key := config.CacheKey.RateLimitKey(scope, ip, slot)

	pipe := w.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, w.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit hit: %w", err)
	}
	return incr.Val(), nil
}
