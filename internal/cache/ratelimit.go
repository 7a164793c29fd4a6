package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const limiterPrefix = "ratelimit"

// Limiter is a fixed-window counter: one Redis key per caller per window.
type Limiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(rdb redis.Cmdable, perMinute int) *Limiter {
	return &Limiter{rdb: rdb, limit: perMinute, window: time.Minute, now: time.Now}
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Allow counts one request for key in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", limiterPrefix, key, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= l.limit,
		Remaining: remaining,
		ResetIn:   windowStart.Add(l.window).Sub(now),
	}, nil
}

// Middleware limits requests per caller. keyFn returns the caller key; an
// empty key skips limiting. Redis failures let the request through.
func (l *Limiter) Middleware(keyFn func(*gin.Context) string, log *zap.Logger) gin.HandlerFunc {
	sugar := log.Sugar()
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		d, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			sugar.Warnw("rate limiter unavailable, allowing request", "key", key, "err", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(d.ResetIn.Seconds())+1))
			response.TooManyRequests(c, "")
			return
		}
		c.Next()
	}
}
