package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dimitrije/party-api/internal/metrics"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/redis/go-redis/v9"
)

type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) RateDecision
	Close()
}

type RateDecision struct {
	Allowed   bool
	Count     int
	WindowEnd time.Time
}

// RedisRateLimiter counts requests per key in fixed windows. Redis failures
// let the request through.
type RedisRateLimiter struct {
	client  *redis.Client
	logger  *slog.Logger
	prefix  string
	timeout time.Duration
}

func NewRedisRateLimiter(addr, password string, db int, logger *slog.Logger) (*RedisRateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisRateLimiterWithClient(client, logger), nil
}

func NewRedisRateLimiterWithClient(client *redis.Client, logger *slog.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:  client,
		logger:  logger,
		prefix:  "party:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

func (rl *RedisRateLimiter) Allow(key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.logRedisError("incr", err)
		return RateDecision{Allowed: true}
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			rl.logRedisError("expire", err)
		}
	}
	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}
	return RateDecision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(ttl),
	}
}

func (rl *RedisRateLimiter) Close() {
	if rl.client != nil {
		_ = rl.client.Close()
	}
}

func (rl *RedisRateLimiter) logRedisError(op string, err error) {
	if rl.logger == nil {
		return
	}
	rl.logger.Error("redis rate limiter error", "op", op, "error", err)
}

// RateLimit wraps next with a per-player limit for route. A nil limiter or a
// non-positive limit disables it. Must run after Auth.
func RateLimit(limiter RateLimiter, route string, limit int, window time.Duration, m *metrics.Metrics, next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		if limiter == nil || limit <= 0 {
			next(c)
			return
		}
		playerID, ok := GetPlayerID(c)
		if !ok {
			c.Unauthorized("missing player identity")
			return
		}

		decision := limiter.Allow(route+":player:"+strconv.FormatInt(playerID, 10), limit, window)
		setRateHeaders(c, limit, decision)
		if !decision.Allowed {
			m.RateLimited(route)
			_ = c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next(c)
	}
}

func setRateHeaders(c *drift.Context, limit int, decision RateDecision) {
	remaining := limit - decision.Count
	if remaining < 0 {
		remaining = 0
	}
	headers := c.Response.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !decision.WindowEnd.IsZero() {
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.WindowEnd.Unix(), 10))
	}
}
