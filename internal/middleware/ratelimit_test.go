package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/party-api/internal/logging"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	keys   []string
}

func newCountingLimiter() *countingLimiter {
	return &countingLimiter{counts: make(map[string]int)}
}

func (l *countingLimiter) Allow(key string, limit int, window time.Duration) RateDecision {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	l.keys = append(l.keys, key)
	n := l.counts[key]
	return RateDecision{Allowed: n <= limit, Count: n, WindowEnd: time.Now().Add(window)}
}

func (l *countingLimiter) Close() {}

func newRateLimitedApp(t *testing.T, limiter RateLimiter, limit int) http.Handler {
	t.Helper()
	jwtSvc := newTestJWTService()
	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Post("/apply", RateLimit(limiter, "apply", limit, time.Minute, nil, func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))
	return app
}

func applyAs(t *testing.T, app http.Handler, playerID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/apply", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, newTestJWTService(), playerID, models.RolePlayer))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	limiter := newCountingLimiter()
	app := newRateLimitedApp(t, limiter, 2)

	assert.Equal(t, http.StatusOK, applyAs(t, app, 1).Code)

	rec := applyAs(t, app, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	rec = applyAs(t, app, 1)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	// Another player has its own window.
	assert.Equal(t, http.StatusOK, applyAs(t, app, 2).Code)
	assert.Equal(t, "apply:player:1", limiter.keys[0])
	assert.Equal(t, "apply:player:2", limiter.keys[3])
}

func TestRateLimit_DisabledWithoutLimiter(t *testing.T) {
	app := newRateLimitedApp(t, nil, 1)

	for i := 0; i < 3; i++ {
		rec := applyAs(t, app, 1)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRedisRateLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	limiter := NewRedisRateLimiterWithClient(client, logging.Discard())
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("player:1", 1, time.Minute).Allowed)
	}
}

func TestRedisRateLimiter_NonPositiveLimit(t *testing.T) {
	limiter := NewRedisRateLimiterWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), nil)
	defer limiter.Close()

	decision := limiter.Allow("player:1", 0, time.Minute)

	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.Count)
}

func TestRedisRateLimiter_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	limiter, err := NewRedisRateLimiter(addr, "", 0, logging.Discard())
	require.NoError(t, err)
	defer limiter.Close()

	first := limiter.Allow("player:9", 2, time.Minute)
	second := limiter.Allow("player:9", 2, time.Minute)
	third := limiter.Allow("player:9", 2, time.Minute)

	assert.True(t, first.Allowed)
	assert.True(t, second.Allowed)
	assert.False(t, third.Allowed)
	assert.Equal(t, 3, third.Count)
	assert.WithinDuration(t, time.Now().Add(time.Minute), third.WindowEnd, 2*time.Second)

	assert.True(t, limiter.Allow("player:10", 2, time.Minute).Allowed)
}
