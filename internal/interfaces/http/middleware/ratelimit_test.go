package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/assetflow/assetflow/internal/infrastructure/ratelimit"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
	policy  ratelimit.Policy
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, policy ratelimit.Policy) (bool, error) {
	f.keys = append(f.keys, key)
	f.policy = policy
	return f.allowed, f.err
}

func newLimitedRouter(l Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(l, "review", ratelimit.Policy{PerMinute: 60}, logger.NewNopLogger())
	r.GET("/review/:token", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiter_AllowsWithinPolicy(t *testing.T) {
	fake := &fakeLimiter{allowed: true}
	r := newLimitedRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/review/rv_abc", nil)
	req.RemoteAddr = "203.0.113.7:5123"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"review:203.0.113.7"}, fake.keys)
	assert.Equal(t, 60, fake.policy.PerMinute)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	r := newLimitedRouter(&fakeLimiter{allowed: false})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/review/rv_abc", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimiter_FailsOpenOnBackendError(t *testing.T) {
	r := newLimitedRouter(&fakeLimiter{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/review/rv_abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
