package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/deppfellow/campus-portal/internal/lib/ratelimit"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimit(store ratelimit.Store) *RateLimitMiddleware {
	return &RateLimitMiddleware{store: store, enabled: true, now: time.Now}
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_reject", Limit: 2, Period: time.Minute, Message: "slow down"}
	rl := newTestRateLimit(ratelimit.NewMemoryStore())

	e := newTestEcho()
	e.GET("/x", ok, rl.Limit(policy))

	for i, remaining := range []string{"1", "0"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "2", rec.Header().Get(HeaderRateLimitLimit))
		assert.Equal(t, remaining, rec.Header().Get(HeaderRateLimitRemaining))
	}

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errs.CodeRateLimited, body.Code)
	assert.Equal(t, "slow down", body.Message)

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.True(t, retryAfter >= 1 && retryAfter <= 60, "retry after %d", retryAfter)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RateLimitRejections.WithLabelValues("test_reject")))
}

func TestRateLimit_SeparateCountersPerIP(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_ip", Limit: 1, Period: time.Minute}
	rl := newTestRateLimit(ratelimit.NewMemoryStore())

	e := newTestEcho()
	e.GET("/x", ok, rl.Limit(policy))

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":5555"
		return serve(e, req).Code
	}

	assert.Equal(t, http.StatusOK, from("198.51.100.1"))
	assert.Equal(t, http.StatusOK, from("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, from("198.51.100.1"))
}

func TestRateLimit_SkipSuccessfulOnlyCountsFailures(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_auth", Limit: 2, Period: time.Minute, SkipSuccessful: true}
	rl := newTestRateLimit(ratelimit.NewMemoryStore())

	e := newTestEcho()
	e.POST("/login", func(c echo.Context) error {
		if c.QueryParam("password") != "right" {
			return errs.NewUnauthorizedErrorWithCode("bad credentials", errs.CodeInvalidCredentials)
		}
		return c.NoContent(http.StatusOK)
	}, rl.Limit(policy))

	login := func(password string) int {
		return serve(e, httptest.NewRequest(http.MethodPost, "/login?password="+password, nil)).Code
	}

	for range 5 {
		require.Equal(t, http.StatusOK, login("right"))
	}
	assert.Equal(t, http.StatusUnauthorized, login("wrong"))
	assert.Equal(t, http.StatusUnauthorized, login("wrong"))
	assert.Equal(t, http.StatusTooManyRequests, login("right"))
}

func TestRateLimit_PerUser(t *testing.T) {
	policy := ratelimit.User(1)
	rl := newTestRateLimit(ratelimit.NewMemoryStore())

	as := func(id int64) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if id > 0 {
					setActor(c, model.Actor{UserID: id, Role: model.RoleAdmin})
				}
				return next(c)
			}
		}
	}

	e := newTestEcho()
	e.GET("/u/:id", ok, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
			return as(id)(next)(c)
		}
	}, rl.LimitPerUser(policy))

	call := func(id string) int {
		return serve(e, httptest.NewRequest(http.MethodGet, "/u/"+id, nil)).Code
	}

	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusOK, call("2"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))
	assert.Equal(t, http.StatusOK, call("0"), "anonymous callers are keyed by IP")
	assert.Equal(t, http.StatusTooManyRequests, call("0"))
}

type brokenStore struct{}

func (brokenStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis: connection refused")
}

func (brokenStore) Decrement(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestRateLimit_StoreFailureAllowsRequest(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_broken", Limit: 1, Period: time.Minute, SkipSuccessful: true}
	rl := newTestRateLimit(brokenStore{})

	e := newTestEcho()
	e.GET("/x", ok, rl.Limit(policy))

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.RateLimitStoreErrors.WithLabelValues("test_broken")))
}

// hangingStore blocks like a Redis that drops packets.
type hangingStore struct{}

func (hangingStore) Increment(ctx context.Context, _ string, _ time.Duration) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (hangingStore) Decrement(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRateLimit_StoreTimeoutFailsOpen(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_hanging", Limit: 1, Period: time.Minute}
	rl := newTestRateLimit(hangingStore{})
	rl.storeTimeout = 20 * time.Millisecond

	e := newTestEcho()
	e.GET("/x", ok, rl.Limit(policy))

	start := time.Now()
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RateLimitStoreErrors.WithLabelValues("test_hanging")))
}

func TestRateLimit_Disabled(t *testing.T) {
	policy := ratelimit.Policy{Name: "test_disabled", Limit: 1, Period: time.Minute}
	rl := newTestRateLimit(ratelimit.NewMemoryStore())
	rl.enabled = false

	e := newTestEcho()
	e.GET("/x", ok, rl.Limit(policy))

	for range 3 {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(HeaderRateLimitLimit))
	}
}
