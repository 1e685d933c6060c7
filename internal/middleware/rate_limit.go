package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/deppfellow/campus-portal/internal/lib/ratelimit"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Rate limit response headers (IETF draft "RateLimit header fields").
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

// defaultStoreTimeout bounds each store call. A call that times out is
// treated like any other store failure.
const defaultStoreTimeout = 250 * time.Millisecond

// RateLimitMiddleware applies ratelimit policies to routes.
type RateLimitMiddleware struct {
	store        ratelimit.Store
	enabled      bool
	nrApp        *newrelic.Application
	now          func() time.Time
	storeTimeout time.Duration
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		store:        s.RateLimit,
		enabled:      s.Config.RateLimit.IsEnabled(),
		nrApp:        s.LoggerService.GetApplication(),
		now:          time.Now,
		storeTimeout: defaultStoreTimeout,
	}
}

// Limit counts requests per client IP.
func (r *RateLimitMiddleware) Limit(policy ratelimit.Policy) echo.MiddlewareFunc {
	return r.limit(policy, func(c echo.Context) string {
		return "ip:" + c.RealIP()
	})
}

// LimitPerUser counts requests per authenticated user, falling back to the
// client IP for anonymous callers.
func (r *RateLimitMiddleware) LimitPerUser(policy ratelimit.Policy) echo.MiddlewareFunc {
	return r.limit(policy, func(c echo.Context) string {
		if id := GetUserID(c); id != "" {
			return "user:" + id
		}
		return "ip:" + c.RealIP()
	})
}

func (r *RateLimitMiddleware) limit(policy ratelimit.Policy, identity func(echo.Context) string) echo.MiddlewareFunc {
	limiter := ratelimit.New(policy, r.store)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !r.enabled {
			return next
		}

		return func(c echo.Context) error {
			res, err := r.allow(c, limiter, identity(c))
			counted := err == nil
			if err != nil {
				metrics.RateLimitStoreErrors.WithLabelValues(policy.Name).Inc()
				logger := GetLogger(c)
				logger.Error().Err(err).Str("policy", policy.Name).Msg("rate limit store unavailable, request allowed")
			}

			retryAfter := res.RetryAfter(r.now())
			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.FormatInt(res.Limit, 10))
			h.Set(HeaderRateLimitRemaining, strconv.FormatInt(res.Remaining, 10))
			h.Set(HeaderRateLimitReset, strconv.Itoa(int(retryAfter.Seconds())))

			if !res.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				metrics.RateLimitRejections.WithLabelValues(policy.Name).Inc()
				r.RecordRateLimitHit(policy.Name, c.Path())
				return errs.NewTooManyRequestsError(policy.Message)
			}

			err = next(c)

			if counted && policy.SkipSuccessful && statusOf(c, err) < 400 {
				if refundErr := r.refund(c, limiter, res); refundErr != nil {
					logger := GetLogger(c)
					logger.Error().Err(refundErr).Str("policy", policy.Name).Msg("failed to refund rate limit hit")
				}
			}

			return err
		}
	}
}

func (r *RateLimitMiddleware) storeContext(c echo.Context) (context.Context, context.CancelFunc) {
	timeout := r.storeTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(c.Request().Context(), timeout)
}

func (r *RateLimitMiddleware) allow(c echo.Context, limiter *ratelimit.Limiter, key string) (ratelimit.Result, error) {
	ctx, cancel := r.storeContext(c)
	defer cancel()
	return limiter.Allow(ctx, key)
}

func (r *RateLimitMiddleware) refund(c echo.Context, limiter *ratelimit.Limiter, res ratelimit.Result) error {
	ctx, cancel := r.storeContext(c)
	defer cancel()
	return limiter.Refund(ctx, res)
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(policy, endpoint string) {
	if r.nrApp != nil {
		r.nrApp.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"policy":   policy,
			"endpoint": endpoint,
		})
	}
}
