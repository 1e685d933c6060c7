// Package ratelimit implements fixed-window request counters keyed by
// policy and client identity, backed by Redis or process memory.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Policy describes one limiter: at most Limit hits per Period.
type Policy struct {
	Name    string
	Limit   int64
	Period  time.Duration
	Message string
	// SkipSuccessful only counts requests that end with a status >= 400.
	SkipSuccessful bool
}

var (
	API = Policy{
		Name:    "api",
		Limit:   100,
		Period:  15 * time.Minute,
		Message: "Too many requests from this IP, please try again in 15 minutes",
	}
	Auth = Policy{
		Name:           "auth",
		Limit:          10,
		Period:         15 * time.Minute,
		Message:        "Too many login attempts, please try again in 15 minutes",
		SkipSuccessful: true,
	}
	Contact = Policy{
		Name:    "contact",
		Limit:   5,
		Period:  time.Hour,
		Message: "You have sent too many messages, please try again in 1 hour",
	}
	Create = Policy{
		Name:    "create",
		Limit:   20,
		Period:  time.Hour,
		Message: "Too many resources created, please try again in 1 hour",
	}
)

// User is keyed by the authenticated user id when there is one.
func User(limit int64) Policy {
	return Policy{
		Name:    "user",
		Limit:   limit,
		Period:  15 * time.Minute,
		Message: fmt.Sprintf("You can only make %d requests every 15 minutes", limit),
	}
}

// Store counts hits per key. The first Increment of a key sets its expiry
// to ttl.
type Store interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Decrement(ctx context.Context, key string) error
}

// Result is the outcome of one hit.
type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	Reset     time.Time
	key       string
}

// RetryAfter is the time left in the current window, rounded up to a second.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.Reset.Sub(now)
	if d <= 0 {
		return time.Second
	}
	return (d + time.Second - 1).Truncate(time.Second)
}

type Limiter struct {
	policy Policy
	store  Store
	now    func() time.Time
}

func New(policy Policy, store Store) *Limiter {
	return &Limiter{policy: policy, store: store, now: time.Now}
}

func (l *Limiter) Policy() Policy {
	return l.policy
}

// Allow records one hit for identity in the current window. When the store
// fails the hit is allowed and the error is returned for the caller to log.
func (l *Limiter) Allow(ctx context.Context, identity string) (Result, error) {
	periodMs := l.policy.Period.Milliseconds()
	window := l.now().UnixMilli() / periodMs

	res := Result{
		Limit: l.policy.Limit,
		Reset: time.UnixMilli((window + 1) * periodMs),
		key:   fmt.Sprintf("ratelimit:%s:%s:%d", l.policy.Name, identity, window),
	}

	count, err := l.store.Increment(ctx, res.key, l.policy.Period)
	if err != nil {
		res.Allowed = true
		res.Remaining = l.policy.Limit
		return res, fmt.Errorf("rate limit store (%s): %w", l.policy.Name, err)
	}

	res.Allowed = count <= l.policy.Limit
	res.Remaining = max(l.policy.Limit-count, 0)
	return res, nil
}

// Refund removes the hit recorded by Allow.
func (l *Limiter) Refund(ctx context.Context, res Result) error {
	if res.key == "" {
		return nil
	}
	return l.store.Decrement(ctx, res.key)
}
