package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(p Policy) (*Limiter, *MemoryStore, *clock) {
	c := &clock{t: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = c.now
	l := New(p, store)
	l.now = c.now
	return l, store, c
}

func TestLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	l, _, c := newTestLimiter(Contact)

	for i := int64(1); i <= Contact.Limit; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, Contact.Limit-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
	assert.Equal(t, time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC), res.Reset)
	assert.Equal(t, time.Hour, res.RetryAfter(c.now()))

	other, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "identities are counted separately")

	c.advance(time.Hour)
	res, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a new window starts from zero")
	assert.Equal(t, Contact.Limit-1, res.Remaining)
}

func TestLimiter_Refund(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestLimiter(Policy{Name: "t", Limit: 1, Period: time.Minute})

	res, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, res.Allowed)
	require.NoError(t, l.Refund(ctx, res))

	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	assert.NoError(t, l.Refund(ctx, Result{}))
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}
func (failingStore) Decrement(context.Context, string) error { return nil }

func TestLimiter_FailsOpen(t *testing.T) {
	l := New(API, failingStore{})

	res, err := l.Allow(context.Background(), "ip")
	assert.Error(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, API.Limit, res.Remaining)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(0, 0)}
	s := NewMemoryStore()
	s.now = c.now

	_, _ = s.Increment(ctx, "a", time.Second)
	_, _ = s.Increment(ctx, "b", time.Hour)
	assert.Equal(t, 2, s.Len())

	c.advance(2 * sweepInterval)
	_, _ = s.Increment(ctx, "c", time.Hour)
	assert.Equal(t, 2, s.Len(), "expired counter a is swept")
}

func TestPolicies(t *testing.T) {
	assert.Equal(t, int64(100), API.Limit)
	assert.True(t, Auth.SkipSuccessful)
	assert.False(t, Create.SkipSuccessful)

	u := User(50)
	assert.Equal(t, "user", u.Name)
	assert.Equal(t, 15*time.Minute, u.Period)
	assert.Contains(t, u.Message, "50 requests")
}
