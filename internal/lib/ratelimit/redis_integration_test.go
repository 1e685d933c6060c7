//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)

	n, err := store.Increment(ctx, "ratelimit:test:ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ttl, err := client.PTTL(ctx, "ratelimit:test:ip:1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	n, err = store.Increment(ctx, "ratelimit:test:ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Decrement(ctx, "ratelimit:test:ip:1"))
	got, err := client.Get(ctx, "ratelimit:test:ip:1").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
