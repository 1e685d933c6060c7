package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	// -1 means the key exists without an expiry, i.e. this was the first hit.
	if incr.Val() == 1 || pttl.Val() == -1 {
		if err := s.client.PExpire(ctx, key, ttl).Err(); err != nil {
			return 0, err
		}
	}

	return incr.Val(), nil
}

// decrIfExists does not recreate a counter whose window already expired.
var decrIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

func (s *RedisStore) Decrement(ctx context.Context, key string) error {
	return decrIfExists.Run(ctx, s.client, []string{key}).Err()
}
