package scheduling

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker with SET NX and a TTL so a crashed holder
// cannot wedge materialization for its (restaurant, week).
type RedisLocker struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisLocker(client *redis.Client, expiration time.Duration) *RedisLocker {
	return &RedisLocker{
		client:     client,
		expiration: expiration,
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, key, 1, l.expiration).Result()
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}
