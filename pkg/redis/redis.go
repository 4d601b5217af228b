package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func (r *redisImpl) IncrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX so an existing window keeps its original expiry.
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *redisImpl) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", ErrNil
	}
	return val, err
}

func (r *redisImpl) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, 1, ttl).Result()
}

func (r *redisImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisImpl) Close() error {
	return r.client.Close()
}
