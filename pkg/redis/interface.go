package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the narrow Redis surface the alert engine uses: a daily
// counter for rate limiting and set-if-absent keys for dedup windows.
type IRedis interface {
	// IncrWithExpiry increments key and sets ttl on first increment.
	// Returns the post-increment value.
	IncrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Get returns the string value at key, or ErrNil when absent.
	Get(ctx context.Context, key string) (string, error)
	// SetNX sets key with ttl if it does not exist. Returns true when
	// the key was set (first writer wins).
	SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// New builds a connected Redis client.
func New(cfg Config) (IRedis, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisImpl{client: client}, nil
}
