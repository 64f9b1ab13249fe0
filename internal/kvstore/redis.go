package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore backs the Store interface with a redis instance so storefront
// state survives process restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis at redisURL and verifies the connection
// with a ping before returning.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("redis URL is required")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(5 * time.Second),
	)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return "", fmt.Errorf(
			"failed to get key '%s' from redis store: %w",
			key,
			err,
		)
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf(
			"failed to set key '%s' in redis store: %w",
			key,
			err,
		)
	}

	return nil
}

// Close releases the underlying redis connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
