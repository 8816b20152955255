package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/logging"
)

const defaultTokenKey = "erpclient:token"

// RedisTokenStore implements TokenStore on Redis, for deployments where
// several processes share one session credential.
type RedisTokenStore struct {
	client redis.Cmdable
	key    string
	ctx    context.Context
	logger *logging.Logger
}

// NewRedisTokenStore creates a Redis token store over an existing client.
func NewRedisTokenStore(client redis.Cmdable) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		key:    defaultTokenKey,
		ctx:    context.Background(),
		logger: logging.GetDefault(),
	}
}

// NewRedisTokenStoreFromURL creates a Redis token store from a redis:// URL
// and verifies the connection.
func NewRedisTokenStoreFromURL(redisURL string) (*RedisTokenStore, error) {
	logger := logging.GetDefault()
	ctx := context.Background()

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	testCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(testCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(ctx, "Connected to Redis token store")

	return &RedisTokenStore{
		client: client,
		key:    defaultTokenKey,
		ctx:    ctx,
		logger: logger,
	}, nil
}

func (r *RedisTokenStore) Read() string {
	token, err := r.client.Get(r.ctx, r.key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Error(r.ctx, "Failed to read credential from Redis", err)
		}
		return ""
	}
	return NormalizeBearer(token)
}

func (r *RedisTokenStore) Write(token string) error {
	if token == "" {
		return errors.ErrInvalidCredential
	}
	if err := r.client.Set(r.ctx, r.key, NormalizeBearer(token), 0).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeClientConfig, "failed to persist credential")
	}
	return nil
}

func (r *RedisTokenStore) Clear() error {
	if err := r.client.Del(r.ctx, r.key).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeClientConfig, "failed to clear credential")
	}
	return nil
}
