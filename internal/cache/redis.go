package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Redis is a shared TTL cache backed by rueidis. Failures degrade to
// cache misses so a flaky Redis never breaks a request.
type Redis struct {
	client rueidis.Client
	prefix string
	logger *zap.Logger
}

// RedisConfig holds connection parameters for the Redis cache.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	KeyPrefix string
	Logger    *zap.Logger
}

// NewRedis creates a Redis-backed cache via rueidis.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Redis{client: client, prefix: cfg.KeyPrefix, logger: logger}, nil
}

// Get returns the cached value; any Redis error counts as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := r.client.B().Get().Key(r.prefix + key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			r.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with expiration, best effort.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	cmd := r.client.B().Set().Key(r.prefix + key).Value(string(value)).Ex(ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a key, best effort.
func (r *Redis) Delete(ctx context.Context, key string) {
	cmd := r.client.B().Del().Key(r.prefix + key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		r.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Close shuts down the client.
func (r *Redis) Close() {
	r.client.Close()
}
