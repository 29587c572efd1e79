package sdk

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint   string
	token      string
	timeout    time.Duration
	maxRetries int

	cacheEnabled bool
	cacheTTL     time.Duration
	redisAddrs   []string
	redisPass    string

	statsAddrs []string
	statsPass  string

	logger *zap.Logger
}

// WithEndpoint sets the upstream GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = endpoint
	})
}

// WithToken sets the bearer token sent to the endpoint.
func WithToken(token string) Option {
	return optionFunc(func(c *clientConfig) {
		c.token = token
	})
}

// WithTimeout bounds each query round-trip.
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = timeout
	})
}

// WithRetries sets how many times a failed query is retried.
func WithRetries(max int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = max
	})
}

// WithMemoryCache enables the in-process query cache.
func WithMemoryCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheEnabled = true
		c.cacheTTL = ttl
	})
}

// WithRedisCache enables a shared Redis-backed query cache.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheEnabled = true
		c.cacheTTL = ttl
		c.redisAddrs = []string{addr}
		c.redisPass = password
	})
}

// WithStats enables per-user usage counters in Redis.
func WithStats(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.statsAddrs = []string{addr}
		c.statsPass = password
	})
}

// WithLogger sets the zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = logger
	})
}
