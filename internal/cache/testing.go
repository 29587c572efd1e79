package cache

import (
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// NewRedisForTest creates a Redis cache with the provided rueidis client (test-only).
func NewRedisForTest(c rueidis.Client, prefix string) *Redis {
	return &Redis{client: c, prefix: prefix, logger: zap.NewNop()}
}
