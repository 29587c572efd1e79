// Package cache is the best-effort TTL response cache. Staleness up to
// the TTL is acceptable; there is no invalidation on write because the
// system is read-mostly against an external API.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the minimal get/set surface both backends implement.
// No transactional guarantees; a miss and a failure look the same.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Key derives a cache key from an operation name and its arguments.
func Key(operation string, args ...string) string {
	h := sha256.Sum256([]byte(operation + ":" + strings.Join(args, ":")))
	return operation + ":" + hex.EncodeToString(h[:16])
}
