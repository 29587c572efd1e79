package cache

import (
	"context"
	"time"

	"github.com/griddigger/griddigger/internal/metrics"
)

// Manager wraps a backend with a default TTL, hit/miss metrics, and a
// disabled mode. A nil backend or Enabled=false makes every lookup a miss.
type Manager struct {
	backend Cache
	ttl     time.Duration
	enabled bool
}

// NewManager creates a cache manager. backend may be nil to disable caching.
func NewManager(backend Cache, ttl time.Duration, enabled bool) *Manager {
	return &Manager{backend: backend, ttl: ttl, enabled: enabled && backend != nil}
}

// Enabled reports whether lookups can ever hit.
func (m *Manager) Enabled() bool { return m.enabled }

// Get returns the cached value for a key.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	if !m.enabled {
		return nil, false
	}
	value, ok := m.backend.Get(ctx, key)
	if ok {
		metrics.CacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}
	return value, ok
}

// Set stores a value under the manager's default TTL.
func (m *Manager) Set(ctx context.Context, key string, value []byte) {
	if !m.enabled {
		return
	}
	m.backend.Set(ctx, key, value, m.ttl)
}

// SetWithTTL stores a value with an explicit TTL.
func (m *Manager) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !m.enabled {
		return
	}
	m.backend.Set(ctx, key, value, ttl)
}

// Delete removes a key.
func (m *Manager) Delete(ctx context.Context, key string) {
	if !m.enabled {
		return
	}
	m.backend.Delete(ctx, key)
}
