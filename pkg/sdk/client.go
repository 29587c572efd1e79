package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/cache"
	"github.com/griddigger/griddigger/internal/catalog"
	"github.com/griddigger/griddigger/internal/domain/filter"
	domprofile "github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/format"
	"github.com/griddigger/griddigger/internal/graphql"
	"github.com/griddigger/griddigger/internal/query"
	profilerepo "github.com/griddigger/griddigger/internal/repository/profile"
	"github.com/griddigger/griddigger/internal/repository/stats"
	filtersuc "github.com/griddigger/griddigger/internal/usecase/filters"
	profileuc "github.com/griddigger/griddigger/internal/usecase/profile"
	searchuc "github.com/griddigger/griddigger/internal/usecase/search"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

// Selection aliases the domain selection so callers never import internal.
type Selection = filter.Selection

// SelectionSet aliases the domain selection set.
type SelectionSet = filter.SelectionSet

// ProfileRef aliases the search-hit record.
type ProfileRef = domprofile.Ref

// Select builds one filter selection.
func Select(name, value string) Selection {
	return filter.NewSelection(name, value)
}

// NewSelectionSet builds an ordered selection set.
func NewSelectionSet(selections ...Selection) *SelectionSet {
	return filter.NewSelectionSet(selections...)
}

// Client is the griddigger SDK entry point.
type Client struct {
	search     *searchuc.Service
	profiles   *profileuc.Service
	filters    *filtersuc.Service
	redisCache *cache.Redis
	statsStore *stats.Store
}

// New creates a client wired against the configured GraphQL endpoint.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:  defaultTimeout,
		cacheTTL: defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("griddigger: endpoint required (use WithEndpoint)")
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("griddigger: %w", err)
	}

	c := &Client{}

	var backend cache.Cache
	if cfg.cacheEnabled {
		if len(cfg.redisAddrs) > 0 {
			redisCache, err := cache.NewRedis(cache.RedisConfig{
				Addrs:    cfg.redisAddrs,
				Password: cfg.redisPass,
				Logger:   logger,
			})
			if err != nil {
				return nil, fmt.Errorf("griddigger: cache: %w", err)
			}
			c.redisCache = redisCache
			backend = redisCache
		} else {
			backend = cache.NewMemory()
		}
	}
	queryCache := cache.NewManager(backend, cfg.cacheTTL, cfg.cacheEnabled)

	exec := graphql.NewClient(graphql.Config{
		Endpoint:   cfg.endpoint,
		Token:      cfg.token,
		Timeout:    cfg.timeout,
		MaxRetries: cfg.maxRetries,
		Logger:     logger,
	})
	compiler := query.NewCompiler(cat, logger)
	repo := profilerepo.New(exec, compiler, cat, queryCache, logger)

	if len(cfg.statsAddrs) > 0 {
		store, err := stats.NewStore(stats.Config{
			Addrs:    cfg.statsAddrs,
			Password: cfg.statsPass,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("griddigger: stats: %w", err)
		}
		c.statsStore = store
		c.search = searchuc.New(repo, store, logger)
		c.profiles = profileuc.New(repo, format.NewRegistry(), store, logger)
	} else {
		c.search = searchuc.New(repo, nil, logger)
		c.profiles = profileuc.New(repo, format.NewRegistry(), nil, logger)
	}
	c.filters = filtersuc.New(cat, repo, logger)

	return c, nil
}

// Search returns the search service.
func (c *Client) Search() *searchuc.Service { return c.search }

// Profiles returns the profile detail service.
func (c *Client) Profiles() *profileuc.Service { return c.profiles }

// Filters returns the filter-menu service.
func (c *Client) Filters() *filtersuc.Service { return c.filters }

// SearchProfiles resolves a selection set into matching profile refs.
// An empty or nil set returns all profiles, bounded by the query limit.
func (c *Client) SearchProfiles(ctx context.Context, set *SelectionSet) []ProfileRef {
	return c.search.SearchProfiles(ctx, 0, set)
}

// Close releases any Redis connections the client holds.
func (c *Client) Close() {
	if c.redisCache != nil {
		c.redisCache.Close()
	}
	if c.statsStore != nil {
		c.statsStore.Close()
	}
}
