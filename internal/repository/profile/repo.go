// Package profile routes profile lookups to the right query, executes
// them, and normalizes the response envelope. Its read paths never
// surface upstream failures: every recoverable error degrades to an
// empty result plus a log entry.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/cache"
	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
	domprofile "github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/graphql"
	"github.com/griddigger/griddigger/internal/query"
)

// executor is the consumer interface for the GraphQL client.
type executor interface {
	Execute(ctx context.Context, operation, q string, variables map[string]any) (*graphql.Envelope, error)
}

// catalogReader is the catalog surface this repository needs.
type catalogReader interface {
	Resolve(name string) (filter.Definition, bool)
	RootField() string
	OptionsQuery(name string) (string, bool)
}

// Repo implements the profile read model over the GraphQL endpoint.
type Repo struct {
	exec     executor
	compiler *query.Compiler
	catalog  catalogReader
	cache    *cache.Manager
	logger   *zap.Logger
}

// New creates a profile repository.
func New(exec executor, compiler *query.Compiler, cat catalogReader, c *cache.Manager, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{exec: exec, compiler: compiler, catalog: cat, cache: c, logger: logger}
}

// GetProfiles resolves the selection set to one of three queries and
// returns the matching profile refs in backend order. The only visible
// outcomes are a non-empty slice and an empty slice: zero matches and
// failed queries are indistinguishable to the caller on purpose.
func (r *Repo) GetProfiles(ctx context.Context, set *filter.SelectionSet) []domprofile.Ref {
	if set == nil || set.Len() == 0 {
		return r.allProfiles(ctx)
	}

	if term, ok := set.SingleNameSearch(); ok {
		if filter.IsBlank(term) {
			// A _contains: "" clause matches everything anyway; run the
			// cheap unfiltered query instead.
			return r.allProfiles(ctx)
		}
		return r.searchByTerm(ctx, term)
	}

	compiled, err := r.compiler.Compile(set.Resolved())
	if err != nil {
		if errors.Is(err, domain.ErrNoFilters) {
			r.logger.Warn("no valid filters in selection set, nothing to execute")
			return []domprofile.Ref{}
		}
		r.logger.Error("compile filters", zap.Error(err))
		return []domprofile.Ref{}
	}

	return r.refs(ctx, "filtered_profiles", compiled, nil)
}

// allProfiles runs the unfiltered query, bounded by the fixed limit.
func (r *Repo) allProfiles(ctx context.Context) []domprofile.Ref {
	return r.refs(ctx, "all_profiles", query.AllProfiles(r.catalog.RootField()), nil)
}

// searchByTerm runs the dedicated name-or-ticker search with the term
// bound as a variable, never interpolated into the query text.
func (r *Repo) searchByTerm(ctx context.Context, term string) []domprofile.Ref {
	return r.refs(ctx, "search_profiles", query.SearchByTerm(r.catalog.RootField()),
		map[string]any{"searchTerm": term})
}

// refs executes a query whose root collection is a list of profile refs,
// with a read-through cache keyed by operation and arguments.
func (r *Repo) refs(ctx context.Context, operation, q string, variables map[string]any) []domprofile.Ref {
	args := make([]string, 0, len(variables)+1)
	args = append(args, q)
	for _, v := range variables {
		if s, ok := v.(string); ok {
			args = append(args, s)
		}
	}
	key := cache.Key(operation, args...)

	if data, ok := r.cache.Get(ctx, key); ok {
		var cached []domprofile.Ref
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	env, err := r.exec.Execute(ctx, operation, q, variables)
	if err != nil {
		r.logger.Error("query failed", zap.String("operation", operation), zap.Error(err))
		return []domprofile.Ref{}
	}

	raw, ok := r.collection(env, operation, r.catalog.RootField())
	if !ok {
		return []domprofile.Ref{}
	}

	var refs []domprofile.Ref
	if err := json.Unmarshal(raw, &refs); err != nil {
		r.logger.Error("decode profile refs", zap.String("operation", operation), zap.Error(err))
		return []domprofile.Ref{}
	}
	if refs == nil {
		refs = []domprofile.Ref{}
	}

	if encoded, err := json.Marshal(refs); err == nil {
		r.cache.Set(ctx, key, encoded)
	}
	return refs
}

// TotalProfileCount returns how many profiles the endpoint holds,
// bounded by the fixed query limit. 0 on any failure.
func (r *Repo) TotalProfileCount(ctx context.Context) int {
	env, err := r.exec.Execute(ctx, "total_profile_count", query.TotalProfileCount(r.catalog.RootField()), nil)
	if err != nil {
		r.logger.Error("total profile count failed", zap.Error(err))
		return 0
	}
	raw, ok := r.collection(env, "total_profile_count", r.catalog.RootField())
	if !ok {
		return 0
	}
	var ids []json.RawMessage
	if err := json.Unmarshal(raw, &ids); err != nil {
		r.logger.Error("decode profile count", zap.Error(err))
		return 0
	}
	return len(ids)
}

// FilterOptions fetches the selectable options of a Multiple sub-filter.
// The root key of the response is the first token of the catalog fragment.
func (r *Repo) FilterOptions(ctx context.Context, filterName string) []filter.Option {
	fragment, ok := r.catalog.OptionsQuery(filterName)
	if !ok {
		r.logger.Warn("no options query for filter", zap.String("filter", filterName))
		return []filter.Option{}
	}

	key := cache.Key("filter_options", filterName)
	if data, hit := r.cache.Get(ctx, key); hit {
		var cached []filter.Option
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	env, err := r.exec.Execute(ctx, "filter_options", query.Options(fragment), nil)
	if err != nil {
		r.logger.Error("fetch filter options failed", zap.String("filter", filterName), zap.Error(err))
		return []filter.Option{}
	}

	rootKey := strings.Fields(fragment)[0]
	raw, ok := r.collection(env, "filter_options", rootKey)
	if !ok {
		return []filter.Option{}
	}

	var options []filter.Option
	if err := json.Unmarshal(raw, &options); err != nil {
		r.logger.Error("decode filter options", zap.String("filter", filterName), zap.Error(err))
		return []filter.Option{}
	}
	if options == nil {
		options = []filter.Option{}
	}

	if encoded, err := json.Marshal(options); err == nil {
		r.cache.Set(ctx, key, encoded)
	}
	return options
}

// collection extracts the named collection from the envelope. Missing
// data, GraphQL errors, a missing key, or an explicit null all count as
// "no results" and are logged, never propagated.
func (r *Repo) collection(env *graphql.Envelope, operation, key string) (json.RawMessage, bool) {
	if env.HasErrors() {
		r.logger.Error("graphql errors in response",
			zap.String("operation", operation),
			zap.Strings("errors", env.ErrorMessages()))
		return nil, false
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		r.logger.Error("response missing data", zap.String("operation", operation))
		return nil, false
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		r.logger.Error("decode response data", zap.String("operation", operation), zap.Error(err))
		return nil, false
	}

	raw, ok := data[key]
	if !ok {
		r.logger.Error("response data missing root collection",
			zap.String("operation", operation), zap.String("key", key))
		return nil, false
	}
	if string(raw) == "null" {
		r.logger.Warn("root collection is null, treating as empty",
			zap.String("operation", operation), zap.String("key", key))
		return nil, false
	}
	return raw, true
}
