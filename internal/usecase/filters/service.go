// Package filters serves the filter catalog surface: sub-filter menus
// per category, option lists, and filter value validation.
package filters

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
)

// maxValueLength bounds free-text filter input.
const maxValueLength = 100

// catalogReader is the catalog surface this service needs.
type catalogReader interface {
	SubFiltersFor(category filter.Category) []filter.SubFilter
	KindOf(queryKey string) (filter.Kind, bool)
}

// optionsFetcher fetches selectable options for Multiple sub-filters.
type optionsFetcher interface {
	FilterOptions(ctx context.Context, filterName string) []filter.Option
}

// Service answers filter-menu queries.
type Service struct {
	catalog catalogReader
	repo    optionsFetcher
	logger  *zap.Logger
}

// New creates a filters service.
func New(cat catalogReader, repo optionsFetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: cat, repo: repo, logger: logger}
}

// SubFilters returns the ordered sub-filter menu for a category.
// Unknown categories yield an empty list.
func (s *Service) SubFilters(category filter.Category) []filter.SubFilter {
	return s.catalog.SubFiltersFor(category)
}

// Options returns the selectable values of a Multiple sub-filter in
// backend order, empty on any failure.
func (s *Service) Options(ctx context.Context, filterName string) []filter.Option {
	return s.repo.FilterOptions(ctx, filterName)
}

// ValidateValue checks a filter value before it joins a selection set:
// searchable filters need non-blank text within the length bound,
// option filters need a non-empty id.
func (s *Service) ValidateValue(filterName, value string) error {
	kind, ok := s.catalog.KindOf(filterName)
	if !ok {
		return fmt.Errorf("filter %q: %w", filterName, domain.ErrUnknownFilter)
	}

	switch kind {
	case filter.Searchable:
		cleaned := strings.TrimSpace(value)
		if cleaned == "" {
			return fmt.Errorf("filter %q needs a search term: %w", filterName, domain.ErrInvalidValue)
		}
		if len(cleaned) > maxValueLength {
			return fmt.Errorf("filter %q term exceeds %d characters: %w",
				filterName, maxValueLength, domain.ErrInvalidValue)
		}
	case filter.Multiple:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("filter %q needs an option id: %w", filterName, domain.ErrInvalidValue)
		}
	}
	return nil
}
