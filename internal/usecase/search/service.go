// Package search runs profile searches over the active selection set
// and shapes the result summaries shown to users.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
	"github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/repository/stats"
)

const (
	minTermLength = 2
	maxTermLength = 100

	// DisplayLimit caps how many results a single reply lists.
	DisplayLimit = 20
)

// profileSearcher runs compiled queries against the backend.
type profileSearcher interface {
	GetProfiles(ctx context.Context, set *filter.SelectionSet) []profile.Ref
	TotalProfileCount(ctx context.Context) int
}

// usageRecorder tracks per-user activity counters. Failures are
// logged, never surfaced.
type usageRecorder interface {
	Increment(ctx context.Context, userID int64, stat stats.Stat) error
}

// Service executes searches and builds summaries.
type Service struct {
	profiles profileSearcher
	usage    usageRecorder
	logger   *zap.Logger
}

// New creates a search service. usage may be nil when stats are disabled.
func New(profiles profileSearcher, usage usageRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{profiles: profiles, usage: usage, logger: logger}
}

// SearchProfiles resolves the selection set into a profile list and
// records the search against the user's counters.
func (s *Service) SearchProfiles(ctx context.Context, userID int64, set *filter.SelectionSet) []profile.Ref {
	refs := s.profiles.GetProfiles(ctx, set)

	if s.usage != nil && userID != 0 {
		if err := s.usage.Increment(ctx, userID, stats.StatSearch); err != nil {
			s.logger.Warn("record search stat", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return refs
}

// TotalProfileCount reports how many profiles the backend holds,
// zero when the backend is unreachable.
func (s *Service) TotalProfileCount(ctx context.Context) int {
	return s.profiles.TotalProfileCount(ctx)
}

// ValidateSearchTerm checks a free-text name search before it runs.
func ValidateSearchTerm(term string) error {
	cleaned := strings.TrimSpace(term)
	if len(cleaned) < minTermLength {
		return fmt.Errorf("search term must be at least %d characters: %w",
			minTermLength, domain.ErrInvalidValue)
	}
	if len(cleaned) > maxTermLength {
		return fmt.Errorf("search term must be at most %d characters: %w",
			maxTermLength, domain.ErrInvalidValue)
	}
	return nil
}

// Summary renders the result-count line shown above the listing.
// displayed is how many entries the reply actually lists.
func Summary(total, displayed int) string {
	switch {
	case total == 0:
		return "No profiles found matching your search criteria."
	case total <= displayed:
		if total == 1 {
			return "Found 1 profile."
		}
		return fmt.Sprintf("Found %d profiles.", total)
	default:
		return fmt.Sprintf("Found %d profiles, showing first %d.", total, displayed)
	}
}
