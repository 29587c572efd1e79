// Package profile renders profile detail views in the configured
// Markdown formats and keeps per-user fetch counters.
package profile

import (
	"context"

	"go.uber.org/zap"

	domprofile "github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/format"
	"github.com/griddigger/griddigger/internal/repository/stats"
)

// profileFetcher loads profile details from the backend.
type profileFetcher interface {
	ProfileCard(ctx context.Context, id string) (*domprofile.Info, error)
	FullProfile(ctx context.Context, id string) (*domprofile.Info, error)
	ProductDetail(ctx context.Context, id string) (*domprofile.Product, error)
	AssetDetail(ctx context.Context, id string) (*domprofile.Asset, error)
}

// usageRecorder tracks per-user activity counters.
type usageRecorder interface {
	RecordUser(ctx context.Context, userID int64, userName string) error
	Increment(ctx context.Context, userID int64, stat stats.Stat) error
	UserStats(ctx context.Context, userID int64) (stats.Stats, error)
}

// Service loads and formats profile views.
type Service struct {
	repo    profileFetcher
	formats *format.Registry
	usage   usageRecorder
	logger  *zap.Logger
}

// New creates a profile service. usage may be nil when stats are disabled.
func New(repo profileFetcher, formats *format.Registry, usage usageRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, formats: formats, usage: usage, logger: logger}
}

// Card loads the compact card view for a profile and counts the fetch.
func (s *Service) Card(ctx context.Context, userID int64, id string) (format.Rendered, error) {
	info, err := s.repo.ProfileCard(ctx, id)
	if err != nil {
		return format.Rendered{}, err
	}
	s.record(ctx, userID, stats.StatFetch)
	return s.render("card", info)
}

// Expanded loads the full profile view and counts the expand.
func (s *Service) Expanded(ctx context.Context, userID int64, id string) (format.Rendered, error) {
	info, err := s.repo.FullProfile(ctx, id)
	if err != nil {
		return format.Rendered{}, err
	}
	s.record(ctx, userID, stats.StatExpand)
	return s.render("expanded", info)
}

// Compact renders the one-line listing entry for a profile.
func (s *Service) Compact(ctx context.Context, id string) (format.Rendered, error) {
	info, err := s.repo.ProfileCard(ctx, id)
	if err != nil {
		return format.Rendered{}, err
	}
	return s.render("compact", info)
}

// CustomFormat renders a profile with any registered formatter.
func (s *Service) CustomFormat(ctx context.Context, id, formatName string) (format.Rendered, error) {
	info, err := s.repo.FullProfile(ctx, id)
	if err != nil {
		return format.Rendered{}, err
	}
	return s.render(formatName, info)
}

// ProductDetail loads a single product by id.
func (s *Service) ProductDetail(ctx context.Context, id string) (*domprofile.Product, error) {
	return s.repo.ProductDetail(ctx, id)
}

// AssetDetail loads a single asset by id.
func (s *Service) AssetDetail(ctx context.Context, id string) (*domprofile.Asset, error) {
	return s.repo.AssetDetail(ctx, id)
}

// RecordUser upserts the user's display name in the stats store.
func (s *Service) RecordUser(ctx context.Context, userID int64, userName string) {
	if s.usage == nil || userID == 0 {
		return
	}
	if err := s.usage.RecordUser(ctx, userID, userName); err != nil {
		s.logger.Warn("record user", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// UserStats returns the user's activity counters.
func (s *Service) UserStats(ctx context.Context, userID int64) (stats.Stats, error) {
	if s.usage == nil {
		return stats.Stats{}, nil
	}
	return s.usage.UserStats(ctx, userID)
}

func (s *Service) render(name string, info *domprofile.Info) (format.Rendered, error) {
	f, err := s.formats.Get(name)
	if err != nil {
		return format.Rendered{}, err
	}
	return f.Format(info), nil
}

func (s *Service) record(ctx context.Context, userID int64, stat stats.Stat) {
	if s.usage == nil || userID == 0 {
		return
	}
	if err := s.usage.Increment(ctx, userID, stat); err != nil {
		s.logger.Warn("record stat", zap.Int64("user_id", userID),
			zap.String("stat", string(stat)), zap.Error(err))
	}
}
