// Package chi exposes the JSON HTTP API: profile search, profile
// detail views, filter menus and per-user stats.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/domain"
	domfilter "github.com/griddigger/griddigger/internal/domain/filter"
	filtersuc "github.com/griddigger/griddigger/internal/usecase/filters"
	profileuc "github.com/griddigger/griddigger/internal/usecase/profile"
	searchuc "github.com/griddigger/griddigger/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeUpstreamError = "upstream_error"
	codeInternalError = "internal_error"
)

// Server handles the HTTP API.
type Server struct {
	search        *searchuc.Service
	profiles      *profileuc.Service
	filters       *filtersuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	profiles *profileuc.Service,
	filters *filtersuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		profiles: profiles,
		filters:  filters,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrUnknownFilter, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidValue, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrUpstream, http.StatusBadGateway, codeUpstreamError),
		sentinelHandler(domain.ErrTransport, http.StatusBadGateway, codeUpstreamError),
	}
	return s
}

// Routes mounts all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.SearchProfiles)
		r.Get("/profiles/count", s.ProfileCount)
		r.Get("/profiles/{id}", s.ProfileCard)
		r.Get("/profiles/{id}/full", s.ProfileExpanded)
		r.Get("/products/{id}", s.ProductDetail)
		r.Get("/assets/{id}", s.AssetDetail)
		r.Get("/filters/{category}", s.SubFilters)
		r.Get("/filters/{category}/{name}/options", s.FilterOptions)
		r.Get("/users/{id}/stats", s.UserStats)
	})
}

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	UserID     int64            `json:"user_id,omitempty"`
	DeepSearch bool             `json:"deep_search,omitempty"`
	Filters    []selectedFilter `json:"filters"`
}

type selectedFilter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// searchResponse is the POST /v1/search reply.
type searchResponse struct {
	Summary  string        `json:"summary"`
	Total    int           `json:"total"`
	Profiles []profileItem `json:"profiles"`
}

type profileItem struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// SearchProfiles handles POST /v1/search.
func (s *Server) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	set := domfilter.NewSelectionSet()
	set.SetDeepSearch(req.DeepSearch)
	for _, f := range req.Filters {
		if err := s.filters.ValidateValue(f.Name, f.Value); err != nil {
			s.handleDomainError(w, err)
			return
		}
		set.Add(domfilter.NewSelection(f.Name, f.Value))
	}

	refs := s.search.SearchProfiles(r.Context(), req.UserID, set)

	displayed := len(refs)
	if displayed > searchuc.DisplayLimit {
		displayed = searchuc.DisplayLimit
	}

	items := make([]profileItem, displayed)
	for i, ref := range refs[:displayed] {
		items[i] = profileItem{ID: ref.ID, Slug: ref.Slug}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Summary:  searchuc.Summary(len(refs), displayed),
		Total:    len(refs),
		Profiles: items,
	})
}

// ProfileCount handles GET /v1/profiles/count.
func (s *Server) ProfileCount(w http.ResponseWriter, r *http.Request) {
	count := s.search.TotalProfileCount(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"total": count})
}

// ProfileCard handles GET /v1/profiles/{id}.
func (s *Server) ProfileCard(w http.ResponseWriter, r *http.Request) {
	rendered, err := s.profiles.Card(r.Context(), userIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// ProfileExpanded handles GET /v1/profiles/{id}/full. The optional
// format query picks any registered formatter.
func (s *Server) ProfileExpanded(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if name := r.URL.Query().Get("format"); name != "" && name != "expanded" {
		rendered, err := s.profiles.CustomFormat(r.Context(), id, name)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rendered)
		return
	}

	rendered, err := s.profiles.Expanded(r.Context(), userIDParam(r), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// ProductDetail handles GET /v1/products/{id}.
func (s *Server) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := s.profiles.ProductDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// AssetDetail handles GET /v1/assets/{id}.
func (s *Server) AssetDetail(w http.ResponseWriter, r *http.Request) {
	asset, err := s.profiles.AssetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// subFilterItem is one entry of a filter menu.
type subFilterItem struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
}

// SubFilters handles GET /v1/filters/{category}.
func (s *Server) SubFilters(w http.ResponseWriter, r *http.Request) {
	category := domfilter.Category(chi.URLParam(r, "category"))

	subs := s.filters.SubFilters(category)
	if len(subs) == 0 {
		writeError(w, http.StatusNotFound, codeNotFound, "unknown filter category")
		return
	}

	items := make([]subFilterItem, len(subs))
	for i, sub := range subs {
		items[i] = subFilterItem{Label: sub.Label, Name: sub.QueryKey, Kind: string(sub.Kind)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"filters": items})
}

// FilterOptions handles GET /v1/filters/{category}/{name}/options.
func (s *Server) FilterOptions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	options := s.filters.Options(r.Context(), name)
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

// userStatsResponse is the GET /v1/users/{id}/stats reply.
type userStatsResponse struct {
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	FetchCount  int64  `json:"fetch_count"`
	ExpandCount int64  `json:"expand_count"`
	SearchCount int64  `json:"search_count"`
}

// UserStats handles GET /v1/users/{id}/stats.
func (s *Server) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user id must be an integer")
		return
	}

	stats, err := s.profiles.UserStats(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userStatsResponse{
		UserID:      userID,
		UserName:    stats.UserName,
		FetchCount:  stats.FetchCount,
		ExpandCount: stats.ExpandCount,
		SearchCount: stats.SearchCount,
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func userIDParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrUnknownFilter,
		domain.ErrInvalidValue,
		domain.ErrNoFilters,
		domain.ErrUpstream,
		domain.ErrTransport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
