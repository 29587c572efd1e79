package sdk

import "github.com/griddigger/griddigger/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrNoFilters     = domain.ErrNoFilters
	ErrUnknownFilter = domain.ErrUnknownFilter
	ErrInvalidValue  = domain.ErrInvalidValue
	ErrUpstream      = domain.ErrUpstream
	ErrTransport     = domain.ErrTransport
)
