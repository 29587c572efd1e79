// Package domain holds the shared domain errors of griddigger.
package domain

import "errors"

var (
	// ErrNoFilters signals that a selection set resolved to nothing executable.
	// Callers decide what to run instead; the compiler never falls back on its own.
	ErrNoFilters = errors.New("no resolvable filters")
	// ErrUnknownFilter signals a filter name missing from the catalog.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrNotFound signals a missing profile, product, or asset.
	ErrNotFound = errors.New("not found")
	// ErrUpstream signals a GraphQL-level error in the response envelope.
	ErrUpstream = errors.New("upstream query error")
	// ErrTransport signals an HTTP-level failure talking to the endpoint.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidValue signals a filter value that failed validation.
	ErrInvalidValue = errors.New("invalid filter value")
)
