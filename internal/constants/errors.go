package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'vra login --server <url>' or set VRA_SERVER")
	ErrNotAuthenticated     = errors.New("not authenticated, run 'vra login' first")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
)

// Command validation errors.
var (
	ErrResourceIDRequired    = errors.New("resource ID is required")
	ErrRequestIDRequired     = errors.New("request ID is required")
	ErrCatalogItemIDRequired = errors.New("catalog item ID is required")
)
