package provider

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrProvider      = errors.New("upstream provider request failed")
	ErrMissingAPIKey = errors.New("provider api key not configured")
)
