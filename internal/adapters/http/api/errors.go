package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("days must be an integer within the lookback bound")
)
