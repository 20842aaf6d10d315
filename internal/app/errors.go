package service

import "errors"

// Sentinel kinds for recommendation errors.
var (
	// ErrNoGames means the window held no finished games. A valid outcome,
	// distinct from ErrUnavailable.
	ErrNoGames = errors.New("no games found")

	// ErrUnavailable means the data source could not supply games or
	// reference sets. The service does not retry; retry policy belongs to
	// the collaborator.
	ErrUnavailable = errors.New("game data unavailable")

	// ErrInvalidDays marks a non-positive lookback window.
	ErrInvalidDays = errors.New("days must be a positive integer")
)
