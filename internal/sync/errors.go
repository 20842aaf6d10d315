package sync

import "errors"

// Sentinel kinds for sync errors.
var (
	ErrSync          = errors.New("sync run failed")
	ErrInvalidWindow = errors.New("sync window must cover at least one day")
)
