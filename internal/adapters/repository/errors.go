package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrOpen    = errors.New("open game cache failed")
	ErrMigrate = errors.New("migrate game cache failed")
)
