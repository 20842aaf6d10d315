package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrInvalidConfig marks a negative weight or threshold. It is raised at
	// construction time only; Score never fails.
	ErrInvalidConfig = errors.New("invalid scoring config")
)
