package carousel

import "errors"

// Loop configuration errors
var (
	ErrEmptyStrip      = errors.New("carousel strip has no items")
	ErrInvalidStep     = errors.New("step must be greater than 0")
	ErrInvalidInterval = errors.New("frame interval must be greater than 0")
)

// Loop operation errors
var (
	ErrAlreadyRunning = errors.New("carousel loop is already running")
	ErrNotRunning     = errors.New("carousel loop is not running")
)
