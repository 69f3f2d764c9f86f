package generation

import "errors"

var (
	ErrInvalidTemplate  = errors.New("invalid template")
	ErrProjectIDMissing = errors.New("project ID is required")
	ErrTaskIDMissing    = errors.New("task ID is required")
)
