package subscription

import "errors"

var (
	ErrUserIDRequired = errors.New("user ID is required")
	ErrInvalidPlan    = errors.New("invalid plan")
)
