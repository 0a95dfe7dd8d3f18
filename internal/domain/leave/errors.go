package leave

import "errors"

var (
	ErrInvalidDateRange = errors.New("leave end date must not be before the start date")
)
