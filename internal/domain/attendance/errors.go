package attendance

import "errors"

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
