package salary

import "errors"

var (
	ErrInvalidYear = errors.New("year must be between 2000 and 2100")
)
