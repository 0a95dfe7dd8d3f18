package punch

import "errors"

var (
	ErrAlreadyPunchedIn     = errors.New("you are already punched in")
	ErrNotPunchedIn         = errors.New("you are not punched in")
	ErrOutsideAllowedRadius = errors.New("you are not within the allowed radius of your workplace")
	ErrSelfieRequired       = errors.New("please capture a selfie before punching")
	ErrViewNotMounted       = errors.New("punch view is not open")
)
