package appstate

import "errors"

var (
	ErrNotFound      = errors.New("app state key not found")
	ErrMissingDevice = errors.New("request carries no device id")
)
