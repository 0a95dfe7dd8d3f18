package profile

import "errors"

var (
	ErrPaymentDetailsNotFound = errors.New("payment details not found")
)
