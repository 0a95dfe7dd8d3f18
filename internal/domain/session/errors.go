package session

import "errors"

// Session domain errors
var (
	// Credential errors
	ErrMissingCredential   = errors.New("no session credential stored")
	ErrMalformedCredential = errors.New("session credential is malformed")
	ErrCredentialExpired   = errors.New("session credential has expired")

	// Backend errors
	ErrReauthenticationRequired = errors.New("your session is no longer valid, please log in again")
	ErrInvalidLogin             = errors.New("invalid email or password")
)
