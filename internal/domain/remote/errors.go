package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
)

// GenericFailureMessage is shown when the backend gives no usable message.
const GenericFailureMessage = "Something went wrong. Please try again."

var (
	ErrBackendUnavailable = errors.New("the attendance service could not be reached")
	ErrBackendRejected    = errors.New("the attendance service rejected the request")
	ErrUnexpectedResponse = errors.New("the attendance service sent an unexpected response")
)

// APIError is a non-2xx answer from the attendance backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error [%d]: %s", e.StatusCode, e.UserMessage())
}

// UserMessage is the backend-provided message or the generic fallback.
func (e *APIError) UserMessage() string {
	if e.Message == "" {
		return GenericFailureMessage
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return session.ErrReauthenticationRequired
	}
	return ErrBackendRejected
}
