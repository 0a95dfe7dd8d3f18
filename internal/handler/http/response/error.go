package response

import (
	"errors"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/salary"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

// ReauthenticationMessage is shown when the backend refused the stored credential.
const ReauthenticationMessage = "Your session has expired. Please log in again."

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, session.ErrInvalidLogin):
		Unauthorized(w, session.ErrInvalidLogin.Error())
	case errors.Is(err, session.ErrReauthenticationRequired):
		SessionRequired(w, ReauthenticationMessage)
	case errors.Is(err, session.ErrMissingCredential),
		errors.Is(err, session.ErrMalformedCredential),
		errors.Is(err, session.ErrCredentialExpired):
		SessionRequired(w, "Please log in to continue")
	case errors.Is(err, appstate.ErrMissingDevice):
		BadRequest(w, "Device cookie missing", nil)

	// Permission errors
	case errors.Is(err, location.ErrPermissionDenied),
		errors.Is(err, capture.ErrCameraPermissionDenied):
		Forbidden(w, err.Error())

	// Location errors
	case errors.Is(err, location.ErrUnsupported),
		errors.Is(err, location.ErrTimeout),
		errors.Is(err, location.ErrInvalidCoordinate),
		errors.Is(err, location.ErrLocationNotReady):
		UnprocessableEntity(w, rootMessage(err, location.ErrUnsupported, location.ErrTimeout, location.ErrInvalidCoordinate, location.ErrLocationNotReady))

	// Capture errors
	case errors.Is(err, capture.ErrInvalidImageData):
		UnprocessableEntity(w, capture.ErrInvalidImageData.Error())
	case errors.Is(err, capture.ErrCameraNotActive),
		errors.Is(err, capture.ErrNothingCaptured),
		errors.Is(err, capture.ErrEmptyFrame):
		Conflict(w, rootMessage(err, capture.ErrCameraNotActive, capture.ErrNothingCaptured, capture.ErrEmptyFrame))

	// Punch errors
	case errors.Is(err, punch.ErrAlreadyPunchedIn):
		Conflict(w, punch.ErrAlreadyPunchedIn.Error())
	case errors.Is(err, punch.ErrNotPunchedIn):
		Conflict(w, punch.ErrNotPunchedIn.Error())
	case errors.Is(err, punch.ErrOutsideAllowedRadius):
		UnprocessableEntity(w, punch.ErrOutsideAllowedRadius.Error())
	case errors.Is(err, punch.ErrSelfieRequired):
		UnprocessableEntity(w, punch.ErrSelfieRequired.Error())

	// Viewer errors
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, attendance.ErrInvalidMonth.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, leave.ErrInvalidDateRange.Error(), nil)
	case errors.Is(err, salary.ErrInvalidYear):
		BadRequest(w, salary.ErrInvalidYear.Error(), nil)
	case errors.Is(err, profile.ErrPaymentDetailsNotFound):
		NotFound(w, "Payment details not found")

	// Backend errors
	case errors.Is(err, remote.ErrBackendRejected):
		backendRejected(w, err)
	case errors.Is(err, remote.ErrBackendUnavailable),
		errors.Is(err, remote.ErrUnexpectedResponse):
		BadGateway(w, remote.GenericFailureMessage)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// backendRejected passes the backend's own client errors through and hides its server errors.
func backendRejected(w http.ResponseWriter, err error) {
	var apiErr *remote.APIError
	if !errors.As(err, &apiErr) {
		BadGateway(w, remote.GenericFailureMessage)
		return
	}
	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		NotFound(w, apiErr.UserMessage())
	case apiErr.StatusCode == http.StatusConflict:
		Conflict(w, apiErr.UserMessage())
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		BadRequest(w, apiErr.UserMessage(), nil)
	default:
		BadGateway(w, apiErr.UserMessage())
	}
}

// rootMessage returns the text of whichever sentinel err wraps.
func rootMessage(err error, sentinels ...error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
