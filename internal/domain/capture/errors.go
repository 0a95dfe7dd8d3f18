package capture

import "errors"

// Capture domain errors
var (
	ErrCameraPermissionDenied = errors.New("camera permission was denied, allow camera access and try again")
	ErrCameraNotActive        = errors.New("camera is not active")
	ErrNothingCaptured        = errors.New("no selfie has been captured")
	ErrInvalidImageData       = errors.New("captured image data is not a valid JPEG or PNG image")
	ErrEmptyFrame             = errors.New("camera returned an empty frame")
)
