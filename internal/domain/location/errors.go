package location

import "errors"

var (
	ErrPermissionDenied  = errors.New("location permission denied, enable location access to punch")
	ErrUnsupported       = errors.New("geolocation is not supported by this device")
	ErrTimeout           = errors.New("timed out while getting your location, please try again")
	ErrLocationNotReady  = errors.New("location is not available yet")
	ErrInvalidCoordinate = errors.New("coordinate is out of range")
	ErrGeocodeFailed     = errors.New("reverse geocoding failed")
)
