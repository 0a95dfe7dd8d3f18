package punch

import (
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
)

// View is everything the punch screen renders.
type View struct {
	PrimaryAction       string     `json:"primaryAction"`
	IsPunchedIn         bool       `json:"isPunchedIn"`
	PunchInTime         *time.Time `json:"punchInTime,omitempty"`
	PunchInLocationName string     `json:"punchInLocationName,omitempty"`

	CaptureState capture.State `json:"captureState"`
	CapturedAt   *time.Time    `json:"capturedAt,omitempty"`
	Selfie       string        `json:"selfie,omitempty"`

	Coordinate         *location.Coordinate         `json:"coordinate,omitempty"`
	LocationName       string                       `json:"locationName,omitempty"`
	LocationReady      bool                         `json:"locationReady"`
	WithinGeofence     bool                         `json:"withinGeofence"`
	ReferenceLocations []location.ReferenceLocation `json:"referenceLocations"`
	FallbackLocations  bool                         `json:"fallbackLocations"`

	CanSubmit bool   `json:"canSubmit"`
	Alert     string `json:"alert,omitempty"`
}

type CameraRequest struct {
	Granted bool `json:"granted"`
}

type CaptureRequest struct {
	DataURL string `json:"dataUrl"`
}

// Result is returned after a punch was acknowledged.
type Result struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	View    View   `json:"view"`
}
