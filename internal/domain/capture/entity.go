package capture

import (
	"context"
	"image"
	"time"
)

type State string

const (
	StateIdle         State = "idle"
	StateCameraActive State = "camera-active"
	StateCaptured     State = "captured"
	StateSubmitted    State = "submitted"
)

// Selfie is an encoded still taken from the camera stream.
type Selfie struct {
	DataURL    string    `json:"dataUrl"`
	CapturedAt time.Time `json:"capturedAt"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}

// Camera opens front-facing video streams.
type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live camera feed. Stop releases every track and is idempotent.
type Stream interface {
	Frame(ctx context.Context) (image.Image, error)
	Stop()
	Active() bool
}
