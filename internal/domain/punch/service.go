package punch

import (
	"context"
	"image"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
)

type PunchService interface {
	// View mounts the punch screen for the device, loading the reference set once
	View(ctx context.Context) (View, error)

	ReportLocation(ctx context.Context, locator location.Locator) (View, error)

	StartCamera(ctx context.Context, granted bool) (View, error)
	Capture(ctx context.Context, frame image.Image) (View, error)
	CaptureDataURL(ctx context.Context, dataURL string) (View, error)
	Retake(ctx context.Context) (View, error)

	PunchIn(ctx context.Context) (Result, error)
	PunchOut(ctx context.Context) (Result, error)

	// Unmount stops the camera and forgets the view state
	Unmount(ctx context.Context) error
}
