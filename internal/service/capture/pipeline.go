package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/generation"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/imaging"
)

// Settings controls how a captured frame becomes a still.
type Settings struct {
	JPEGQuality int
	// MaxDimension caps the longer side of the still in pixels; 0 keeps the camera resolution.
	MaxDimension int
}

// Pipeline walks one punch screen's camera through idle, camera-active, captured and submitted.
type Pipeline struct {
	mu       sync.Mutex
	state    capture.State
	camera   capture.Camera
	stream   capture.Stream
	selfie   *capture.Selfie
	gen      generation.Counter
	settings Settings
	now      func() time.Time
}

func NewPipeline(settings Settings, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if settings.JPEGQuality <= 0 {
		settings.JPEGQuality = imaging.DefaultJPEGQuality
	}
	return &Pipeline{
		state:    capture.StateIdle,
		settings: settings,
		now:      now,
	}
}

// Start opens a stream on camera. A denied camera leaves the pipeline idle.
func (p *Pipeline) Start(ctx context.Context, camera capture.Camera) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case capture.StateCameraActive:
		if p.stream != nil && p.stream.Active() {
			return nil
		}
	case capture.StateCaptured:
		return fmt.Errorf("%w: retake to reopen the camera", capture.ErrCameraNotActive)
	}

	p.stopStream()
	p.camera = camera

	stream, err := camera.Open(ctx)
	if err != nil {
		p.state = capture.StateIdle
		return err
	}
	p.stream = stream
	p.selfie = nil
	p.state = capture.StateCameraActive
	return nil
}

// Capture encodes the stream's current frame and stops the stream.
func (p *Pipeline) Capture(ctx context.Context) (capture.Selfie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != capture.StateCameraActive || p.stream == nil || !p.stream.Active() {
		return capture.Selfie{}, capture.ErrCameraNotActive
	}

	frame, err := p.stream.Frame(ctx)
	if err != nil {
		return capture.Selfie{}, err
	}

	surface, err := imaging.Rasterize(frame, p.settings.MaxDimension)
	if err != nil {
		return capture.Selfie{}, err
	}
	data, err := imaging.EncodeJPEG(surface, p.settings.JPEGQuality)
	if err != nil {
		return capture.Selfie{}, err
	}

	selfie := capture.Selfie{
		DataURL:    imaging.DataURL(imaging.MIMEJPEG, data),
		CapturedAt: p.now(),
		Width:      surface.Bounds().Dx(),
		Height:     surface.Bounds().Dy(),
	}
	p.selfie = &selfie
	p.gen.Next()
	p.stopStream()
	p.state = capture.StateCaptured
	return selfie, nil
}

// Retake discards the still and reopens the camera used by Start.
func (p *Pipeline) Retake(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.camera == nil {
		return capture.ErrCameraNotActive
	}

	p.selfie = nil
	p.gen.Next()
	p.stopStream()

	stream, err := p.camera.Open(ctx)
	if err != nil {
		p.state = capture.StateIdle
		return err
	}
	p.stream = stream
	p.state = capture.StateCameraActive
	return nil
}

// Payload decodes the captured still for upload. gen identifies this capture for MarkSubmitted.
func (p *Pipeline) Payload() (mime string, data []byte, gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != capture.StateCaptured || p.selfie == nil {
		return "", nil, 0, capture.ErrNothingCaptured
	}

	mime, data, err = imaging.DecodeDataURL(p.selfie.DataURL)
	if err != nil {
		return "", nil, 0, err
	}
	return mime, data, p.gen.Current(), nil
}

// MarkSubmitted clears the still if no capture or retake happened since gen was handed out.
func (p *Pipeline) MarkSubmitted(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.gen.IsCurrent(gen) || p.state != capture.StateCaptured {
		return false
	}
	p.selfie = nil
	p.state = capture.StateSubmitted
	return true
}

// Release stops any stream and forgets the still.
func (p *Pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopStream()
	p.selfie = nil
	p.gen.Next()
	p.state = capture.StateIdle
}

// Camera returns the camera the pipeline streams from, or nil before the first Start.
func (p *Pipeline) Camera() capture.Camera {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.camera
}

func (p *Pipeline) State() capture.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Selfie returns a copy of the captured still, or nil.
func (p *Pipeline) Selfie() *capture.Selfie {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selfie == nil {
		return nil
	}
	s := *p.selfie
	return &s
}

// StreamActive reports whether the pipeline holds a live stream.
func (p *Pipeline) StreamActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream != nil && p.stream.Active()
}

// stopStream must be called with mu held.
func (p *Pipeline) stopStream() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream = nil
	}
}
