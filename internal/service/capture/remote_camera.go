package capture

import (
	"context"
	"image"
	"sync"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
)

// RemoteCamera is the browser's camera as seen from the server: the permission
// outcome the browser reported and the frames it uploads.
type RemoteCamera struct {
	mu      sync.Mutex
	granted bool
	current *RemoteStream
}

func NewRemoteCamera(granted bool) *RemoteCamera {
	return &RemoteCamera{granted: granted}
}

func (c *RemoteCamera) Open(ctx context.Context) (capture.Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.granted {
		return nil, capture.ErrCameraPermissionDenied
	}
	c.current = &RemoteStream{active: true}
	return c.current, nil
}

// Deliver hands an uploaded frame to the open stream.
func (c *RemoteCamera) Deliver(frame image.Image) error {
	c.mu.Lock()
	stream := c.current
	c.mu.Unlock()

	if stream == nil {
		return capture.ErrCameraNotActive
	}
	return stream.deliver(frame)
}

type RemoteStream struct {
	mu     sync.Mutex
	frame  image.Image
	active bool
}

func (s *RemoteStream) deliver(frame image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return capture.ErrCameraNotActive
	}
	s.frame = frame
	return nil
}

func (s *RemoteStream) Frame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, capture.ErrCameraNotActive
	}
	if s.frame == nil {
		return nil, capture.ErrEmptyFrame
	}
	return s.frame, nil
}

func (s *RemoteStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.frame = nil
}

func (s *RemoteStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
