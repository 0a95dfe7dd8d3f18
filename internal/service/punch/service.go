package punch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/imaging"
	capturesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/capture"
)

// Policy decides what a punch-out has to prove.
type Policy struct {
	OutRequiresSelfie   bool
	OutRequiresGeofence bool
}

type PunchServiceImpl struct {
	punch.PunchRepository
	store     appstate.Store
	locations location.LocationService
	policy    Policy
	settings  capturesvc.Settings
	now       func() time.Time
	views     *viewRegistry
}

func NewPunchService(
	punchRepository punch.PunchRepository,
	store appstate.Store,
	locations location.LocationService,
	policy Policy,
	captureSettings capturesvc.Settings,
) *PunchServiceImpl {
	return &PunchServiceImpl{
		PunchRepository: punchRepository,
		store:           store,
		locations:       locations,
		policy:          policy,
		settings:        captureSettings,
		now:             time.Now,
		views:           newViewRegistry(),
	}
}

func (s *PunchServiceImpl) view(ctx context.Context) (*viewState, error) {
	deviceID, ok := device.FromContext(ctx)
	if !ok {
		return nil, appstate.ErrMissingDevice
	}
	return s.views.get(deviceID, s.now(), func() *viewState {
		return &viewState{pipeline: capturesvc.NewPipeline(s.settings, s.now)}
	}), nil
}

// mounted returns the device's view, loading the reference set on first use.
func (s *PunchServiceImpl) mounted(ctx context.Context) (*viewState, error) {
	vs, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	vs.mu.Lock()
	loaded := vs.refsLoaded
	vs.mu.Unlock()
	if loaded {
		return vs, nil
	}

	refs := s.locations.ReferenceSet(ctx)
	vs.mu.Lock()
	if !vs.refsLoaded {
		vs.refs = refs
		vs.refsLoaded = true
	}
	vs.mu.Unlock()
	return vs, nil
}

func (s *PunchServiceImpl) render(ctx context.Context, vs *viewState) (punch.View, error) {
	record, err := s.store.PunchRecord(ctx)
	if err != nil {
		return punch.View{}, err
	}

	vs.mu.Lock()
	defer vs.mu.Unlock()

	v := punch.View{
		PrimaryAction:       punch.LabelPunchIn,
		IsPunchedIn:         record.IsPunchedIn,
		PunchInTime:         record.PunchInTime,
		PunchInLocationName: record.PunchInLocationName,
		CaptureState:        vs.pipeline.State(),
		LocationName:        vs.locationName,
		LocationReady:       vs.coordinate != nil,
		ReferenceLocations:  vs.refs.Locations,
		FallbackLocations:   vs.refs.Fallback,
		Alert:               vs.alert,
	}
	if record.IsPunchedIn {
		v.PrimaryAction = punch.LabelPunchOut
	}
	if vs.coordinate != nil {
		c := *vs.coordinate
		v.Coordinate = &c
	}
	if selfie := vs.pipeline.Selfie(); selfie != nil {
		at := selfie.CapturedAt
		v.CapturedAt = &at
		v.Selfie = selfie.DataURL
	}
	v.WithinGeofence = s.locations.WithinGeofence(vs.coordinate, vs.refs)

	hasSelfie := v.CaptureState == capture.StateCaptured
	if record.IsPunchedIn {
		v.CanSubmit = v.LocationReady &&
			(!s.policy.OutRequiresGeofence || v.WithinGeofence) &&
			(!s.policy.OutRequiresSelfie || hasSelfie)
	} else {
		v.CanSubmit = v.LocationReady && v.WithinGeofence && hasSelfie
	}
	return v, nil
}

func (s *PunchServiceImpl) setAlert(vs *viewState, err error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if err == nil {
		vs.alert = ""
		return
	}
	vs.alert = alertText(err)
}

func alertText(err error) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// View implements punch.PunchService.
func (s *PunchServiceImpl) View(ctx context.Context) (punch.View, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.View{}, err
	}
	return s.render(ctx, vs)
}

// ReportLocation implements punch.PunchService.
func (s *PunchServiceImpl) ReportLocation(ctx context.Context, locator location.Locator) (punch.View, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.View{}, err
	}

	gen := vs.locGen.Next()
	fix, err := s.locations.Locate(ctx, locator)
	if err != nil {
		vs.mu.Lock()
		if vs.locGen.IsCurrent(gen) {
			vs.coordinate = nil
			vs.locationName = ""
			vs.alert = alertText(err)
		}
		vs.mu.Unlock()
		return punch.View{}, err
	}

	vs.mu.Lock()
	if !vs.locGen.IsCurrent(gen) {
		vs.mu.Unlock()
		return s.render(ctx, vs)
	}
	c := fix.Coordinate
	vs.coordinate = &c
	vs.locationName = ""
	vs.alert = ""
	vs.mu.Unlock()

	name := s.locations.PlaceName(ctx, c)

	vs.mu.Lock()
	if vs.locGen.IsCurrent(gen) {
		vs.locationName = name
	} else {
		slog.Debug("Discarding stale place name", "generation", gen)
	}
	vs.mu.Unlock()

	return s.render(ctx, vs)
}

// StartCamera implements punch.PunchService.
func (s *PunchServiceImpl) StartCamera(ctx context.Context, granted bool) (punch.View, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.View{}, err
	}

	if err := vs.pipeline.Start(ctx, capturesvc.NewRemoteCamera(granted)); err != nil {
		s.setAlert(vs, err)
		return punch.View{}, err
	}
	s.setAlert(vs, nil)
	return s.render(ctx, vs)
}

// Capture implements punch.PunchService.
func (s *PunchServiceImpl) Capture(ctx context.Context, frame image.Image) (punch.View, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.View{}, err
	}

	// Frames go to the camera the pipeline is streaming from
	camera, ok := vs.pipeline.Camera().(*capturesvc.RemoteCamera)
	if !ok {
		return punch.View{}, capture.ErrCameraNotActive
	}

	if err := camera.Deliver(frame); err != nil {
		return punch.View{}, err
	}
	if _, err := vs.pipeline.Capture(ctx); err != nil {
		s.setAlert(vs, err)
		return punch.View{}, err
	}
	s.setAlert(vs, nil)
	return s.render(ctx, vs)
}

// CaptureDataURL implements punch.PunchService.
func (s *PunchServiceImpl) CaptureDataURL(ctx context.Context, dataURL string) (punch.View, error) {
	_, data, err := imaging.DecodeDataURL(dataURL)
	if err != nil {
		return punch.View{}, err
	}
	frame, err := imaging.DecodeFrame(bytes.NewReader(data))
	if err != nil {
		return punch.View{}, err
	}
	return s.Capture(ctx, frame)
}

// Retake implements punch.PunchService.
func (s *PunchServiceImpl) Retake(ctx context.Context) (punch.View, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.View{}, err
	}
	if err := vs.pipeline.Retake(ctx); err != nil {
		s.setAlert(vs, err)
		return punch.View{}, err
	}
	s.setAlert(vs, nil)
	return s.render(ctx, vs)
}

// PunchIn implements punch.PunchService.
func (s *PunchServiceImpl) PunchIn(ctx context.Context) (punch.Result, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.Result{}, err
	}

	record, err := s.store.PunchRecord(ctx)
	if err != nil {
		return punch.Result{}, err
	}
	if record.IsPunchedIn {
		return punch.Result{}, punch.ErrAlreadyPunchedIn
	}

	coordinate, locationName, refs := vs.snapshot()
	if coordinate == nil {
		return punch.Result{}, location.ErrLocationNotReady
	}
	if !s.locations.WithinGeofence(coordinate, refs) {
		return punch.Result{}, punch.ErrOutsideAllowedRadius
	}

	mime, data, gen, err := vs.pipeline.Payload()
	if err != nil {
		if errors.Is(err, capture.ErrNothingCaptured) {
			return punch.Result{}, punch.ErrSelfieRequired
		}
		return punch.Result{}, err
	}

	submission, err := s.submission(ctx, punch.ActionIn, *coordinate, locationName)
	if err != nil {
		return punch.Result{}, err
	}
	submission.Image = data
	submission.ImageMIME = mime

	ack, err := s.PunchRepository.PunchIn(ctx, submission)
	if err != nil {
		s.setAlert(vs, err)
		return punch.Result{}, fmt.Errorf("failed to punch in: %w", err)
	}

	punchedAt := submission.Timestamp
	if ack.Timestamp != nil {
		punchedAt = *ack.Timestamp
	}
	if err := s.store.SetPunchRecord(ctx, appstate.PunchRecord{
		IsPunchedIn:         true,
		PunchInID:           ack.ID,
		PunchInTime:         &punchedAt,
		PunchInLocationName: locationName,
	}); err != nil {
		return punch.Result{}, err
	}

	vs.pipeline.MarkSubmitted(gen)
	s.setAlert(vs, nil)

	return s.result(ctx, vs, ack, "Punched in successfully")
}

// PunchOut implements punch.PunchService.
func (s *PunchServiceImpl) PunchOut(ctx context.Context) (punch.Result, error) {
	vs, err := s.mounted(ctx)
	if err != nil {
		return punch.Result{}, err
	}

	record, err := s.store.PunchRecord(ctx)
	if err != nil {
		return punch.Result{}, err
	}
	if !record.IsPunchedIn {
		return punch.Result{}, punch.ErrNotPunchedIn
	}

	coordinate, locationName, refs := vs.snapshot()
	if coordinate == nil {
		return punch.Result{}, location.ErrLocationNotReady
	}
	if s.policy.OutRequiresGeofence && !s.locations.WithinGeofence(coordinate, refs) {
		return punch.Result{}, punch.ErrOutsideAllowedRadius
	}

	submission, err := s.submission(ctx, punch.ActionOut, *coordinate, locationName)
	if err != nil {
		return punch.Result{}, err
	}
	submission.PunchInID = record.PunchInID

	mime, data, gen, err := vs.pipeline.Payload()
	switch {
	case err == nil:
		submission.Image = data
		submission.ImageMIME = mime
	case errors.Is(err, capture.ErrNothingCaptured):
		if s.policy.OutRequiresSelfie {
			return punch.Result{}, punch.ErrSelfieRequired
		}
	default:
		return punch.Result{}, err
	}

	ack, err := s.PunchRepository.PunchOut(ctx, submission)
	if err != nil {
		s.setAlert(vs, err)
		return punch.Result{}, fmt.Errorf("failed to punch out: %w", err)
	}

	if err := s.store.ClearPunchRecord(ctx); err != nil {
		return punch.Result{}, err
	}
	if gen != 0 {
		vs.pipeline.MarkSubmitted(gen)
	}
	s.setAlert(vs, nil)

	return s.result(ctx, vs, ack, "Punched out successfully")
}

func (s *PunchServiceImpl) submission(ctx context.Context, action punch.Action, c location.Coordinate, locationName string) (punch.Submission, error) {
	auth, err := s.store.AuthState(ctx)
	if err != nil {
		return punch.Submission{}, err
	}
	who := auth.Profile
	if who.EmployeeID == "" {
		who.EmployeeID = session.Subject(ctx)
	}
	who = who.WithPlaceholders()
	if locationName == "" {
		locationName = location.UnknownLocationName
	}
	return punch.Submission{
		Action:       action,
		EmployeeID:   who.EmployeeID,
		Name:         who.Name,
		Email:        who.Email,
		Timestamp:    s.now().UTC(),
		Coordinate:   c,
		LocationName: locationName,
	}, nil
}

func (s *PunchServiceImpl) result(ctx context.Context, vs *viewState, ack punch.Ack, fallback string) (punch.Result, error) {
	view, err := s.render(ctx, vs)
	if err != nil {
		return punch.Result{}, err
	}
	message := ack.Message
	if message == "" {
		message = fallback
	}
	return punch.Result{Message: message, ID: ack.ID, View: view}, nil
}

// Unmount implements punch.PunchService.
func (s *PunchServiceImpl) Unmount(ctx context.Context) error {
	deviceID, ok := device.FromContext(ctx)
	if !ok {
		return appstate.ErrMissingDevice
	}
	if vs := s.views.remove(deviceID); vs != nil {
		vs.pipeline.Release()
	}
	return nil
}

// SweepIdle releases views untouched for idleFor and reports how many went.
func (s *PunchServiceImpl) SweepIdle(ctx context.Context, idleFor time.Duration) int {
	idle := s.views.removeIdle(s.now().Add(-idleFor))
	for _, vs := range idle {
		vs.pipeline.Release()
	}
	return len(idle)
}
