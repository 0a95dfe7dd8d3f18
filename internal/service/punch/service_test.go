package punch

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geo"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/memory"
	appstatesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/appstate"
	capturesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/capture"
	locationsvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/location"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type fakePunchRepository struct {
	in, out []punch.Submission
	ack     punch.Ack
	err     error
}

func (f *fakePunchRepository) PunchIn(ctx context.Context, s punch.Submission) (punch.Ack, error) {
	f.in = append(f.in, s)
	return f.ack, f.err
}

func (f *fakePunchRepository) PunchOut(ctx context.Context, s punch.Submission) (punch.Ack, error) {
	f.out = append(f.out, s)
	return f.ack, f.err
}

type fakeReferenceRepository struct{}

func (fakeReferenceRepository) List(ctx context.Context) ([]location.ReferenceLocation, error) {
	return []location.ReferenceLocation{{Name: "Raipur Office", Latitude: 21.2467, Longitude: 81.6624}}, nil
}

type fakeGeocoder struct{ name string }

func (f fakeGeocoder) Reverse(ctx context.Context, c location.Coordinate) (string, error) {
	return f.name, nil
}

// gatedGeocoder holds its first lookup until release is closed.
type gatedGeocoder struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedGeocoder() *gatedGeocoder {
	return &gatedGeocoder{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedGeocoder) Reverse(ctx context.Context, c location.Coordinate) (string, error) {
	first := false
	g.once.Do(func() { first = true })
	if !first {
		return "NEW", nil
	}
	close(g.entered)
	<-g.release
	return "OLD", nil
}

type fixture struct {
	svc   *PunchServiceImpl
	repo  *fakePunchRepository
	store appstate.Store
	ctx   context.Context
}

func newFixture(t *testing.T, policy Policy) fixture {
	t.Helper()
	return newFixtureWith(t, policy, fakeGeocoder{name: "Civil Lines, Raipur"})
}

func newFixtureWith(t *testing.T, policy Policy, geocoder location.Geocoder) fixture {
	t.Helper()
	store := appstatesvc.NewStore(memory.NewAppStateRepository(func() time.Time { return fixedNow }))
	locations := locationsvc.NewLocationService(
		fakeReferenceRepository{},
		geocoder,
		[]geo.Fence{{Point: geo.Point{Latitude: 21.2467, Longitude: 81.6624}}},
		15000,
	)
	repo := &fakePunchRepository{}
	svc := NewPunchService(repo, store, locations, policy, capturesvc.Settings{JPEGQuality: 80})
	svc.now = func() time.Time { return fixedNow }

	ctx := device.WithID(context.Background(), "device-1")
	require.NoError(t, store.SetAuthState(ctx, appstate.AuthState{
		IsAuthenticated: true,
		Profile:         profile.Profile{EmployeeID: "EMP042", Name: "Asha Verma", Email: "asha@example.com"},
	}))
	return fixture{svc: svc, repo: repo, store: store, ctx: ctx}
}

func floatPtr(v float64) *float64 { return &v }

func (f fixture) locate(t *testing.T, lat, lon float64) punch.View {
	t.Helper()
	report := &location.ReportRequest{Latitude: floatPtr(lat), Longitude: floatPtr(lon)}
	view, err := f.svc.ReportLocation(f.ctx, report.Locator(fixedNow))
	require.NoError(t, err)
	return view
}

func (f fixture) selfie(t *testing.T) punch.View {
	t.Helper()
	_, err := f.svc.StartCamera(f.ctx, true)
	require.NoError(t, err)

	view, err := f.svc.Capture(f.ctx, testFrame())
	require.NoError(t, err)
	return view
}

func testFrame() image.Image {
	frame := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		frame.Set(x, x%24, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	return frame
}

func TestPunchService_View(t *testing.T) {
	f := newFixture(t, Policy{})

	view, err := f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, punch.LabelPunchIn, view.PrimaryAction)
	assert.False(t, view.LocationReady)
	assert.False(t, view.CanSubmit)
	assert.Equal(t, capture.StateIdle, view.CaptureState)
	require.Len(t, view.ReferenceLocations, 1)
	assert.Equal(t, "Raipur Office", view.ReferenceLocations[0].Name)

	_, err = f.svc.View(context.Background())
	assert.ErrorIs(t, err, appstate.ErrMissingDevice)
}

func TestPunchService_PunchInThenOut(t *testing.T) {
	f := newFixture(t, Policy{})
	f.repo.ack = punch.Ack{ID: "att-77"}

	view := f.locate(t, 21.25, 81.63)
	assert.True(t, view.WithinGeofence)
	assert.Equal(t, "Civil Lines, Raipur", view.LocationName)
	assert.False(t, view.CanSubmit, "selfie still missing")

	view = f.selfie(t)
	assert.True(t, view.CanSubmit)
	assert.NotEmpty(t, view.Selfie)

	result, err := f.svc.PunchIn(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "Punched in successfully", result.Message)
	assert.Equal(t, punch.LabelPunchOut, result.View.PrimaryAction)
	assert.True(t, result.View.IsPunchedIn)
	assert.Equal(t, capture.StateSubmitted, result.View.CaptureState)
	assert.Empty(t, result.View.Selfie)

	require.Len(t, f.repo.in, 1)
	sent := f.repo.in[0]
	assert.Equal(t, "EMP042", sent.EmployeeID)
	assert.Equal(t, "Civil Lines, Raipur", sent.LocationName)
	assert.Equal(t, "image/jpeg", sent.ImageMIME)
	assert.NotEmpty(t, sent.Image)

	record, err := f.store.PunchRecord(f.ctx)
	require.NoError(t, err)
	assert.True(t, record.IsPunchedIn)
	assert.Equal(t, "att-77", record.PunchInID)
	require.NotNil(t, record.PunchInTime)
	assert.True(t, fixedNow.Equal(*record.PunchInTime))

	_, err = f.svc.PunchIn(f.ctx)
	assert.ErrorIs(t, err, punch.ErrAlreadyPunchedIn)

	f.repo.ack = punch.Ack{Message: "Bye"}
	result, err = f.svc.PunchOut(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bye", result.Message)
	assert.Equal(t, punch.LabelPunchIn, result.View.PrimaryAction)

	require.Len(t, f.repo.out, 1)
	assert.Equal(t, "att-77", f.repo.out[0].PunchInID)
	assert.Empty(t, f.repo.out[0].Image, "selfie is optional on punch-out")

	record, err = f.store.PunchRecord(f.ctx)
	require.NoError(t, err)
	assert.False(t, record.IsPunchedIn)
	assert.Empty(t, record.PunchInID)
}

func TestPunchService_PunchInPreconditions(t *testing.T) {
	t.Run("location not ready", func(t *testing.T) {
		f := newFixture(t, Policy{})
		f.selfie(t)
		_, err := f.svc.PunchIn(f.ctx)
		assert.ErrorIs(t, err, location.ErrLocationNotReady)
	})

	t.Run("outside geofence", func(t *testing.T) {
		f := newFixture(t, Policy{})
		view := f.locate(t, 22.0797, 82.1409)
		assert.False(t, view.WithinGeofence)
		f.selfie(t)
		_, err := f.svc.PunchIn(f.ctx)
		assert.ErrorIs(t, err, punch.ErrOutsideAllowedRadius)
		assert.Empty(t, f.repo.in)
	})

	t.Run("selfie missing", func(t *testing.T) {
		f := newFixture(t, Policy{})
		f.locate(t, 21.25, 81.63)
		_, err := f.svc.PunchIn(f.ctx)
		assert.ErrorIs(t, err, punch.ErrSelfieRequired)
	})

	t.Run("not punched in", func(t *testing.T) {
		f := newFixture(t, Policy{})
		f.locate(t, 21.25, 81.63)
		_, err := f.svc.PunchOut(f.ctx)
		assert.ErrorIs(t, err, punch.ErrNotPunchedIn)
	})
}

func TestPunchService_PunchOutPolicy(t *testing.T) {
	f := newFixture(t, Policy{OutRequiresSelfie: true, OutRequiresGeofence: true})
	punchedAt := fixedNow.Add(-8 * time.Hour)
	require.NoError(t, f.store.SetPunchRecord(f.ctx, appstate.PunchRecord{IsPunchedIn: true, PunchInTime: &punchedAt}))

	view := f.locate(t, 22.0797, 82.1409)
	assert.Equal(t, punch.LabelPunchOut, view.PrimaryAction)
	assert.False(t, view.CanSubmit)

	_, err := f.svc.PunchOut(f.ctx)
	assert.ErrorIs(t, err, punch.ErrOutsideAllowedRadius)

	f.locate(t, 21.25, 81.63)
	_, err = f.svc.PunchOut(f.ctx)
	assert.ErrorIs(t, err, punch.ErrSelfieRequired)

	f.selfie(t)
	_, err = f.svc.PunchOut(f.ctx)
	require.NoError(t, err)
	require.Len(t, f.repo.out, 1)
	assert.NotEmpty(t, f.repo.out[0].Image)
}

func TestPunchService_BackendFailureKeepsRecord(t *testing.T) {
	f := newFixture(t, Policy{})
	f.repo.err = &remote.APIError{StatusCode: http.StatusInternalServerError}

	f.locate(t, 21.25, 81.63)
	f.selfie(t)

	_, err := f.svc.PunchIn(f.ctx)
	assert.ErrorIs(t, err, remote.ErrBackendRejected)

	record, err := f.store.PunchRecord(f.ctx)
	require.NoError(t, err)
	assert.False(t, record.IsPunchedIn)

	view, err := f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, remote.GenericFailureMessage, view.Alert)
	assert.Equal(t, capture.StateCaptured, view.CaptureState, "selfie kept for another attempt")
}

func TestPunchService_LocationFailure(t *testing.T) {
	f := newFixture(t, Policy{})
	f.locate(t, 21.25, 81.63)

	report := &location.ReportRequest{Error: location.FailurePermissionDenied}
	_, err := f.svc.ReportLocation(f.ctx, report.Locator(fixedNow))
	assert.ErrorIs(t, err, location.ErrPermissionDenied)

	view, err := f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.False(t, view.LocationReady)
	assert.Nil(t, view.Coordinate)
	assert.NotEmpty(t, view.Alert)
}

func TestPunchService_CameraDeniedStaysIdle(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.svc.StartCamera(f.ctx, false)
	assert.ErrorIs(t, err, capture.ErrCameraPermissionDenied)

	view, err := f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, capture.StateIdle, view.CaptureState)
	assert.Equal(t, capture.ErrCameraPermissionDenied.Error(), view.Alert)
}

func TestPunchService_RetakeAndUnmount(t *testing.T) {
	f := newFixture(t, Policy{})
	f.selfie(t)

	view, err := f.svc.Retake(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, capture.StateCameraActive, view.CaptureState)
	assert.Empty(t, view.Selfie)
	assert.Nil(t, view.CapturedAt)

	require.NoError(t, f.svc.Unmount(f.ctx))
	view, err = f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, capture.StateIdle, view.CaptureState)
}

func TestPunchService_SweepIdle(t *testing.T) {
	f := newFixture(t, Policy{})
	_, err := f.svc.View(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, f.svc.SweepIdle(context.Background(), time.Hour))

	f.svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	assert.Equal(t, 1, f.svc.SweepIdle(context.Background(), time.Hour))
}

func TestPunchService_StartCameraTwiceThenCapture(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.svc.StartCamera(f.ctx, true)
	require.NoError(t, err)
	view, err := f.svc.StartCamera(f.ctx, true)
	require.NoError(t, err)
	assert.Equal(t, capture.StateCameraActive, view.CaptureState)

	view, err = f.svc.Capture(f.ctx, testFrame())
	require.NoError(t, err)
	assert.Equal(t, capture.StateCaptured, view.CaptureState)
	assert.NotEmpty(t, view.Selfie)
}

func TestPunchService_StartCameraWhileCapturedNeedsRetake(t *testing.T) {
	f := newFixture(t, Policy{})
	f.selfie(t)

	_, err := f.svc.StartCamera(f.ctx, true)
	assert.ErrorIs(t, err, capture.ErrCameraNotActive)

	view, err := f.svc.Retake(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, capture.StateCameraActive, view.CaptureState)

	view, err = f.svc.Capture(f.ctx, testFrame())
	require.NoError(t, err)
	assert.Equal(t, capture.StateCaptured, view.CaptureState)
	assert.NotEmpty(t, view.Selfie)
}

func TestPunchService_CaptureBeforeStartCamera(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.svc.Capture(f.ctx, testFrame())
	assert.ErrorIs(t, err, capture.ErrCameraNotActive)
}

func TestPunchService_SlowPlaceNameDoesNotOverwriteNewerFix(t *testing.T) {
	geocoder := newGatedGeocoder()
	f := newFixtureWith(t, Policy{}, geocoder)

	done := make(chan error, 1)
	go func() {
		report := &location.ReportRequest{Latitude: floatPtr(21.20), Longitude: floatPtr(81.60)}
		_, err := f.svc.ReportLocation(f.ctx, report.Locator(fixedNow))
		done <- err
	}()
	<-geocoder.entered

	view := f.locate(t, 21.25, 81.63)
	assert.Equal(t, "NEW", view.LocationName)

	close(geocoder.release)
	require.NoError(t, <-done)

	view, err := f.svc.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEW", view.LocationName)
	require.NotNil(t, view.Coordinate)
	assert.InDelta(t, 21.25, view.Coordinate.Latitude, 1e-9)
	assert.InDelta(t, 81.63, view.Coordinate.Longitude, 1e-9)
}

func TestPunchService_EmployeeIDFromCredential(t *testing.T) {
	f := newFixture(t, Policy{})
	require.NoError(t, f.store.SetAuthState(f.ctx, appstate.AuthState{
		IsAuthenticated: true,
		Profile:         profile.Profile{Name: "Asha Verma", Email: "asha@example.com"},
	}))

	token := jwt.New()
	require.NoError(t, token.Set("employeeId", "EMP900"))
	f.ctx = jwtauth.NewContext(f.ctx, token, nil)

	f.locate(t, 21.25, 81.63)
	f.selfie(t)
	_, err := f.svc.PunchIn(f.ctx)
	require.NoError(t, err)

	require.Len(t, f.repo.in, 1)
	assert.Equal(t, "EMP900", f.repo.in[0].EmployeeID)
	assert.Equal(t, "Asha Verma", f.repo.in[0].Name)
}
