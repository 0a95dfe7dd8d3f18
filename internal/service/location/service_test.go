package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReferenceRepository struct {
	refs []location.ReferenceLocation
	err  error
}

func (f *fakeReferenceRepository) List(ctx context.Context) ([]location.ReferenceLocation, error) {
	return f.refs, f.err
}

type fakeGeocoder struct {
	name string
	err  error
}

func (f *fakeGeocoder) Reverse(ctx context.Context, c location.Coordinate) (string, error) {
	return f.name, f.err
}

var raipur = []geo.Fence{{Point: geo.Point{Latitude: 21.2467, Longitude: 81.6624}}}

func floatPtr(v float64) *float64 { return &v }

func TestLocationService_Locate(t *testing.T) {
	svc := NewLocationService(&fakeReferenceRepository{}, nil, raipur, 15000)
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	report := &location.ReportRequest{Latitude: floatPtr(21.25), Longitude: floatPtr(81.63), Accuracy: 12}
	fix, err := svc.Locate(context.Background(), report.Locator(now))
	require.NoError(t, err)
	assert.Equal(t, 21.25, fix.Latitude)
	assert.Equal(t, now, fix.At)

	failures := map[string]error{
		location.FailurePermissionDenied: location.ErrPermissionDenied,
		location.FailureUnsupported:      location.ErrUnsupported,
		location.FailureTimeout:          location.ErrTimeout,
	}
	for reason, want := range failures {
		report := &location.ReportRequest{Error: reason}
		_, err := svc.Locate(context.Background(), report.Locator(now))
		assert.ErrorIs(t, err, want, reason)
	}

	outOfRange := &location.ReportRequest{Latitude: floatPtr(95), Longitude: floatPtr(81)}
	_, err = svc.Locate(context.Background(), outOfRange.Locator(now))
	assert.ErrorIs(t, err, location.ErrInvalidCoordinate)
}

func TestLocationService_PlaceName(t *testing.T) {
	c := location.Coordinate{Latitude: 21.2467, Longitude: 81.6624}

	svc := NewLocationService(&fakeReferenceRepository{}, &fakeGeocoder{name: "Raipur"}, raipur, 15000)
	assert.Equal(t, "Raipur", svc.PlaceName(context.Background(), c))

	failing := NewLocationService(&fakeReferenceRepository{}, &fakeGeocoder{err: errors.New("down")}, raipur, 15000)
	assert.Equal(t, location.UnknownLocationName, failing.PlaceName(context.Background(), c))

	none := NewLocationService(&fakeReferenceRepository{}, nil, raipur, 15000)
	assert.Equal(t, location.UnknownLocationName, none.PlaceName(context.Background(), c))
}

func TestLocationService_ReferenceSet(t *testing.T) {
	remote := []location.ReferenceLocation{{Name: "HQ", Latitude: 22, Longitude: 82}}

	svc := NewLocationService(&fakeReferenceRepository{refs: remote}, nil, raipur, 15000)
	set := svc.ReferenceSet(context.Background())
	assert.False(t, set.Fallback)
	assert.Equal(t, remote, set.Locations)

	for name, repo := range map[string]*fakeReferenceRepository{
		"error": {err: errors.New("boom")},
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			set := NewLocationService(repo, nil, raipur, 15000).ReferenceSet(context.Background())
			assert.True(t, set.Fallback)
			require.Len(t, set.Locations, 1)
			assert.Equal(t, 21.2467, set.Locations[0].Latitude)
		})
	}
}

func TestLocationService_WithinGeofence(t *testing.T) {
	svc := NewLocationService(&fakeReferenceRepository{}, nil, raipur, 15000)
	set := location.ReferenceSet{Locations: []location.ReferenceLocation{{Latitude: 21.2467, Longitude: 81.6624}}}

	// Raipur centre
	assert.True(t, svc.WithinGeofence(&location.Coordinate{Latitude: 21.2467, Longitude: 81.6624}, set))
	// Bilaspur, roughly 110 km north
	assert.False(t, svc.WithinGeofence(&location.Coordinate{Latitude: 22.0797, Longitude: 82.1409}, set))

	assert.False(t, svc.WithinGeofence(nil, set))
	assert.False(t, svc.WithinGeofence(&location.Coordinate{Latitude: 21.2467, Longitude: 81.6624}, location.ReferenceSet{}))

	narrow := location.ReferenceSet{Locations: []location.ReferenceLocation{{Latitude: 21.2467, Longitude: 81.6624, RadiusMeters: 100}}}
	assert.False(t, svc.WithinGeofence(&location.Coordinate{Latitude: 21.2567, Longitude: 81.6624}, narrow))
}
