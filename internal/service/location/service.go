package location

import (
	"context"
	"errors"
	"log/slog"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geo"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

type LocationServiceImpl struct {
	location.ReferenceLocationRepository
	geocoder      location.Geocoder
	fallback      []location.ReferenceLocation
	defaultRadius float64
}

func NewLocationService(
	referenceLocationRepository location.ReferenceLocationRepository,
	geocoder location.Geocoder,
	fallback []geo.Fence,
	defaultRadius float64,
) location.LocationService {
	refs := make([]location.ReferenceLocation, 0, len(fallback))
	for _, f := range fallback {
		refs = append(refs, location.ReferenceLocation{
			Latitude:     f.Latitude,
			Longitude:    f.Longitude,
			RadiusMeters: f.RadiusMeters,
		})
	}
	return &LocationServiceImpl{
		ReferenceLocationRepository: referenceLocationRepository,
		geocoder:                    geocoder,
		fallback:                    refs,
		defaultRadius:               defaultRadius,
	}
}

// Locate implements location.LocationService.
func (s *LocationServiceImpl) Locate(ctx context.Context, locator location.Locator) (location.Fix, error) {
	fix, err := locator.Locate(ctx)
	if err != nil {
		return location.Fix{}, err
	}
	if !validator.IsValidLatitude(fix.Latitude) || !validator.IsValidLongitude(fix.Longitude) {
		return location.Fix{}, location.ErrInvalidCoordinate
	}
	return fix, nil
}

// PlaceName implements location.LocationService.
func (s *LocationServiceImpl) PlaceName(ctx context.Context, c location.Coordinate) string {
	if s.geocoder == nil {
		return location.UnknownLocationName
	}
	name, err := s.geocoder.Reverse(ctx, c)
	if err != nil {
		slog.Warn("Reverse geocoding failed", "latitude", c.Latitude, "longitude", c.Longitude, "error", err)
		return location.UnknownLocationName
	}
	return name
}

// ReferenceSet implements location.LocationService.
func (s *LocationServiceImpl) ReferenceSet(ctx context.Context) location.ReferenceSet {
	refs, err := s.ReferenceLocationRepository.List(ctx)
	switch {
	case errors.Is(err, session.ErrReauthenticationRequired):
		// The punch itself will surface the 401
		slog.Warn("Reference locations refused, using fallback", "error", err)
	case err != nil:
		slog.Warn("Failed to fetch reference locations, using fallback", "error", err)
	case len(refs) > 0:
		return location.ReferenceSet{Locations: refs}
	}

	fallback := make([]location.ReferenceLocation, len(s.fallback))
	copy(fallback, s.fallback)
	return location.ReferenceSet{Locations: fallback, Fallback: true}
}

// WithinGeofence implements location.LocationService.
func (s *LocationServiceImpl) WithinGeofence(user *location.Coordinate, set location.ReferenceSet) bool {
	if user == nil {
		return false
	}
	fences := make([]geo.Fence, 0, len(set.Locations))
	for _, ref := range set.Locations {
		fences = append(fences, ref.Fence())
	}
	point := user.Point()
	return geo.WithinAny(&point, fences, s.defaultRadius)
}
