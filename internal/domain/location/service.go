package location

import "context"

type LocationService interface {
	// Locate asks the locator for one fix and validates it
	Locate(ctx context.Context, locator Locator) (Fix, error)

	// PlaceName never fails; unresolvable coordinates are UnknownLocationName
	PlaceName(ctx context.Context, c Coordinate) string

	// ReferenceSet fetches workplaces, falling back to configured ones
	ReferenceSet(ctx context.Context) ReferenceSet

	// WithinGeofence reports whether user is inside any location of set
	WithinGeofence(user *Coordinate, set ReferenceSet) bool
}
