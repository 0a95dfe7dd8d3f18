package location

import "context"

// Locator is the device's one-shot position API.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// Geocoder turns a coordinate into a human readable place name.
type Geocoder interface {
	Reverse(ctx context.Context, c Coordinate) (string, error)
}

// ReferenceLocationRepository lists the workplaces a punch may happen at.
type ReferenceLocationRepository interface {
	List(ctx context.Context) ([]ReferenceLocation, error)
}
