package location

import (
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geo"
)

// UnknownLocationName is used whenever a coordinate cannot be named.
const UnknownLocationName = "Unknown Location"

// Failure reasons a device may report instead of a fix.
const (
	FailurePermissionDenied = "permission_denied"
	FailureUnsupported      = "unsupported"
	FailureTimeout          = "timeout"
)

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Point() geo.Point {
	return geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Fix is a single position reading from the device.
type Fix struct {
	Coordinate
	AccuracyMeters float64
	At             time.Time
}

// ReferenceLocation is a permitted workplace. RadiusMeters of 0 means the configured default.
type ReferenceLocation struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radiusMeters,omitempty"`
}

func (r ReferenceLocation) Fence() geo.Fence {
	return geo.Fence{
		Point:        geo.Point{Latitude: r.Latitude, Longitude: r.Longitude},
		RadiusMeters: r.RadiusMeters,
	}
}

// ReferenceSet is the list loaded when the punch view mounts.
type ReferenceSet struct {
	Locations []ReferenceLocation `json:"locations"`
	Fallback  bool                `json:"fallback"`
}
