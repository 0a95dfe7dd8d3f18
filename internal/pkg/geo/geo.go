package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Fence is a permitted punch site. A zero RadiusMeters means "use the evaluator default".
type Fence struct {
	Point
	RadiusMeters float64
}

// HaversineDistance returns the great-circle distance between two points in metres.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Distance is HaversineDistance over Points.
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// WithinAny reports whether user lies within the radius of at least one fence.
// A nil user or an empty fence list is never inside.
func WithinAny(user *Point, fences []Fence, defaultRadius float64) bool {
	if user == nil || len(fences) == 0 {
		return false
	}

	for _, f := range fences {
		radius := f.RadiusMeters
		if radius <= 0 {
			radius = defaultRadius
		}
		if Distance(*user, f.Point) <= radius {
			return true
		}
	}
	return false
}
