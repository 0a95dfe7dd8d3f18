package rest

import (
	"context"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
)

type referenceLocationWire struct {
	MongoID   string    `json:"_id"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  flexFloat `json:"latitude"`
	Lat       flexFloat `json:"lat"`
	Longitude flexFloat `json:"longitude"`
	Lng       flexFloat `json:"lng"`
	Radius    flexFloat `json:"radius"`
}

func (w referenceLocationWire) toEntity() location.ReferenceLocation {
	lat, lng := w.Latitude, w.Longitude
	if lat == 0 && lng == 0 {
		lat, lng = w.Lat, w.Lng
	}
	return location.ReferenceLocation{
		ID:           firstNonEmpty(w.MongoID, w.ID),
		Name:         w.Name,
		Latitude:     float64(lat),
		Longitude:    float64(lng),
		RadiusMeters: float64(w.Radius),
	}
}

type referenceLocationRepository struct {
	client *Client
}

func NewReferenceLocationRepository(client *Client) location.ReferenceLocationRepository {
	return &referenceLocationRepository{client: client}
}

// List implements location.ReferenceLocationRepository.
func (r *referenceLocationRepository) List(ctx context.Context) ([]location.ReferenceLocation, error) {
	env, err := r.client.GetJSON(ctx, "/locations", nil)
	if err != nil {
		return nil, err
	}

	var wires []referenceLocationWire
	if err := env.Decode(&wires); err != nil {
		return nil, err
	}

	locations := make([]location.ReferenceLocation, 0, len(wires))
	for _, w := range wires {
		locations = append(locations, w.toEntity())
	}
	return locations, nil
}
