package location

import (
	"context"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

// ReportRequest is what the browser sends after asking the device for a position.
// Either both coordinates or an error reason are present.
type ReportRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
	Error     string   `json:"error"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Error != "" {
		if !validator.IsInSlice(r.Error, []string{FailurePermissionDenied, FailureUnsupported, FailureTimeout}) {
			errs = append(errs, validator.ValidationError{
				Field:   "error",
				Message: "error must be one of permission_denied, unsupported, timeout",
			})
		}
	} else {
		if r.Latitude == nil || !validator.IsValidLatitude(*r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if r.Longitude == nil || !validator.IsValidLongitude(*r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Locator returns a Locator that replays this report.
func (r *ReportRequest) Locator(now time.Time) Locator {
	return reportedLocator{req: *r, at: now}
}

type reportedLocator struct {
	req ReportRequest
	at  time.Time
}

func (l reportedLocator) Locate(ctx context.Context) (Fix, error) {
	switch l.req.Error {
	case "":
	case FailurePermissionDenied:
		return Fix{}, ErrPermissionDenied
	case FailureUnsupported:
		return Fix{}, ErrUnsupported
	default:
		return Fix{}, ErrTimeout
	}
	if l.req.Latitude == nil || l.req.Longitude == nil {
		return Fix{}, ErrInvalidCoordinate
	}
	return Fix{
		Coordinate:     Coordinate{Latitude: *l.req.Latitude, Longitude: *l.req.Longitude},
		AccuracyMeters: l.req.Accuracy,
		At:             l.at,
	}, nil
}
