package punch

import (
	"strconv"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
)

// TimestampLayout is the ISO-8601 UTC millisecond form the backend expects.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Action string

const (
	ActionIn  Action = "in"
	ActionOut Action = "out"
)

// Labels of the punch view's primary button.
const (
	LabelPunchIn  = "Punch In"
	LabelPunchOut = "Punch Out"
)

// Submission is one multipart punch sent to the backend.
type Submission struct {
	Action       Action
	PunchInID    string
	EmployeeID   string
	Name         string
	Email        string
	Timestamp    time.Time
	Coordinate   location.Coordinate
	LocationName string
	Image        []byte
	ImageMIME    string
}

// Fields returns the text form fields in submission order.
func (s Submission) Fields() [][2]string {
	timeField := "punchIn"
	if s.Action == ActionOut {
		timeField = "punchOut"
	}
	return [][2]string{
		{"employeeId", s.EmployeeID},
		{"name", s.Name},
		{"email", s.Email},
		{timeField, s.Timestamp.UTC().Format(TimestampLayout)},
		{"latitude", strconv.FormatFloat(s.Coordinate.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(s.Coordinate.Longitude, 'f', -1, 64)},
		{"location", s.LocationName},
	}
}

// Ack is the backend's acknowledgment of a punch.
type Ack struct {
	ID        string
	Message   string
	Timestamp *time.Time
}
