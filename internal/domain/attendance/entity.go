package attendance

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "halfday"
)

// ParseStatus folds the backend's spellings onto a Status. ok is false for unknown values.
func ParseStatus(s string) (Status, bool) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch Status(normalized) {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return Status(normalized), true
	}
	return Status(normalized), false
}

// Label is the display form of the status.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	case StatusHalfDay:
		return "Half Day"
	}
	return "Unknown"
}

// Entry is one day of attendance as recorded by the backend.
type Entry struct {
	ID        string
	Date      time.Time
	Status    Status
	PunchIn   *time.Time
	PunchOut  *time.Time
	EntryTime *time.Time
	Location  string
}

// Page is one page of entries plus the backend's pagination totals.
type Page struct {
	Entries    []Entry
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}
