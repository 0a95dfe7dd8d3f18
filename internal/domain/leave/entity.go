package leave

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// PayType says whether the days are deducted from salary.
type PayType string

const (
	PayTypePaid   PayType = "paid"
	PayTypeUnpaid PayType = "unpaid"
)

func ParseStatus(s string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusApproved, StatusRejected, StatusCancelled:
		return st
	case "canceled":
		return StatusCancelled
	}
	return StatusPending
}

func ParsePayType(s string) PayType {
	if PayType(strings.ToLower(strings.TrimSpace(s))) == PayTypeUnpaid {
		return PayTypeUnpaid
	}
	return PayTypePaid
}

// Request is one leave application.
type Request struct {
	ID        string
	From      time.Time
	To        time.Time
	LeaveType string
	Reason    string
	Status    Status
	TotalDays float64
	PayType   PayType
	AppliedAt *time.Time
}

// Days is the backend's total, or the inclusive calendar span when it sent none.
func (r Request) Days() float64 {
	if r.TotalDays > 0 {
		return r.TotalDays
	}
	return float64(SpanDays(r.From, r.To))
}

// Dates lists every calendar day from From to To inclusive.
func (r Request) Dates() []time.Time {
	from := truncateDay(r.From)
	to := truncateDay(r.To)
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// SpanDays counts calendar days from from to to inclusive; 0 when to precedes from.
func SpanDays(from, to time.Time) int {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Page struct {
	Requests   []Request
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ApprovedDays is the set of working days covered by approved leave, keyed by date.
type ApprovedDays map[string]struct{}

// In counts the days that fall in one month.
func (a ApprovedDays) In(year, month int) int {
	prefix := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-")
	n := 0
	for d := range a {
		if strings.HasPrefix(d, prefix) {
			n++
		}
	}
	return n
}
