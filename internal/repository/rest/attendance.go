package rest

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/pagination"
)

type attendanceWire struct {
	MongoID   string   `json:"_id"`
	ID        string   `json:"id"`
	Date      flexTime `json:"date"`
	Status    string   `json:"status"`
	PunchIn   flexTime `json:"punchIn"`
	PunchOut  flexTime `json:"punchOut"`
	EntryTime flexTime `json:"entryTime"`
	CreatedAt flexTime `json:"createdAt"`
	Location  string   `json:"location"`
}

func (w attendanceWire) toEntity() (attendance.Entry, bool) {
	status, ok := attendance.ParseStatus(w.Status)
	if !ok {
		if w.Status != "" || !w.PunchIn.Valid {
			return attendance.Entry{}, false
		}
		status = attendance.StatusPresent
	}

	date := w.Date
	if !date.Valid {
		// Punch documents carry no date field of their own
		switch {
		case w.PunchIn.Valid:
			date = w.PunchIn
		case w.CreatedAt.Valid:
			date = w.CreatedAt
		default:
			return attendance.Entry{}, false
		}
	}

	return attendance.Entry{
		ID:        firstNonEmpty(w.MongoID, w.ID),
		Date:      date.Time,
		Status:    status,
		PunchIn:   w.PunchIn.Ptr(),
		PunchOut:  w.PunchOut.Ptr(),
		EntryTime: w.EntryTime.Ptr(),
		Location:  w.Location,
	}, true
}

type attendanceRepository struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) (attendance.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Month != 0 {
		query.Set("month", strconv.Itoa(filter.Month))
	}
	if filter.Year != 0 {
		query.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	env, err := r.client.GetJSON(ctx, "/attendance", query)
	if err != nil {
		return attendance.Page{}, err
	}

	var wires []attendanceWire
	if err := env.Decode(&wires); err != nil {
		return attendance.Page{}, err
	}

	entries := make([]attendance.Entry, 0, len(wires))
	for _, w := range wires {
		entry, ok := w.toEntity()
		if !ok {
			slog.Warn("Skipping unreadable attendance entry", "id", firstNonEmpty(w.MongoID, w.ID), "status", w.Status)
			continue
		}
		entries = append(entries, entry)
	}

	if env.Meta == (Meta{}) {
		// The backend sent everything; page it here.
		return pageLocally(entries, filter.Page, filter.Limit), nil
	}

	page := attendance.Page{
		Entries:    entries,
		Page:       env.Meta.Page,
		Limit:      env.Meta.Limit,
		Total:      env.Meta.Total,
		TotalPages: env.Meta.TotalPages,
	}
	if page.Page == 0 {
		page.Page = filter.Page
	}
	if page.Limit == 0 {
		page.Limit = filter.Limit
	}
	if page.TotalPages == 0 {
		page.TotalPages = pagination.TotalPages(page.Total, page.Limit)
	}
	return page, nil
}

func pageLocally(entries []attendance.Entry, page, limit int) attendance.Page {
	total := int64(len(entries))
	start := (page - 1) * limit
	if start > len(entries) {
		start = len(entries)
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	return attendance.Page{
		Entries:    entries[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pagination.TotalPages(total, limit),
	}
}
