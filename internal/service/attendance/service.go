package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/pagination"
)

const (
	dateLayout   = "2006-01-02"
	clockLayout  = "03:04 PM"
	emptyClock   = "-"
	scanPageSize = 100
	maxScanPages = 20
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leaveService leave.LeaveService
	store        appstate.Store
	calendar     *calendar.Calendar
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	leaveService leave.LeaveService,
	store appstate.Store,
	cal *calendar.Calendar,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		leaveService:         leaveService,
		store:                store,
		calendar:             cal,
	}
}

// clock formats t as a 12-hour wall-clock time.
func clock(t *time.Time) string {
	if t == nil {
		return emptyClock
	}
	return t.Format(clockLayout)
}

// ToEntryResponse derives the display fields of one row.
func ToEntryResponse(e attendance.Entry) attendance.EntryResponse {
	return attendance.EntryResponse{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Weekday:     e.Date.Weekday().String(),
		PunchIn:     clock(e.PunchIn),
		PunchOut:    clock(e.PunchOut),
		EntryTime:   clock(e.EntryTime),
		Status:      e.Status,
		StatusLabel: e.Status.Label(),
		Location:    e.Location,
	}
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	result, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	entries := make([]attendance.EntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, ToEntryResponse(e))
	}

	totalPages := result.TotalPages
	if totalPages == 0 {
		totalPages = pagination.TotalPages(result.Total, filter.Limit)
	}

	resp := attendance.ListResponse{
		Entries: entries,
		Pagination: attendance.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      result.Total,
			TotalPages: totalPages,
			Window:     pagination.Window(filter.Page, totalPages, pagination.MaxButtons),
		},
	}

	if filter.Month != 0 && filter.Year != 0 {
		summary, err := s.MonthlySummary(ctx, filter.Year, filter.Month)
		if err != nil {
			return attendance.ListResponse{}, err
		}
		resp.Summary = &summary
	}
	return resp, nil
}

// MonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, year, month int) (attendance.Summary, error) {
	if month < 1 || month > 12 {
		return attendance.Summary{}, attendance.ErrInvalidMonth
	}

	entries, err := s.monthEntries(ctx, year, month)
	if err != nil {
		return attendance.Summary{}, err
	}
	return s.summarize(ctx, entries, year, month)
}

func (s *AttendanceServiceImpl) summarize(ctx context.Context, entries []attendance.Entry, year, month int) (attendance.Summary, error) {
	leaveDays, err := s.leaveService.ApprovedDaysIn(ctx, year, month)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to count leave days: %w", err)
	}
	workingDays, err := s.calendar.WorkingDays(year, time.Month(month))
	if err != nil {
		return attendance.Summary{}, err
	}
	return Summarize(entries, leaveDays, workingDays, year, month), nil
}

// MonthReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthReport(ctx context.Context, year, month int) (attendance.MonthReport, error) {
	if month < 1 || month > 12 {
		return attendance.MonthReport{}, attendance.ErrInvalidMonth
	}

	entries, err := s.monthEntries(ctx, year, month)
	if err != nil {
		return attendance.MonthReport{}, err
	}
	summary, err := s.summarize(ctx, entries, year, month)
	if err != nil {
		return attendance.MonthReport{}, err
	}
	offDays, err := s.calendar.OffDays(year, time.Month(month))
	if err != nil {
		return attendance.MonthReport{}, err
	}
	auth, err := s.store.AuthState(ctx)
	if err != nil {
		return attendance.MonthReport{}, err
	}
	who := auth.Profile.WithPlaceholders()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	rows := make([]attendance.EntryResponse, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ToEntryResponse(e))
	}

	return attendance.MonthReport{
		EmployeeName: who.Name,
		EmployeeID:   who.EmployeeID,
		Entries:      rows,
		Summary:      summary,
		OffDays:      offDays,
	}, nil
}

// monthEntries pages through every entry of one month.
func (s *AttendanceServiceImpl) monthEntries(ctx context.Context, year, month int) ([]attendance.Entry, error) {
	var entries []attendance.Entry
	for page := 1; page <= maxScanPages; page++ {
		result, err := s.AttendanceRepository.List(ctx, attendance.Filter{
			Page:  page,
			Limit: scanPageSize,
			Month: month,
			Year:  year,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		for _, e := range result.Entries {
			if e.Date.Year() == year && e.Date.Month() == time.Month(month) {
				entries = append(entries, e)
			}
		}

		totalPages := result.TotalPages
		if totalPages == 0 {
			totalPages = pagination.TotalPages(result.Total, scanPageSize)
		}
		if len(result.Entries) < scanPageSize || page >= totalPages {
			break
		}
	}
	return entries, nil
}

// Summarize counts statuses of one month. Leave is the approved leave days
// the leave service found in that month.
func Summarize(entries []attendance.Entry, leaveDays, workingDays, year, month int) attendance.Summary {
	summary := attendance.Summary{
		Year:        year,
		Month:       month,
		Leave:       leaveDays,
		WorkingDays: workingDays,
	}
	for _, e := range entries {
		switch e.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
	}
	return summary
}
