package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/memory"
	appstatesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/appstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepository struct {
	page    attendance.Page
	filters []attendance.Filter
}

func (f *fakeAttendanceRepository) List(ctx context.Context, filter attendance.Filter) (attendance.Page, error) {
	f.filters = append(f.filters, filter)
	return f.page, nil
}

type fakeLeaveService struct {
	leave.LeaveService
	approvedDays int
}

func (f *fakeLeaveService) ApprovedDaysIn(ctx context.Context, year, month int) (int, error) {
	return f.approvedDays, nil
}

func at(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func entry(date string, status attendance.Status) attendance.Entry {
	d, _ := time.Parse("2006-01-02", date)
	return attendance.Entry{ID: date, Date: d, Status: status}
}

func TestSummarize(t *testing.T) {
	entries := []attendance.Entry{
		entry("2025-03-03", attendance.StatusPresent),
		entry("2025-03-04", attendance.StatusPresent),
		entry("2025-03-05", attendance.StatusAbsent),
	}

	summary := Summarize(entries, 0, 22, 2025, 3)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 0, summary.Leave)
	assert.Equal(t, 0, summary.HalfDay)
	assert.Equal(t, 22, summary.WorkingDays)
}

func TestToEntryResponse(t *testing.T) {
	e := entry("2025-03-03", attendance.StatusHalfDay)
	e.PunchIn = at("2025-03-03T09:05:00Z")
	e.PunchOut = at("2025-03-03T13:30:00Z")

	resp := ToEntryResponse(e)
	assert.Equal(t, "Monday", resp.Weekday)
	assert.Equal(t, "09:05 AM", resp.PunchIn)
	assert.Equal(t, "01:30 PM", resp.PunchOut)
	assert.Equal(t, "-", resp.EntryTime)
	assert.Equal(t, "Half Day", resp.StatusLabel)
}

func TestAttendanceService_List(t *testing.T) {
	repo := &fakeAttendanceRepository{page: attendance.Page{
		Entries: []attendance.Entry{
			entry("2025-03-03", attendance.StatusPresent),
			entry("2025-03-04", attendance.StatusAbsent),
		},
		Total: 42,
	}}
	svc := NewAttendanceService(repo, &fakeLeaveService{approvedDays: 1}, nil, calendar.New(nil))

	resp, err := svc.List(context.Background(), attendance.Filter{Page: 7})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, 5, resp.Pagination.TotalPages)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.Pagination.Window)
	assert.Nil(t, resp.Summary)

	resp, err = svc.List(context.Background(), attendance.Filter{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 1, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.Leave)
	// 31 days less 5 Sundays and 2 Saturdays
	assert.Equal(t, 24, resp.Summary.WorkingDays)

	_, err = svc.List(context.Background(), attendance.Filter{Month: 3})
	assert.Error(t, err)
}

func TestAttendanceService_MonthReport(t *testing.T) {
	repo := &fakeAttendanceRepository{page: attendance.Page{Entries: []attendance.Entry{
		entry("2025-03-04", attendance.StatusPresent),
		entry("2025-03-03", attendance.StatusPresent),
		entry("2025-02-28", attendance.StatusAbsent),
	}}}
	store := appstatesvc.NewStore(memory.NewAppStateRepository(time.Now))
	ctx := device.WithID(context.Background(), "device-1")
	require.NoError(t, store.SetAuthState(ctx, appstate.AuthState{IsAuthenticated: true, Profile: profile.Profile{EmployeeID: "EMP042", Name: "Asha Verma"}}))

	cal := calendar.New([]calendar.Holiday{{Date: "2025-03-14", Name: "Holi"}})
	svc := NewAttendanceService(repo, &fakeLeaveService{}, store, cal)

	report, err := svc.MonthReport(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", report.EmployeeName)
	require.Len(t, report.Entries, 2, "rows outside the month are dropped")
	assert.Equal(t, "2025-03-03", report.Entries[0].Date)
	assert.Equal(t, 2, report.Summary.Present)
	assert.Equal(t, 23, report.Summary.WorkingDays)
	assert.Equal(t, "Holi", report.OffDays["2025-03-14"])

	_, err = svc.MonthReport(ctx, 2025, 13)
	assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
}
