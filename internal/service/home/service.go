package home

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/home"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
)

type HomeServiceImpl struct {
	store             appstate.Store
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	now               func() time.Time
}

func NewHomeService(store appstate.Store, attendanceService attendance.AttendanceService, leaveService leave.LeaveService) home.HomeService {
	return &HomeServiceImpl{
		store:             store,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		now:               time.Now,
	}
}

// Greeting picks the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// GetDashboard implements home.HomeService.
func (s *HomeServiceImpl) GetDashboard(ctx context.Context) (home.Dashboard, error) {
	auth, err := s.store.AuthState(ctx)
	if err != nil {
		return home.Dashboard{}, err
	}
	record, err := s.store.PunchRecord(ctx)
	if err != nil {
		return home.Dashboard{}, err
	}

	now := s.now()
	d := home.Dashboard{
		Profile:             auth.Profile.WithPlaceholders(),
		Greeting:            Greeting(now),
		IsPunchedIn:         record.IsPunchedIn,
		PrimaryAction:       punch.LabelPunchIn,
		PunchInTime:         record.PunchInTime,
		PunchInLocationName: record.PunchInLocationName,
	}
	if record.IsPunchedIn {
		d.PrimaryAction = punch.LabelPunchOut
	}

	summary, err := s.attendanceService.MonthlySummary(ctx, now.Year(), int(now.Month()))
	switch {
	case err == nil:
		d.AttendanceSummary = &summary
	case errors.Is(err, session.ErrReauthenticationRequired):
		return home.Dashboard{}, err
	default:
		slog.Warn("Home attendance summary unavailable", "error", err)
	}

	leaves, err := s.leaveService.List(ctx, 1, 1)
	switch {
	case err == nil:
		balance := leaves.Summary.PaidBalance
		d.PaidLeaveBalance = &balance
	case errors.Is(err, session.ErrReauthenticationRequired):
		return home.Dashboard{}, err
	default:
		slog.Warn("Home leave balance unavailable", "error", err)
	}

	return d, nil
}
