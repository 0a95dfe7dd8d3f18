package home

import (
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
)

// ========== HOME SCREEN ==========

// Dashboard combines the cached profile, today's punch state and this month's numbers.
type Dashboard struct {
	Profile             profile.Profile     `json:"profile"`
	Greeting            string              `json:"greeting"`
	IsPunchedIn         bool                `json:"isPunchedIn"`
	PrimaryAction       string              `json:"primaryAction"`
	PunchInTime         *time.Time          `json:"punchInTime,omitempty"`
	PunchInLocationName string              `json:"punchInLocationName,omitempty"`
	AttendanceSummary   *attendance.Summary `json:"attendanceSummary,omitempty"`
	PaidLeaveBalance    *float64            `json:"paidLeaveBalance,omitempty"`
}
