package salary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/salary"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	salary.SalaryRepository
	leaveService leave.LeaveService
	calendar     *calendar.Calendar
}

func NewSalaryService(salaryRepository salary.SalaryRepository, leaveService leave.LeaveService, cal *calendar.Calendar) salary.SalaryService {
	return &SalaryServiceImpl{
		SalaryRepository: salaryRepository,
		leaveService:     leaveService,
		calendar:         cal,
	}
}

// List implements salary.SalaryService.
func (s *SalaryServiceImpl) List(ctx context.Context, year int) (salary.ListResponse, error) {
	if year != 0 && (year < 2000 || year > 2100) {
		return salary.ListResponse{}, salary.ErrInvalidYear
	}

	records, err := s.SalaryRepository.List(ctx, year)
	if err != nil {
		return salary.ListResponse{}, fmt.Errorf("failed to list salary records: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year > records[j].Year
		}
		return records[i].Month > records[j].Month
	})

	resp := salary.ListResponse{
		Year:         year,
		Records:      make([]salary.RecordResponse, 0, len(records)),
		TotalPayable: decimal.Zero,
	}
	leaveDays := &approvedLeave{service: s.leaveService}
	for _, r := range records {
		row, err := s.toResponse(ctx, r, leaveDays)
		if err != nil {
			return salary.ListResponse{}, err
		}
		resp.Records = append(resp.Records, row)
		resp.TotalPayable = resp.TotalPayable.Add(row.Payable)
	}
	return resp, nil
}

func (s *SalaryServiceImpl) toResponse(ctx context.Context, r salary.Record, leaveDays *approvedLeave) (salary.RecordResponse, error) {
	row := salary.RecordResponse{
		ID:          r.ID,
		Period:      r.Period(),
		Month:       r.Month,
		Year:        r.Year,
		BasicSalary: r.BasicSalary,
		Allowances:  r.Allowances,
		Deductions:  r.Deductions,
		Gross:       r.Gross(),
		Status:      r.Status,
	}

	if r.NetSalary != nil {
		row.Payable = r.NetSalary.Round(2)
		if r.WorkingDays != nil {
			row.WorkingDays = *r.WorkingDays
		}
		if r.PresentDays != nil {
			row.PresentDays = *r.PresentDays
		}
		return row, nil
	}

	working, present, err := s.days(ctx, r, leaveDays)
	if err != nil {
		return salary.RecordResponse{}, err
	}
	row.WorkingDays = working
	row.PresentDays = present
	row.Payable = Payable(row.Gross, present, working)
	return row, nil
}

// days fills in working and present days the backend left out.
func (s *SalaryServiceImpl) days(ctx context.Context, r salary.Record, leaveDays *approvedLeave) (working, present int, err error) {
	if r.WorkingDays != nil {
		working = *r.WorkingDays
	} else if r.Month >= 1 && r.Month <= 12 {
		working, err = s.calendar.WorkingDays(r.Year, time.Month(r.Month))
		if err != nil {
			return 0, 0, err
		}
	}

	if r.PresentDays != nil {
		return working, *r.PresentDays, nil
	}
	if r.Month < 1 || r.Month > 12 {
		return working, working, nil
	}
	approved, err := leaveDays.get(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count leave days: %w", err)
	}
	present = working - approved.In(r.Year, r.Month)
	if present < 0 {
		present = 0
	}
	return working, present, nil
}

// approvedLeave fetches the approved leave days at most once per listing.
type approvedLeave struct {
	service leave.LeaveService
	days    leave.ApprovedDays
	loaded  bool
}

func (a *approvedLeave) get(ctx context.Context) (leave.ApprovedDays, error) {
	if a.loaded {
		return a.days, nil
	}
	days, err := a.service.ApprovedDays(ctx)
	if err != nil {
		return nil, err
	}
	a.days, a.loaded = days, true
	return days, nil
}

// Payable prorates gross by present over working days, rounded to paise.
func Payable(gross decimal.Decimal, present, working int) decimal.Decimal {
	if working <= 0 {
		return gross.Round(2)
	}
	if present > working {
		present = working
	}
	if present < 0 {
		present = 0
	}
	return gross.Mul(decimal.NewFromInt(int64(present))).Div(decimal.NewFromInt(int64(working))).Round(2)
}
