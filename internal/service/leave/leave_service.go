package leave

import (
	"context"
	"fmt"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/pagination"
)

const (
	scanPageSize = 100
	maxScanPages = 50
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	calendar      *calendar.Calendar
	paidAllowance float64
}

func NewLeaveService(leaveRepository leave.LeaveRepository, cal *calendar.Calendar, paidAllowance float64) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		calendar:        cal,
		paidAllowance:   paidAllowance,
	}
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, page, limit int) (leave.ListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	result, err := s.LeaveRepository.List(ctx, page, limit)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	all, err := s.all(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}

	requests := make([]leave.RequestResponse, 0, len(result.Requests))
	for _, r := range result.Requests {
		requests = append(requests, leave.ToResponse(r))
	}

	totalPages := result.TotalPages
	if totalPages == 0 {
		totalPages = pagination.TotalPages(result.Total, limit)
	}

	return leave.ListResponse{
		Requests: requests,
		Summary:  Summarize(all, s.paidAllowance),
		Pagination: leave.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      result.Total,
			TotalPages: totalPages,
			Window:     pagination.Window(page, totalPages, pagination.MaxButtons),
		},
	}, nil
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	created, err := s.LeaveRepository.Create(ctx, req)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return leave.ToResponse(created), nil
}

// ApprovedDaysIn implements leave.LeaveService.
func (s *LeaveServiceImpl) ApprovedDaysIn(ctx context.Context, year, month int) (int, error) {
	approved, err := s.ApprovedDays(ctx)
	if err != nil {
		return 0, err
	}
	return approved.In(year, month), nil
}

// ApprovedDays implements leave.LeaveService.
func (s *LeaveServiceImpl) ApprovedDays(ctx context.Context) (leave.ApprovedDays, error) {
	requests, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	approved := make(leave.ApprovedDays)
	for _, r := range requests {
		if r.Status != leave.StatusApproved {
			continue
		}
		for _, d := range r.Dates() {
			working, err := s.calendar.IsWorkingDay(d)
			if err != nil {
				return nil, err
			}
			if working {
				approved[d.Format("2006-01-02")] = struct{}{}
			}
		}
	}
	return approved, nil
}

// all pages through every request of the employee.
func (s *LeaveServiceImpl) all(ctx context.Context) ([]leave.Request, error) {
	var requests []leave.Request
	for page := 1; page <= maxScanPages; page++ {
		result, err := s.LeaveRepository.List(ctx, page, scanPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list leave requests: %w", err)
		}
		requests = append(requests, result.Requests...)

		totalPages := result.TotalPages
		if totalPages == 0 {
			totalPages = pagination.TotalPages(result.Total, scanPageSize)
		}
		if len(result.Requests) < scanPageSize || page >= totalPages {
			break
		}
	}
	return requests, nil
}

// Summarize aggregates day totals by pay type and counts requests by status.
// Only approved paid days draw on the allowance.
func Summarize(requests []leave.Request, paidAllowance float64) leave.Summary {
	summary := leave.Summary{PaidAllowance: paidAllowance}
	var approvedPaid float64
	for _, r := range requests {
		switch r.Status {
		case leave.StatusPending:
			summary.Pending++
		case leave.StatusApproved:
			summary.Approved++
		case leave.StatusRejected:
			summary.Rejected++
		case leave.StatusCancelled:
			summary.Cancelled++
		}

		if r.Status == leave.StatusRejected || r.Status == leave.StatusCancelled {
			continue
		}
		if r.PayType == leave.PayTypeUnpaid {
			summary.UnpaidDays += r.Days()
		} else {
			summary.PaidDays += r.Days()
			if r.Status == leave.StatusApproved {
				approvedPaid += r.Days()
			}
		}
	}
	summary.PaidBalance = paidAllowance - approvedPaid
	if summary.PaidBalance < 0 {
		summary.PaidBalance = 0
	}
	return summary
}
