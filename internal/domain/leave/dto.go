package leave

import (
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateRequest struct {
	From      string `json:"from" validate:"required,datetime=2006-01-02"`
	To        string `json:"to" validate:"required,datetime=2006-01-02"`
	LeaveType string `json:"leaveType" validate:"required,max=50"`
	Reason    string `json:"reason" validate:"required,max=500"`
	Type      string `json:"type" validate:"omitempty,oneof=paid unpaid"`
}

func (r *CreateRequest) Validate() error {
	r.LeaveType = strings.TrimSpace(r.LeaveType)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Type == "" {
		r.Type = string(PayTypePaid)
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.To < r.From {
		return validator.ValidationErrors{{Field: "to", Message: ErrInvalidDateRange.Error()}}
	}
	return nil
}

// TotalDays is the inclusive span the request covers.
func (r CreateRequest) TotalDays() int {
	from, _ := time.Parse(dateLayout, r.From)
	to, _ := time.Parse(dateLayout, r.To)
	return SpanDays(from, to)
}

type RequestResponse struct {
	ID        string  `json:"id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	LeaveType string  `json:"leaveType"`
	Reason    string  `json:"reason"`
	Status    Status  `json:"status"`
	Days      float64 `json:"days"`
	Type      PayType `json:"type"`
}

// Summary aggregates every request of the employee.
type Summary struct {
	PaidDays      float64 `json:"paidDays"`
	UnpaidDays    float64 `json:"unpaidDays"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	Cancelled     int     `json:"cancelled"`
	PaidAllowance float64 `json:"paidAllowance"`
	PaidBalance   float64 `json:"paidBalance"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Window     []int `json:"window"`
}

type ListResponse struct {
	Requests   []RequestResponse `json:"requests"`
	Summary    Summary           `json:"summary"`
	Pagination Pagination        `json:"pagination"`
}

func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		From:      r.From.Format(dateLayout),
		To:        r.To.Format(dateLayout),
		LeaveType: r.LeaveType,
		Reason:    r.Reason,
		Status:    r.Status,
		Days:      r.Days(),
		Type:      r.PayType,
	}
}
