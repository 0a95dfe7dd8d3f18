package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/pagination"
)

type leaveWire struct {
	MongoID   string    `json:"_id"`
	ID        string    `json:"id"`
	From      flexTime  `json:"from"`
	StartDate flexTime  `json:"startDate"`
	To        flexTime  `json:"to"`
	EndDate   flexTime  `json:"endDate"`
	LeaveType string    `json:"leaveType"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	TotalDays flexFloat `json:"totaldays"` // matches totalDays too
	Type      string    `json:"type"`
	CreatedAt flexTime  `json:"createdAt"`
}

func (w leaveWire) toEntity() leave.Request {
	from := w.From
	if !from.Valid {
		from = w.StartDate
	}
	to := w.To
	if !to.Valid {
		to = w.EndDate
	}
	if !to.Valid {
		to = from
	}

	return leave.Request{
		ID:        firstNonEmpty(w.MongoID, w.ID),
		From:      from.Time,
		To:        to.Time,
		LeaveType: w.LeaveType,
		Reason:    w.Reason,
		Status:    leave.ParseStatus(w.Status),
		TotalDays: float64(w.TotalDays),
		PayType:   leave.ParsePayType(w.Type),
		AppliedAt: w.CreatedAt.Ptr(),
	}
}

type createLeaveWire struct {
	From      string `json:"from"`
	To        string `json:"to"`
	LeaveType string `json:"leaveType"`
	Reason    string `json:"reason"`
	TotalDays int    `json:"totaldays"`
	Type      string `json:"type"`
}

type leaveRepository struct {
	client *Client
	now    func() time.Time
}

func NewLeaveRepository(client *Client) leave.LeaveRepository {
	return &leaveRepository{client: client, now: time.Now}
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, page, limit int) (leave.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	env, err := r.client.GetJSON(ctx, "/leave", query)
	if err != nil {
		return leave.Page{}, err
	}

	var wires []leaveWire
	if err := env.Decode(&wires); err != nil {
		return leave.Page{}, err
	}

	requests := make([]leave.Request, 0, len(wires))
	for _, w := range wires {
		requests = append(requests, w.toEntity())
	}

	result := leave.Page{
		Requests:   requests,
		Page:       env.Meta.Page,
		Limit:      env.Meta.Limit,
		Total:      env.Meta.Total,
		TotalPages: env.Meta.TotalPages,
	}
	if result.Page == 0 {
		result.Page = page
	}
	if result.Limit == 0 {
		result.Limit = limit
	}
	if result.Total == 0 {
		result.Total = int64(len(requests))
	}
	if result.TotalPages == 0 {
		result.TotalPages = pagination.TotalPages(result.Total, result.Limit)
	}
	return result, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req leave.CreateRequest) (leave.Request, error) {
	env, err := r.client.SendJSON(ctx, http.MethodPost, "/leave", createLeaveWire{
		From:      req.From,
		To:        req.To,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		TotalDays: req.TotalDays(),
		Type:      req.Type,
	})
	if err != nil {
		return leave.Request{}, err
	}

	var wire leaveWire
	if env.First() == nil || env.DecodeFirst(&wire) != nil {
		// Acknowledged without echoing the request
		from, _ := time.Parse("2006-01-02", req.From)
		to, _ := time.Parse("2006-01-02", req.To)
		now := r.now()
		return leave.Request{
			From:      from,
			To:        to,
			LeaveType: req.LeaveType,
			Reason:    req.Reason,
			Status:    leave.StatusPending,
			TotalDays: float64(req.TotalDays()),
			PayType:   leave.ParsePayType(req.Type),
			AppliedAt: &now,
		}, nil
	}
	return wire.toEntity(), nil
}
