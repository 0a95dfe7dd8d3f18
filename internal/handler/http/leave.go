package http

import (
	"log/slog"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("Leave list error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Pagination.Page,
		Limit:      result.Pagination.Limit,
		TotalItems: result.Pagination.Total,
		TotalPages: result.Pagination.TotalPages,
	})
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Leave create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Leave create error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}
