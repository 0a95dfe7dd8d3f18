package http

import (
	"log/slog"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.Filter
	var err error

	if filter.Page, err = queryInt(r, "page"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Month, err = queryInt(r, "month"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Year, err = queryInt(r, "year"); err != nil {
		response.HandleError(w, err)
		return
	}
	filter.StartDate = r.URL.Query().Get("startDate")
	filter.EndDate = r.URL.Query().Get("endDate")
	if status := r.URL.Query().Get("status"); status != "" {
		parsed, _ := attendance.ParseStatus(status)
		filter.Status = string(parsed)
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("Attendance list error", "error", err)
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
