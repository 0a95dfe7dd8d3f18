package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/report"
)

type DocumentHandler interface {
	AttendanceSheet(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewDocumentHandler(attendanceService attendance.AttendanceService) DocumentHandler {
	return &documentHandlerImpl{
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

// AttendanceSheet implements DocumentHandler. Month and year default to the current month.
func (h *documentHandlerImpl) AttendanceSheet(w http.ResponseWriter, r *http.Request) {
	month, err := queryInt(r, "month")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	now := h.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	monthReport, err := h.attendanceService.MonthReport(r.Context(), year, month)
	if err != nil {
		slog.Error("Attendance report error", "error", err)
		response.HandleError(w, err)
		return
	}

	data, err := report.AttendanceWorkbook(monthReport)
	if err != nil {
		slog.Error("Attendance workbook error", "error", err)
		response.InternalServerError(w, "Failed to build the attendance sheet")
		return
	}

	w.Header().Set("Content-Type", report.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(year, month)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("Attendance sheet write interrupted", "error", err)
	}
}
