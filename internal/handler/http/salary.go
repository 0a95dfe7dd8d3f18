package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/salary"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type SalaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
	now           func() time.Time
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
		now:           time.Now,
	}
}

// List implements SalaryHandler. The year defaults to the current one.
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if year == 0 {
		year = h.now().Year()
	}

	result, err := h.salaryService.List(r.Context(), year)
	if err != nil {
		slog.Error("Salary list error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
