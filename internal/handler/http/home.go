package http

import (
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/home"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type HomeHandler interface {
	// GetDashboard returns the cached profile, punch state and this month's figures
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type homeHandlerImpl struct {
	service home.HomeService
}

func NewHomeHandler(service home.HomeService) HomeHandler {
	return &homeHandlerImpl{service: service}
}

// GetDashboard handles GET /home
func (h *homeHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
