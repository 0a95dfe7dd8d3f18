package http

import (
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type LocationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &locationHandlerImpl{
		locationService: locationService,
	}
}

// List implements LocationHandler.
func (h *locationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.locationService.ReferenceSet(r.Context()))
}
