package http

import (
	"log/slog"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ListPaymentDetails(w http.ResponseWriter, r *http.Request)
	CreatePaymentDetails(w http.ResponseWriter, r *http.Request)
	UpdatePaymentDetails(w http.ResponseWriter, r *http.Request)
	DeletePaymentDetails(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandlerImpl{
		profileService: profileService,
	}
}

// Get implements ProfileHandler.
func (h *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileService.GetProfile(r.Context())
	if err != nil {
		slog.Error("Profile fetch error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, p)
}

// ListPaymentDetails implements ProfileHandler.
func (h *profileHandlerImpl) ListPaymentDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.profileService.ListPaymentDetails(r.Context())
	if err != nil {
		slog.Error("Payment details list error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, details)
}

// CreatePaymentDetails implements ProfileHandler.
func (h *profileHandlerImpl) CreatePaymentDetails(w http.ResponseWriter, r *http.Request) {
	var req profile.PaymentDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Payment details decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	details, err := h.profileService.CreatePaymentDetails(r.Context(), req)
	if err != nil {
		slog.Error("Payment details create error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment details saved", details)
}

// UpdatePaymentDetails implements ProfileHandler.
func (h *profileHandlerImpl) UpdatePaymentDetails(w http.ResponseWriter, r *http.Request) {
	var req profile.PaymentDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Payment details decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	details, err := h.profileService.UpdatePaymentDetails(r.Context(), req)
	if err != nil {
		slog.Error("Payment details update error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment details updated", details)
}

// DeletePaymentDetails implements ProfileHandler.
func (h *profileHandlerImpl) DeletePaymentDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.profileService.DeletePaymentDetails(r.Context(), id); err != nil {
		slog.Error("Payment details delete error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment details deleted", nil)
}
