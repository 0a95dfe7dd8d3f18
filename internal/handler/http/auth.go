package http

import (
	"log/slog"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	sessionService session.SessionService
}

func NewAuthHandler(sessionService session.SessionService) AuthHandler {
	return &authHandlerImpl{
		sessionService: sessionService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq session.LoginRequest

	// 1. Decode JSON
	if err := decodeJSON(r, &loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	p, err := h.sessionService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "employee_id", p.EmployeeID)
	response.SuccessWithMessage(w, "Login successful", p)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Logout(r.Context()); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Logged out", map[string]string{"redirect": response.LoginPath})
}
