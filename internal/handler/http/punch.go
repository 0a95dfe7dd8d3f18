package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/imaging"
)

// maxFrameSize bounds an uploaded camera frame.
const maxFrameSize = 10 << 20

type PunchHandler interface {
	View(w http.ResponseWriter, r *http.Request)
	ReportLocation(w http.ResponseWriter, r *http.Request)
	StartCamera(w http.ResponseWriter, r *http.Request)
	Capture(w http.ResponseWriter, r *http.Request)
	Retake(w http.ResponseWriter, r *http.Request)
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Unmount(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
	now          func() time.Time
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
		now:          time.Now,
	}
}

// View implements PunchHandler.
func (h *punchHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.punchService.View(r.Context())
	if err != nil {
		slog.Error("Punch view error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// ReportLocation implements PunchHandler.
func (h *punchHandlerImpl) ReportLocation(w http.ResponseWriter, r *http.Request) {
	var req location.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("ReportLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.punchService.ReportLocation(r.Context(), req.Locator(h.now()))
	if err != nil {
		slog.Warn("Location not acquired", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// StartCamera implements PunchHandler.
func (h *punchHandlerImpl) StartCamera(w http.ResponseWriter, r *http.Request) {
	var req punch.CameraRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("StartCamera decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.punchService.StartCamera(r.Context(), req.Granted)
	if err != nil {
		slog.Warn("Camera not started", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// Capture implements PunchHandler. The still arrives either as a multipart
// "frame" file or as a "dataUrl" (form field or JSON body).
func (h *punchHandlerImpl) Capture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFrameSize+(1<<20))

	var (
		view punch.View
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		view, err = h.captureMultipart(r)
	} else {
		var req punch.CaptureRequest
		if decodeErr := decodeJSON(r, &req); decodeErr != nil {
			slog.Error("Capture decode error", "error", decodeErr)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		view, err = h.punchService.CaptureDataURL(r.Context(), req.DataURL)
	}
	if err != nil {
		slog.Error("Capture error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

func (h *punchHandlerImpl) captureMultipart(r *http.Request) (punch.View, error) {
	if err := r.ParseMultipartForm(maxFrameSize); err != nil {
		return punch.View{}, errors.Join(capture.ErrInvalidImageData, err)
	}

	if dataURL := r.FormValue("dataUrl"); dataURL != "" {
		return h.punchService.CaptureDataURL(r.Context(), dataURL)
	}

	file, _, err := r.FormFile("frame")
	if err != nil {
		return punch.View{}, capture.ErrEmptyFrame
	}
	defer file.Close()

	frame, err := imaging.DecodeFrame(file)
	if err != nil {
		return punch.View{}, err
	}
	return h.punchService.Capture(r.Context(), frame)
}

// Retake implements PunchHandler.
func (h *punchHandlerImpl) Retake(w http.ResponseWriter, r *http.Request) {
	view, err := h.punchService.Retake(r.Context())
	if err != nil {
		slog.Error("Retake error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// PunchIn implements PunchHandler.
func (h *punchHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.PunchIn(r.Context())
	if err != nil {
		slog.Error("PunchIn error", "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("Punched in", "punch_id", result.ID, "user_id", session.Subject(r.Context()))
	response.Created(w, result.Message, result)
}

// PunchOut implements PunchHandler.
func (h *punchHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.PunchOut(r.Context())
	if err != nil {
		slog.Error("PunchOut error", "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("Punched out", "punch_id", result.ID, "user_id", session.Subject(r.Context()))
	response.SuccessWithMessage(w, result.Message, result)
}

// Unmount implements PunchHandler.
func (h *punchHandlerImpl) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.punchService.Unmount(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Camera released", nil)
}
