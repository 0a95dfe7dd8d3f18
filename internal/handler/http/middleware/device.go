package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
)

// DeviceCookie identifies the browser by a signed cookie, issuing one on first visit.
type DeviceCookie struct {
	Signer *device.Signer
	Name   string
	MaxAge time.Duration
	Secure bool
}

func (d DeviceCookie) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(d.Name); err == nil {
			if id, err := d.Signer.Verify(c.Value); err == nil {
				next.ServeHTTP(w, r.WithContext(device.WithID(r.Context(), id)))
				return
			}
			slog.Warn("Replacing invalid device cookie", "remote_addr", r.RemoteAddr)
		}

		id, value, err := d.Signer.Issue()
		if err != nil {
			slog.Error("Failed to issue device cookie", "error", err)
			response.InternalServerError(w, "Failed to identify device")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     d.Name,
			Value:    value,
			Path:     "/",
			MaxAge:   int(d.MaxAge.Seconds()),
			HttpOnly: true,
			Secure:   d.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(device.WithID(r.Context(), id)))
	})
}
