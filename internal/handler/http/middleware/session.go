package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// SessionRequired lets a request through only with a locally valid credential.
// Browsers navigating to a page are redirected to the login page; API clients get a 401
// carrying the redirect target.
func SessionRequired(sessions session.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			auth, err := sessions.Authorize(r.Context())
			if err != nil {
				if !isCredentialError(err) {
					slog.Error("Session check failed", "error", err)
				}
				if WantsHTML(r) {
					http.Redirect(w, r, response.LoginPath, http.StatusSeeOther)
					return
				}
				response.SessionRequired(w, "Please log in to continue")
				return
			}

			ctx := jwtauth.NewContext(r.Context(), auth.Token, nil)
			ctx = session.WithRawToken(ctx, auth.Raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func isCredentialError(err error) bool {
	return errors.Is(err, session.ErrMissingCredential) ||
		errors.Is(err, session.ErrMalformedCredential) ||
		errors.Is(err, session.ErrCredentialExpired)
}

// WantsHTML reports whether the request is a page navigation rather than an API call.
func WantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
