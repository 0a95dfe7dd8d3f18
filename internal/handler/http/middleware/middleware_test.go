package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionService struct {
	auth session.Authorized
	err  error
}

func (f *fakeSessionService) Login(ctx context.Context, req session.LoginRequest) (profile.Profile, error) {
	return profile.Profile{}, nil
}

func (f *fakeSessionService) Logout(ctx context.Context) error { return nil }

func (f *fakeSessionService) Authorize(ctx context.Context) (session.Authorized, error) {
	return f.auth, f.err
}

func (f *fakeSessionService) Invalidate(ctx context.Context) error { return nil }

func TestSessionRequired(t *testing.T) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		token, _, err := jwtauth.FromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "EMP042", token.Subject())
		assert.Equal(t, "raw-token", session.RawToken(r.Context()))
	})

	t.Run("valid", func(t *testing.T) {
		token := jwt.New()
		require.NoError(t, token.Set(jwt.SubjectKey, "EMP042"))
		guard := SessionRequired(&fakeSessionService{auth: session.Authorized{Raw: "raw-token", Token: token}})

		reached = false
		rec := httptest.NewRecorder()
		guard(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/punch", nil))
		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("expired page navigation", func(t *testing.T) {
		guard := SessionRequired(&fakeSessionService{err: session.ErrCredentialExpired})

		reached = false
		req := httptest.NewRequest(http.MethodGet, "/attendance", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()
		guard(next).ServeHTTP(rec, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("missing json client", func(t *testing.T) {
		guard := SessionRequired(&fakeSessionService{err: session.ErrMissingCredential})

		reached = false
		req := httptest.NewRequest(http.MethodPost, "/punch/in", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		guard(next).ServeHTTP(rec, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redirect":"/login"`)
	})
}

func TestDeviceCookie(t *testing.T) {
	dc := DeviceCookie{Signer: device.NewSigner("secret"), Name: "device_id", MaxAge: time.Hour}

	var seen string
	h := dc.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := device.FromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	first := seen

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, first, seen)
	assert.Empty(t, rec.Result().Cookies(), "valid cookie is not reissued")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "device_id", Value: first + ".forged"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, first, seen)
	assert.Len(t, rec.Result().Cookies(), 1)
}
