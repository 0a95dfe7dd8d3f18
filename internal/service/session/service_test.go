package session

import (
	"context"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/credential"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/memory"
	appstatesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/appstate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeAuthRepository struct {
	result session.LoginResult
	err    error
}

func (f *fakeAuthRepository) Login(ctx context.Context, req session.LoginRequest) (session.LoginResult, error) {
	return f.result, f.err
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	_, token, err := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil).Encode(map[string]interface{}{
		"id":  "EMP-7",
		"exp": exp.Unix(),
	})
	require.NoError(t, err)
	return token
}

func setup(t *testing.T, repo *fakeAuthRepository) (session.SessionService, appstate.Store, context.Context) {
	t.Helper()
	store := appstatesvc.NewStore(memory.NewAppStateRepository(nil))
	decoder := credential.NewJWTDecoder(func() time.Time { return fixedNow })
	return NewSessionService(repo, store, decoder), store, device.WithID(context.Background(), "device-1")
}

func TestSessionService_Login(t *testing.T) {
	token := mintToken(t, fixedNow.Add(time.Hour))
	repo := &fakeAuthRepository{result: session.LoginResult{
		Token:   token,
		Profile: profile.Profile{EmployeeID: "EMP-7", Name: "Asha", Email: "asha@example.com"},
	}}
	svc, store, ctx := setup(t, repo)

	p, err := svc.Login(ctx, session.LoginRequest{Email: " asha@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)

	stored, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	state, err := store.AuthState(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "EMP-7", state.Profile.EmployeeID)

	authorized, err := svc.Authorize(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, authorized.Raw)
}

func TestSessionService_LoginValidation(t *testing.T) {
	svc, _, ctx := setup(t, &fakeAuthRepository{})

	_, err := svc.Login(ctx, session.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestSessionService_LoginRejectsExpiredIssue(t *testing.T) {
	repo := &fakeAuthRepository{result: session.LoginResult{Token: mintToken(t, fixedNow.Add(-time.Hour))}}
	svc, store, ctx := setup(t, repo)

	_, err := svc.Login(ctx, session.LoginRequest{Email: "asha@example.com", Password: "secret"})
	assert.ErrorIs(t, err, remote.ErrUnexpectedResponse)

	stored, _ := store.Token(ctx)
	assert.Empty(t, stored)
}

func TestSessionService_LoginAsAnotherEmployeeDropsPunchRecord(t *testing.T) {
	repo := &fakeAuthRepository{result: session.LoginResult{
		Token:   mintToken(t, fixedNow.Add(time.Hour)),
		Profile: profile.Profile{EmployeeID: "EMP-8"},
	}}
	svc, store, ctx := setup(t, repo)

	require.NoError(t, store.SetAuthState(ctx, appstate.AuthState{Profile: profile.Profile{EmployeeID: "EMP-7"}}))
	require.NoError(t, store.SetPunchRecord(ctx, appstate.PunchRecord{IsPunchedIn: true}))

	_, err := svc.Login(ctx, session.LoginRequest{Email: "b@example.com", Password: "secret"})
	require.NoError(t, err)

	record, err := store.PunchRecord(ctx)
	require.NoError(t, err)
	assert.False(t, record.IsPunchedIn)
}

func TestSessionService_AuthorizeExpiredEqualsMissing(t *testing.T) {
	svc, store, ctx := setup(t, &fakeAuthRepository{})

	_, err := svc.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrMissingCredential)

	require.NoError(t, store.SetToken(ctx, mintToken(t, fixedNow.Add(-time.Second))))
	require.NoError(t, store.SetAuthState(ctx, appstate.AuthState{IsAuthenticated: true, Profile: profile.Profile{Name: "Asha"}}))

	_, err = svc.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrCredentialExpired)

	stored, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "expired credential must be deleted")

	state, err := store.AuthState(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, "Asha", state.Profile.Name)

	_, err = svc.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrMissingCredential)
}

func TestSessionService_Logout(t *testing.T) {
	svc, store, ctx := setup(t, &fakeAuthRepository{})

	require.NoError(t, store.SetToken(ctx, "a.b.c"))
	require.NoError(t, store.SetPunchRecord(ctx, appstate.PunchRecord{IsPunchedIn: true}))

	require.NoError(t, svc.Logout(ctx))

	stored, _ := store.Token(ctx)
	assert.Empty(t, stored)
	record, _ := store.PunchRecord(ctx)
	assert.False(t, record.IsPunchedIn)
}
