package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/credential"
)

type SessionServiceImpl struct {
	session.AuthRepository
	store   appstate.Store
	decoder credential.Decoder
}

func NewSessionService(authRepository session.AuthRepository, store appstate.Store, decoder credential.Decoder) session.SessionService {
	return &SessionServiceImpl{
		AuthRepository: authRepository,
		store:          store,
		decoder:        decoder,
	}
}

// Login implements session.SessionService.
func (s *SessionServiceImpl) Login(ctx context.Context, req session.LoginRequest) (profile.Profile, error) {
	if err := req.Validate(); err != nil {
		return profile.Profile{}, err
	}

	result, err := s.AuthRepository.Login(ctx, req)
	if err != nil {
		return profile.Profile{}, err
	}

	// A token the guard would reject right away is useless to store
	if _, err := s.decoder.Decode(result.Token); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: issued credential is unusable: %v", remote.ErrUnexpectedResponse, err)
	}

	previous, err := s.store.AuthState(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	if previous.Profile.EmployeeID != "" && previous.Profile.EmployeeID != result.Profile.EmployeeID {
		// Someone else was punched in on this device
		if err := s.store.ClearPunchRecord(ctx); err != nil {
			return profile.Profile{}, err
		}
	}

	if err := s.store.SetToken(ctx, result.Token); err != nil {
		return profile.Profile{}, fmt.Errorf("failed to store credential: %w", err)
	}
	if err := s.store.SetAuthState(ctx, appstate.AuthState{IsAuthenticated: true, Profile: result.Profile}); err != nil {
		return profile.Profile{}, fmt.Errorf("failed to store auth state: %w", err)
	}

	return result.Profile.WithPlaceholders(), nil
}

// Logout implements session.SessionService.
func (s *SessionServiceImpl) Logout(ctx context.Context) error {
	return s.store.ClearAll(ctx)
}

// Authorize implements session.SessionService.
func (s *SessionServiceImpl) Authorize(ctx context.Context) (session.Authorized, error) {
	raw, err := s.store.Token(ctx)
	if err != nil {
		return session.Authorized{}, err
	}

	token, err := s.decoder.Decode(raw)
	if err != nil {
		if raw != "" {
			if clearErr := s.Invalidate(ctx); clearErr != nil {
				slog.Error("Failed to clear invalid credential", "error", clearErr)
			}
		}
		return session.Authorized{}, err
	}

	return session.Authorized{Raw: raw, Token: token}, nil
}

// Invalidate implements session.SessionService.
func (s *SessionServiceImpl) Invalidate(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		return err
	}

	state, err := s.store.AuthState(ctx)
	if err != nil || !state.IsAuthenticated {
		return err
	}
	state.IsAuthenticated = false
	return s.store.SetAuthState(ctx, state)
}
