package session

import (
	"context"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Authorized is a stored credential that passed the local validity check.
type Authorized struct {
	Raw   string
	Token jwt.Token
}

type SessionService interface {
	// Login exchanges credentials for a token and caches the profile
	Login(ctx context.Context, req LoginRequest) (profile.Profile, error)

	// Logout clears every key the device holds
	Logout(ctx context.Context) error

	// Authorize checks the device's stored credential, deleting it when invalid
	Authorize(ctx context.Context) (Authorized, error)

	// Invalidate drops the credential after the backend refused it
	Invalidate(ctx context.Context) error
}
