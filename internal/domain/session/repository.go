package session

import "context"

// AuthRepository authenticates against the attendance backend.
type AuthRepository interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
}
