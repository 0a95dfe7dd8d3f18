package appstate

import "context"

// Store is the typed view over a device's state. The device comes from ctx.
// Unreadable values behave as absent.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	AuthState(ctx context.Context) (AuthState, error)
	SetAuthState(ctx context.Context, state AuthState) error

	PunchRecord(ctx context.Context) (PunchRecord, error)
	SetPunchRecord(ctx context.Context, record PunchRecord) error
	ClearPunchRecord(ctx context.Context) error

	ClearAll(ctx context.Context) error
}
