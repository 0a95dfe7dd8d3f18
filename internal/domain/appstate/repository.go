package appstate

import (
	"context"
	"time"
)

// AppStateRepository persists raw JSON values per device and key.
type AppStateRepository interface {
	// Get returns ErrNotFound when the key is absent
	Get(ctx context.Context, deviceID, key string) ([]byte, error)
	Put(ctx context.Context, deviceID, key string, value []byte) error
	Delete(ctx context.Context, deviceID string, keys ...string) error
	Clear(ctx context.Context, deviceID string) error

	// PruneBefore removes entries not written since cutoff
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
