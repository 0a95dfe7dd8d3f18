package memory

import (
	"context"
	"sync"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
)

type deviceState struct {
	values    map[string][]byte
	updatedAt time.Time
}

type appStateRepository struct {
	mu      sync.RWMutex
	devices map[string]*deviceState
	now     func() time.Time
}

// NewAppStateRepository keeps device state in process memory; it is lost on restart.
func NewAppStateRepository(now func() time.Time) appstate.AppStateRepository {
	if now == nil {
		now = time.Now
	}
	return &appStateRepository{
		devices: make(map[string]*deviceState),
		now:     now,
	}
}

func (r *appStateRepository) Get(ctx context.Context, deviceID, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.devices[deviceID]
	if !ok {
		return nil, appstate.ErrNotFound
	}
	value, ok := state.values[key]
	if !ok {
		return nil, appstate.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *appStateRepository) Put(ctx context.Context, deviceID, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.devices[deviceID]
	if !ok {
		state = &deviceState{values: make(map[string][]byte)}
		r.devices[deviceID] = state
	}
	state.values[key] = append([]byte(nil), value...)
	state.updatedAt = r.now()
	return nil
}

func (r *appStateRepository) Delete(ctx context.Context, deviceID string, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.devices[deviceID]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(state.values, key)
	}
	if len(state.values) == 0 {
		delete(r.devices, deviceID)
	}
	return nil
}

func (r *appStateRepository) Clear(ctx context.Context, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.devices, deviceID)
	return nil
}

// PruneBefore counts removed keys, matching the database stores.
func (r *appStateRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, state := range r.devices {
		if state.updatedAt.Before(cutoff) {
			removed += int64(len(state.values))
			delete(r.devices, id)
		}
	}
	return removed, nil
}
