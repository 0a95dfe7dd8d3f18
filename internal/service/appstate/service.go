package appstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	json "github.com/goccy/go-json"
)

type storeImpl struct {
	repo appstate.AppStateRepository
}

func NewStore(repo appstate.AppStateRepository) appstate.Store {
	return &storeImpl{repo: repo}
}

func deviceID(ctx context.Context) (string, error) {
	id, ok := device.FromContext(ctx)
	if !ok || id == "" {
		return "", appstate.ErrMissingDevice
	}
	return id, nil
}

// read decodes key into out. Absent or unreadable values report found=false.
func (s *storeImpl) read(ctx context.Context, key string, out interface{}) (bool, error) {
	id, err := deviceID(ctx)
	if err != nil {
		return false, err
	}

	raw, err := s.repo.Get(ctx, id, key)
	if err != nil {
		if errors.Is(err, appstate.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("Discarding unreadable app state", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *storeImpl) write(ctx context.Context, key string, value interface{}) error {
	id, err := deviceID(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.repo.Put(ctx, id, key, raw)
}

func (s *storeImpl) remove(ctx context.Context, keys ...string) error {
	id, err := deviceID(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, keys...)
}

// Token implements appstate.Store.
func (s *storeImpl) Token(ctx context.Context) (string, error) {
	var token string
	if _, err := s.read(ctx, appstate.KeyToken, &token); err != nil {
		return "", err
	}
	return token, nil
}

// SetToken implements appstate.Store.
func (s *storeImpl) SetToken(ctx context.Context, token string) error {
	return s.write(ctx, appstate.KeyToken, token)
}

// ClearToken implements appstate.Store.
func (s *storeImpl) ClearToken(ctx context.Context) error {
	return s.remove(ctx, appstate.KeyToken)
}

// AuthState implements appstate.Store.
func (s *storeImpl) AuthState(ctx context.Context) (appstate.AuthState, error) {
	var state appstate.AuthState
	found, err := s.read(ctx, appstate.KeyAuthState, &state)
	if err != nil || !found {
		return appstate.AuthState{}, err
	}
	return state, nil
}

// SetAuthState implements appstate.Store.
func (s *storeImpl) SetAuthState(ctx context.Context, state appstate.AuthState) error {
	return s.write(ctx, appstate.KeyAuthState, state)
}

// PunchRecord implements appstate.Store. Records of another version read as not punched in.
func (s *storeImpl) PunchRecord(ctx context.Context) (appstate.PunchRecord, error) {
	var record appstate.PunchRecord
	found, err := s.read(ctx, appstate.KeyPunchRecord, &record)
	if err != nil || !found {
		return appstate.PunchRecord{}, err
	}
	if record.Version != appstate.PunchRecordVersion {
		slog.Warn("Discarding punch record of unknown version", "version", record.Version)
		return appstate.PunchRecord{}, nil
	}
	return record, nil
}

// SetPunchRecord implements appstate.Store.
func (s *storeImpl) SetPunchRecord(ctx context.Context, record appstate.PunchRecord) error {
	record.Version = appstate.PunchRecordVersion
	return s.write(ctx, appstate.KeyPunchRecord, record)
}

// ClearPunchRecord implements appstate.Store.
func (s *storeImpl) ClearPunchRecord(ctx context.Context) error {
	return s.remove(ctx, appstate.KeyPunchRecord)
}

// ClearAll implements appstate.Store.
func (s *storeImpl) ClearAll(ctx context.Context) error {
	id, err := deviceID(ctx)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, id)
}
