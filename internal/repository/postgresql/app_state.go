package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const appStateSchema = `
	CREATE TABLE IF NOT EXISTS app_state (
		device_id  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (device_id, key)
	);
	CREATE INDEX IF NOT EXISTS idx_app_state_updated_at ON app_state (updated_at);
`

type appStateRepository struct {
	db *database.DB
}

func NewAppStateRepository(db *database.DB) appstate.AppStateRepository {
	return &appStateRepository{db: db}
}

// EnsureAppStateSchema creates the app_state table when missing.
func EnsureAppStateSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, appStateSchema); err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

// Get implements appstate.AppStateRepository.
func (r *appStateRepository) Get(ctx context.Context, deviceID, key string) ([]byte, error) {
	q := querier(ctx, r.db)

	var value []byte
	err := q.QueryRow(ctx,
		`SELECT value FROM app_state WHERE device_id = $1 AND key = $2`,
		deviceID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appstate.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get app state %s: %w", key, err)
	}
	return value, nil
}

// Put implements appstate.AppStateRepository.
// Writing any key keeps the whole device alive for the janitor.
func (r *appStateRepository) Put(ctx context.Context, deviceID, key string, value []byte) error {
	return withTx(ctx, r.db, func(ctx context.Context) error {
		q := querier(ctx, r.db)

		_, err := q.Exec(ctx, `
			INSERT INTO app_state (device_id, key, value, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (device_id, key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			deviceID, key, value,
		)
		if err != nil {
			return fmt.Errorf("failed to put app state %s: %w", key, err)
		}

		_, err = q.Exec(ctx,
			`UPDATE app_state SET updated_at = NOW() WHERE device_id = $1 AND key <> $2`,
			deviceID, key,
		)
		if err != nil {
			return fmt.Errorf("failed to touch app state: %w", err)
		}
		return nil
	})
}

// Delete implements appstate.AppStateRepository.
func (r *appStateRepository) Delete(ctx context.Context, deviceID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	q := querier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM app_state WHERE device_id = $1 AND key = ANY($2)`,
		deviceID, keys,
	)
	if err != nil {
		return fmt.Errorf("failed to delete app state: %w", err)
	}
	return nil
}

// Clear implements appstate.AppStateRepository.
func (r *appStateRepository) Clear(ctx context.Context, deviceID string) error {
	q := querier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM app_state WHERE device_id = $1`, deviceID); err != nil {
		return fmt.Errorf("failed to clear app state: %w", err)
	}
	return nil
}

// PruneBefore implements appstate.AppStateRepository.
func (r *appStateRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := querier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM app_state WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune app state: %w", err)
	}
	return tag.RowsAffected(), nil
}
