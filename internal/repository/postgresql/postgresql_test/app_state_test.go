package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppStateRepository_PutGetDelete(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAppStateRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "device-1", appstate.KeyToken)
	assert.ErrorIs(t, err, appstate.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "device-1", appstate.KeyToken, []byte(`"abc"`)))
	require.NoError(t, repo.Put(ctx, "device-1", appstate.KeyToken, []byte(`"def"`)))
	require.NoError(t, repo.Put(ctx, "device-1", appstate.KeyAuthState, []byte(`{"isAuthenticated": true}`)))

	value, err := repo.Get(ctx, "device-1", appstate.KeyToken)
	require.NoError(t, err)
	assert.JSONEq(t, `"def"`, string(value))

	require.NoError(t, repo.Delete(ctx, "device-1", appstate.KeyToken))
	_, err = repo.Get(ctx, "device-1", appstate.KeyToken)
	assert.ErrorIs(t, err, appstate.ErrNotFound)

	value, err = repo.Get(ctx, "device-1", appstate.KeyAuthState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isAuthenticated": true}`, string(value))
}

func TestAppStateRepository_ClearIsPerDevice(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAppStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "device-1", appstate.KeyToken, []byte(`"a"`)))
	require.NoError(t, repo.Put(ctx, "device-2", appstate.KeyToken, []byte(`"b"`)))

	require.NoError(t, repo.Clear(ctx, "device-1"))

	_, err := repo.Get(ctx, "device-1", appstate.KeyToken)
	assert.ErrorIs(t, err, appstate.ErrNotFound)
	_, err = repo.Get(ctx, "device-2", appstate.KeyToken)
	assert.NoError(t, err)
}

func TestAppStateRepository_PruneBefore(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAppStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "device-1", appstate.KeyToken, []byte(`"a"`)))
	_, err := db.Exec(ctx, `UPDATE app_state SET updated_at = NOW() - INTERVAL '2 days' WHERE device_id = 'device-1'`)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, "device-2", appstate.KeyToken, []byte(`"b"`)))

	removed, err := repo.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(ctx, "device-2", appstate.KeyToken)
	assert.NoError(t, err)
}
