package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/database"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureAppStateSchema(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE app_state")
	require.NoError(t, err)

	return db
}
