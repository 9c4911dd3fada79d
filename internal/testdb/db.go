package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/platform/postgres"
)

// TestTimeout bounds each setup and teardown step.
const TestTimeout = 10 * time.Second

// Open connects to the test database and brings its schema up to date from
// a clean state. The schema is reset again when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := DatabaseURL()
	if dsn == "" {
		if Required() {
			t.Fatalf("%s is set but no test database URL was provided", EnvRequireTestDatabase)
		}
		t.Skipf("%s not set, skipping database test", EnvTestDatabaseURL)
	}

	log := logger.Discard()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dsn, log)
	require.NoError(t, err, "failed to connect to %s", postgres.MaskURL(dsn))

	require.NoError(t, postgres.Migrate(ctx, db, log, postgres.MigrateReset), "failed to reset schema")
	require.NoError(t, postgres.Migrate(ctx, db, log, postgres.MigrateUp), "failed to apply migrations")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if err := postgres.Migrate(ctx, db, log, postgres.MigrateReset); err != nil {
			t.Logf("failed to reset schema after test: %v", err)
		}
		_ = db.Close()
	})
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
