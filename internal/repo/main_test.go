package repo_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/migrations"
	"github.com/rbe-dev-920/tce-serv/testutil"
)

// TestMain migrates the integration database once for the whole package.
// Individual tests open transactions that are rolled back, so the schema is
// the only shared state.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		db := testutil.MustOpenSQLDB(dsn)

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
		if err != nil {
			panic("repo_test.TestMain: goose provider: " + err.Error())
		}
		if _, err := provider.Up(context.Background()); err != nil {
			panic("repo_test.TestMain: goose up: " + err.Error())
		}
		db.Close()
	}

	os.Exit(m.Run())
}

// beginTx opens a transaction that is rolled back when the test finishes,
// giving each test a clean database view. Skips when TEST_DATABASE_URL is
// not set.
func beginTx(t *testing.T) pgx.Tx {
	t.Helper()

	pool := testutil.NewPool(t)
	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}
