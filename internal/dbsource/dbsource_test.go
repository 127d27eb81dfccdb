package dbsource

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// TestFetchRoutineSourcePostgres needs a live Postgres instance. It skips
// rather than panics when the DSN env var is missing: a formatter
// library's test suite must be runnable without a database.
func TestFetchRoutineSourcePostgres(t *testing.T) {
	dsn := os.Getenv("SQLFMT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SQLFMT_TEST_POSTGRES_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(context.Background(), `
		create or replace function sqlfmt_test_fn() returns int as $$
		begin
			return 1;
		end;
		$$ language plpgsql;
	`)
	require.NoError(t, err)
	defer db.ExecContext(context.Background(), `drop function sqlfmt_test_fn()`)

	def, err := FetchRoutineSource(context.Background(), db, "public", "sqlfmt_test_fn")
	require.NoError(t, err)
	require.Contains(t, def, "sqlfmt_test_fn")
}
