// Package dbsource fetches stored routine source text from a live database
// for the root sqlfmt package to format. It is read-only introspection
// only: nothing here executes or mutates user schema, since the core
// pipeline itself never touches the network.
package dbsource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
)

// DB is the subset of *sql.DB that fetching a routine definition needs.
type DB interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Error wraps a fetch failure with the routine name that failed, so callers
// can report which object could not be read without parsing the message.
type Error struct {
	Routine string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dbsource: fetching %s: %v", e.Routine, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FetchRoutineSource returns the CREATE-time source text of a stored
// procedure or function, dispatching on the sql.DB driver type to pick
// between the Postgres and SQL Server catalog queries.
func FetchRoutineSource(ctx context.Context, db *sql.DB, schema, name string) (string, error) {
	switch db.Driver().(type) {
	case *mssql.Driver:
		return fetchMSSQL(ctx, db, schema, name)
	case *stdlib.Driver:
		return fetchPostgres(ctx, db, schema, name)
	default:
		return "", &Error{Routine: name, Err: fmt.Errorf("unsupported driver %T", db.Driver())}
	}
}

func fetchMSSQL(ctx context.Context, db DB, schema, name string) (string, error) {
	const q = `select sm.definition
		from sys.sql_modules sm
		join sys.objects o on o.object_id = sm.object_id
		where schema_name(o.schema_id) = @p1 and o.name = @p2`
	var def string
	if err := db.QueryRowContext(ctx, q, schema, name).Scan(&def); err != nil {
		return "", &Error{Routine: schema + "." + name, Err: err}
	}
	return def, nil
}

func fetchPostgres(ctx context.Context, db DB, schema, name string) (string, error) {
	const q = `select pg_get_functiondef(p.oid)
		from pg_proc p
		join pg_namespace n on n.oid = p.pronamespace
		where n.nspname = $1 and p.proname = $2`
	var def string
	if err := db.QueryRowContext(ctx, q, schema, name).Scan(&def); err != nil {
		return "", &Error{Routine: schema + "." + name, Err: err}
	}
	return def, nil
}
