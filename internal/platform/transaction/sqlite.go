package transaction

import (
	"context"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SQLiteScope implements Scope on a SQLite connection pool.
type SQLiteScope struct {
	pool *platformsqlite.Pool
}

// NewSQLiteScope creates a SQLite-backed transaction scope.
func NewSQLiteScope(pool *platformsqlite.Pool) *SQLiteScope {
	return &SQLiteScope{pool: pool}
}

// Execute runs fn inside a single IMMEDIATE transaction. The borrowed
// connection is embedded in ctx so repositories called from fn write
// through the same transaction. The transaction commits when fn returns
// nil and rolls back otherwise; nothing fn wrote is visible to other
// connections until commit.
func (s *SQLiteScope) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return err
	}
	defer endTransaction(&err)

	err = fn(platformsqlite.WithConn(ctx, conn))
	return err
}

// Compile-time interface check.
var _ Scope = (*SQLiteScope)(nil)
