package transaction_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
)

func newTestPool(t *testing.T) *platformsqlite.Pool {
	t.Helper()

	pool, err := platformsqlite.Open(platformsqlite.Config{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		PoolSize: 2,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn,
				`CREATE TABLE IF NOT EXISTS items (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`, nil)
		},
	})
	if err != nil {
		t.Fatalf("opening pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func countItems(t *testing.T, pool *platformsqlite.Pool) int64 {
	t.Helper()

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("taking conn: %v", err)
	}
	defer pool.Put(conn)

	var count int64
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM items`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	return count
}

func insertItem(ctx context.Context, name string) error {
	conn, ok := platformsqlite.ConnFromContext(ctx)
	if !ok {
		return errors.New("no connection in context")
	}
	return sqlitex.Execute(conn, `INSERT INTO items (name) VALUES (?)`,
		&sqlitex.ExecOptions{Args: []any{name}})
}

func TestSQLiteScope_Execute_Commits(t *testing.T) {
	pool := newTestPool(t)
	scope := transaction.NewSQLiteScope(pool)

	err := scope.Execute(context.Background(), func(ctx context.Context) error {
		if err := insertItem(ctx, "a"); err != nil {
			return err
		}
		return insertItem(ctx, "b")
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countItems(t, pool); got != 2 {
		t.Errorf("expected 2 committed rows, got %d", got)
	}
}

func TestSQLiteScope_Execute_RollsBackOnError(t *testing.T) {
	pool := newTestPool(t)
	scope := transaction.NewSQLiteScope(pool)
	failure := errors.New("validation failed")

	err := scope.Execute(context.Background(), func(ctx context.Context) error {
		if err := insertItem(ctx, "a"); err != nil {
			return err
		}
		return failure
	})

	if !errors.Is(err, failure) {
		t.Fatalf("expected the fn error, got %v", err)
	}
	if got := countItems(t, pool); got != 0 {
		t.Errorf("expected rollback to leave 0 rows, got %d", got)
	}
}

func TestExecuteWithResult(t *testing.T) {
	pool := newTestPool(t)
	scope := transaction.NewSQLiteScope(pool)

	id, err := transaction.ExecuteWithResult(context.Background(), scope,
		func(ctx context.Context) (int64, error) {
			if err := insertItem(ctx, "a"); err != nil {
				return 0, err
			}
			conn, _ := platformsqlite.ConnFromContext(ctx)
			return conn.LastInsertRowID(), nil
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected a row id")
	}
	if got := countItems(t, pool); got != 1 {
		t.Errorf("expected 1 committed row, got %d", got)
	}
}
