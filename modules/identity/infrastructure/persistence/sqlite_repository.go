// Package persistence implements repository interfaces using specific storage backends.
// This is the outermost layer - it implements ports defined in the domain layer.
package persistence

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
)

// Schema creates the users table. Applied through the pool's OnConnect hook.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'buyer',
	created_at INTEGER NOT NULL
);
`

// SQLiteRepository implements UserRepository on the shared SQLite pool.
type SQLiteRepository struct {
	pool *platformsqlite.Pool
}

func NewSQLiteRepository(pool *platformsqlite.Pool) *SQLiteRepository {
	return &SQLiteRepository{pool: pool}
}

// conn returns the transaction's connection when running inside a
// transaction scope, otherwise borrows one from the pool. The returned
// cleanup must be called when done.
func (r *SQLiteRepository) conn(ctx context.Context) (*sqlite.Conn, func(), error) {
	if conn, ok := platformsqlite.ConnFromContext(ctx); ok {
		return conn, func() {}, nil
	}
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, func() { r.pool.Put(conn) }, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *domain.User) error {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer done()

	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				user.Email().String(),
				user.PasswordHash(),
				user.Role().String(),
				user.CreatedAt().UnixNano(),
			},
		})
	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	user.AttachID(conn.LastInsertRowID())
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?`,
		[]any{id})
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?`,
		[]any{email.String()})
}

func (r *SQLiteRepository) findOne(ctx context.Context, query string, args []any) (*domain.User, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var user *domain.User
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			u, err := scanUser(stmt)
			if err != nil {
				return err
			}
			user = u
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, email domain.Email) (bool, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	var count int64
	err = sqlitex.Execute(conn,
		`SELECT COUNT(*) FROM users WHERE email = ?`,
		&sqlitex.ExecOptions{
			Args: []any{email.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		})
	if err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	return count > 0, nil
}

func scanUser(stmt *sqlite.Stmt) (*domain.User, error) {
	email, err := domain.NewEmail(stmt.ColumnText(1))
	if err != nil {
		return nil, fmt.Errorf("stored email invalid: %w", err)
	}
	return domain.Reconstitute(
		stmt.ColumnInt64(0),
		email,
		stmt.ColumnText(2),
		domain.Role(stmt.ColumnText(3)),
		time.Unix(0, stmt.ColumnInt64(4)).UTC(),
	), nil
}

// Compile-time interface check.
var _ domain.UserRepository = (*SQLiteRepository)(nil)
