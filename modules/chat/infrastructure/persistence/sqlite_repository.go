// Package persistence provides storage implementations of the message
// repository.
package persistence

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
)

// Schema is the messages DDL, applied on every connection open. user_id
// is nullable so deleting an account does not orphan its conversation
// history.
const Schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id   INTEGER NOT NULL REFERENCES orders(id),
	user_id    INTEGER REFERENCES users(id),
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS messages_by_order ON messages(order_id, created_at);
`

// SQLiteRepository persists chat messages in SQLite.
type SQLiteRepository struct {
	pool *platformsqlite.Pool
}

var _ domain.MessageRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(pool *platformsqlite.Pool) *SQLiteRepository {
	return &SQLiteRepository{pool: pool}
}

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

func (r *SQLiteRepository) Create(ctx context.Context, message *domain.Message) error {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer done()

	var author any
	if message.AuthorID() != 0 {
		author = message.AuthorID()
	}
	err = sqlitex.Execute(conn, `
		INSERT INTO messages (order_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				message.OrderID(),
				author,
				message.Content(),
				message.CreatedAt().UnixNano(),
			},
		})
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	message.AttachID(conn.LastInsertRowID())
	return nil
}

func (r *SQLiteRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.View, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	views := []domain.View{}
	err = sqlitex.Execute(conn, `
		SELECT m.id, m.order_id, COALESCE(u.email, ''), m.content, m.created_at
		FROM messages m
		LEFT JOIN users u ON u.id = m.user_id
		WHERE m.order_id = ?
		ORDER BY m.created_at ASC, m.id ASC`,
		&sqlitex.ExecOptions{
			Args: []any{orderID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				views = append(views, domain.View{
					ID:        stmt.ColumnInt64(0),
					OrderID:   stmt.ColumnInt64(1),
					Author:    stmt.ColumnText(2),
					Content:   stmt.ColumnText(3),
					CreatedAt: time.Unix(0, stmt.ColumnInt64(4)).UTC(),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return views, nil
}
