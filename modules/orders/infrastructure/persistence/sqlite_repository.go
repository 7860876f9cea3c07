// Package persistence provides storage implementations of the order
// repository.
package persistence

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// Schema is the orders DDL, applied on every connection open. The
// payment reference is UNIQUE so a retried insert of the same attempt
// cannot produce two rows.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	buyer_id          INTEGER NOT NULL REFERENCES users(id),
	package_id        INTEGER NOT NULL REFERENCES packages(id),
	price             INTEGER NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	payment_reference TEXT NOT NULL UNIQUE,
	created_at        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS orders_by_buyer ON orders(buyer_id, created_at DESC);
`

const listingColumns = `
	o.id, o.buyer_id, o.package_id, o.price, o.status,
	o.payment_reference, o.created_at, p.name, u.email`

// SQLiteRepository persists orders in SQLite.
type SQLiteRepository struct {
	pool *platformsqlite.Pool
}

var _ domain.OrderRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(pool *platformsqlite.Pool) *SQLiteRepository {
	return &SQLiteRepository{pool: pool}
}

// conn returns the transaction connection carried by ctx if present,
// otherwise borrows one from the pool. done returns it when borrowed.
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

func (r *SQLiteRepository) Create(ctx context.Context, order *domain.Order) error {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer done()

	err = sqlitex.Execute(conn, `
		INSERT INTO orders (buyer_id, package_id, price, status, payment_reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				order.BuyerID(),
				order.PackageID(),
				order.Price(),
				order.Status().String(),
				order.PaymentReference(),
				order.CreatedAt().UnixNano(),
			},
		})
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	order.AttachID(conn.LastInsertRowID())
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var order *domain.Order
	err = sqlitex.Execute(conn, `
		SELECT id, buyer_id, package_id, price, status, payment_reference, created_at
		FROM orders WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				order = domain.Reconstitute(
					stmt.ColumnInt64(0),
					stmt.ColumnInt64(1),
					stmt.ColumnInt64(2),
					stmt.ColumnInt64(3),
					domain.Status(stmt.ColumnText(4)),
					stmt.ColumnText(5),
					time.Unix(0, stmt.ColumnInt64(6)).UTC(),
				)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer done()

	err = sqlitex.Execute(conn, `UPDATE orders SET status = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{status.String(), id}})
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	if conn.Changes() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]domain.Listing, error) {
	return r.list(ctx, `
		SELECT`+listingColumns+`
		FROM orders o
		JOIN packages p ON p.id = o.package_id
		JOIN users u ON u.id = o.buyer_id
		ORDER BY o.created_at DESC, o.id DESC`, nil, true)
}

func (r *SQLiteRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]domain.Listing, error) {
	return r.list(ctx, `
		SELECT`+listingColumns+`
		FROM orders o
		JOIN packages p ON p.id = o.package_id
		JOIN users u ON u.id = o.buyer_id
		WHERE o.buyer_id = ?
		ORDER BY o.created_at DESC, o.id DESC`, []any{buyerID}, false)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args []any, withBuyer bool) ([]domain.Listing, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	listings := []domain.Listing{}
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			l := domain.Listing{
				ID:               stmt.ColumnInt64(0),
				BuyerID:          stmt.ColumnInt64(1),
				PackageID:        stmt.ColumnInt64(2),
				Price:            stmt.ColumnInt64(3),
				Status:           domain.Status(stmt.ColumnText(4)),
				PaymentReference: stmt.ColumnText(5),
				CreatedAt:        time.Unix(0, stmt.ColumnInt64(6)).UTC(),
				PackageName:      stmt.ColumnText(7),
			}
			if withBuyer {
				l.BuyerEmail = stmt.ColumnText(8)
			}
			listings = append(listings, l)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return listings, nil
}
