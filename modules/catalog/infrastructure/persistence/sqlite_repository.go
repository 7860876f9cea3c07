// Package persistence implements repository interfaces for the catalog.
package persistence

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/catalog/domain"
)

// Schema creates the packages table. Applied through the pool's OnConnect hook.
const Schema = `
CREATE TABLE IF NOT EXISTS packages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	price INTEGER NOT NULL,
	currency_amount INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
`

// SQLiteRepository implements PackageRepository on the shared SQLite pool.
type SQLiteRepository struct {
	pool *platformsqlite.Pool
}

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

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (domain.Package, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return domain.Package{}, err
	}
	defer done()

	var pkg domain.Package
	found := false
	err = sqlitex.Execute(conn,
		`SELECT id, name, price, currency_amount, description FROM packages WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				pkg = scanPackage(stmt)
				found = true
				return nil
			},
		})
	if err != nil {
		return domain.Package{}, fmt.Errorf("querying package: %w", err)
	}
	if !found {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]domain.Package, error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var packages []domain.Package
	err = sqlitex.Execute(conn,
		`SELECT id, name, price, currency_amount, description FROM packages ORDER BY id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				packages = append(packages, scanPackage(stmt))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("querying packages: %w", err)
	}
	return packages, nil
}

// Seed inserts packages when the catalog is empty. Runs in one
// transaction so a partially seeded catalog is never visible.
func (r *SQLiteRepository) Seed(ctx context.Context, packages []domain.Package) (err error) {
	conn, done, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer done()

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("seeding packages: %w", err)
	}
	defer endTransaction(&err)

	var count int64
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM packages`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("counting packages: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, pkg := range packages {
		err = sqlitex.Execute(conn,
			`INSERT INTO packages (name, price, currency_amount, description) VALUES (?, ?, ?, ?)`,
			&sqlitex.ExecOptions{
				Args: []any{pkg.Name, pkg.Price, pkg.CurrencyAmount, pkg.Description},
			})
		if err != nil {
			return fmt.Errorf("seeding package %q: %w", pkg.Name, err)
		}
	}
	return nil
}

func scanPackage(stmt *sqlite.Stmt) domain.Package {
	return domain.Package{
		ID:             stmt.ColumnInt64(0),
		Name:           stmt.ColumnText(1),
		Price:          stmt.ColumnInt64(2),
		CurrencyAmount: stmt.ColumnInt64(3),
		Description:    stmt.ColumnText(4),
	}
}

// Compile-time interface check.
var _ domain.PackageRepository = (*SQLiteRepository)(nil)
