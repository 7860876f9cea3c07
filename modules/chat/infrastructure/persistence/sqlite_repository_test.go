package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	catalogdomain "github.com/RobuxEmperium/robux-site/modules/catalog/domain"
	catalogpersistence "github.com/RobuxEmperium/robux-site/modules/catalog/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	"github.com/RobuxEmperium/robux-site/modules/chat/infrastructure/persistence"
	identitydomain "github.com/RobuxEmperium/robux-site/modules/identity/domain"
	identitypersistence "github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/persistence"
	ordersdomain "github.com/RobuxEmperium/robux-site/modules/orders/domain"
	orderspersistence "github.com/RobuxEmperium/robux-site/modules/orders/infrastructure/persistence"
)

func newTestPool(t *testing.T) *platformsqlite.Pool {
	t.Helper()

	pool, err := platformsqlite.Open(platformsqlite.Config{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		PoolSize: 2,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn,
				identitypersistence.Schema+
					catalogpersistence.Schema+
					orderspersistence.Schema+
					persistence.Schema, nil)
		},
	})
	if err != nil {
		t.Fatalf("opening pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

// seedOrder creates a user, a catalog row and an order, returning the
// author and order ids messages can reference.
func seedOrder(t *testing.T, pool *platformsqlite.Pool) (userID, orderID int64) {
	t.Helper()
	ctx := context.Background()

	email, err := identitydomain.NewEmail("buyer@example.com")
	if err != nil {
		t.Fatalf("building email: %v", err)
	}
	user, err := identitydomain.NewUser(email, "$argon2id$...", identitydomain.RoleBuyer)
	if err != nil {
		t.Fatalf("building user: %v", err)
	}
	if err := identitypersistence.NewSQLiteRepository(pool).Create(ctx, user); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	catalogRepo := catalogpersistence.NewSQLiteRepository(pool)
	if err := catalogRepo.Seed(ctx, catalogdomain.DefaultCatalog()); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
	packages, err := catalogRepo.FindAll(ctx)
	if err != nil {
		t.Fatalf("listing catalog: %v", err)
	}

	order := ordersdomain.PlaceOrder(user.ID(), ordersdomain.PackageSnapshot{
		ID:    packages[0].ID,
		Name:  packages[0].Name,
		Price: packages[0].Price,
	})
	if err := orderspersistence.NewSQLiteRepository(pool).Create(ctx, order); err != nil {
		t.Fatalf("creating order: %v", err)
	}
	return user.ID(), order.ID()
}

func TestSQLiteRepository_CreateAndList(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	userID, orderID := seedOrder(t, pool)
	repo := persistence.NewSQLiteRepository(pool)

	for _, content := range []string{"first", "second", "third"} {
		message, err := domain.NewMessage(orderID, userID, content)
		if err != nil {
			t.Fatalf("building message: %v", err)
		}
		if err := repo.Create(ctx, message); err != nil {
			t.Fatalf("creating message: %v", err)
		}
		if message.ID() == 0 {
			t.Fatal("expected an attached id")
		}
	}

	views, err := repo.ListByOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("listing messages: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(views))
	}
	if views[0].Content != "first" || views[2].Content != "third" {
		t.Errorf("expected oldest-first ordering, got %q .. %q", views[0].Content, views[2].Content)
	}
	for _, v := range views {
		if v.Author != "buyer@example.com" {
			t.Errorf("expected resolved author email, got %q", v.Author)
		}
		if v.OrderID != orderID {
			t.Errorf("expected order %d, got %d", orderID, v.OrderID)
		}
	}
}

func TestSQLiteRepository_ListByOrder_ScopedToOrder(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	userID, orderID := seedOrder(t, pool)
	repo := persistence.NewSQLiteRepository(pool)

	message, err := domain.NewMessage(orderID, userID, "hello")
	if err != nil {
		t.Fatalf("building message: %v", err)
	}
	if err := repo.Create(ctx, message); err != nil {
		t.Fatalf("creating message: %v", err)
	}

	views, err := repo.ListByOrder(ctx, orderID+1)
	if err != nil {
		t.Fatalf("listing messages: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected no messages for another order, got %d", len(views))
	}
}

func TestSQLiteRepository_AuthorlessMessage(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	_, orderID := seedOrder(t, pool)
	repo := persistence.NewSQLiteRepository(pool)

	message, err := domain.NewMessage(orderID, 0, "system notice")
	if err != nil {
		t.Fatalf("building message: %v", err)
	}
	if err := repo.Create(ctx, message); err != nil {
		t.Fatalf("creating message: %v", err)
	}

	views, err := repo.ListByOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("listing messages: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 message, got %d", len(views))
	}
	if views[0].Author != "" {
		t.Errorf("expected empty author for authorless message, got %q", views[0].Author)
	}
}
