package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RobuxEmperium/robux-site/modules/orders/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
	"github.com/RobuxEmperium/robux-site/modules/shared/events/contracts"
)

// --- Mocks ---

type mockOrderRepository struct {
	createFn       func(ctx context.Context, order *domain.Order) error
	findByIDFn     func(ctx context.Context, id int64) (*domain.Order, error)
	updateStatusFn func(ctx context.Context, id int64, status domain.Status) error
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.createFn(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockOrderRepository) ListAll(ctx context.Context) ([]domain.Listing, error) {
	return nil, nil
}

func (m *mockOrderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]domain.Listing, error) {
	return nil, nil
}

type mockCatalog struct {
	packageByIDFn func(ctx context.Context, id int64) (domain.PackageSnapshot, error)
}

func (m *mockCatalog) PackageByID(ctx context.Context, id int64) (domain.PackageSnapshot, error) {
	return m.packageByIDFn(ctx, id)
}

type mockTransactionScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

// passthroughScope runs fn directly, committing when fn returns nil.
func passthroughScope() *mockTransactionScope {
	return &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

type recordingSink struct {
	published []events.Event
}

func (s *recordingSink) Publish(_ context.Context, evts ...events.Event) error {
	s.published = append(s.published, evts...)
	return nil
}

// --- Tests ---

func TestPurchaseHandler_Handle_Success(t *testing.T) {
	// Arrange
	var created *domain.Order
	var publishedDuringSave int

	repo := &mockOrderRepository{
		createFn: func(ctx context.Context, order *domain.Order) error {
			created = order
			order.AttachID(101)
			return nil
		},
	}
	catalog := &mockCatalog{
		packageByIDFn: func(ctx context.Context, id int64) (domain.PackageSnapshot, error) {
			if id != 2 {
				t.Errorf("expected package lookup for 2, got %d", id)
			}
			return domain.PackageSnapshot{ID: 2, Name: "800 Robux", Price: 15}, nil
		},
	}
	sink := &recordingSink{}
	scope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			err := fn(ctx)
			// Nothing reaches the sink while the transaction is open.
			publishedDuringSave = len(sink.published)
			return err
		},
	}

	handler := commands.NewPurchaseHandler(repo, catalog, scope, sink)

	// Act
	orderID, err := handler.Handle(context.Background(), commands.PurchaseCommand{
		BuyerID:   7,
		PackageID: 2,
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != 101 {
		t.Errorf("expected order id 101, got %d", orderID)
	}
	if created == nil {
		t.Fatal("expected order to be persisted")
	}
	if created.Price() != 15 {
		t.Errorf("expected snapshotted price 15, got %d", created.Price())
	}
	if publishedDuringSave != 0 {
		t.Errorf("expected no events before commit, got %d", publishedDuringSave)
	}
	if len(sink.published) != 1 {
		t.Fatalf("expected 1 event after commit, got %d", len(sink.published))
	}
	placed, ok := sink.published[0].(contracts.OrderPlacedEvent)
	if !ok {
		t.Fatalf("expected OrderPlacedEvent, got %T", sink.published[0])
	}
	if placed.OrderID != 101 || placed.BuyerID != 7 || placed.Price != 15 {
		t.Errorf("unexpected event payload: %+v", placed)
	}
}

func TestPurchaseHandler_Handle_InvalidPackage(t *testing.T) {
	repo := &mockOrderRepository{
		createFn: func(ctx context.Context, order *domain.Order) error {
			t.Error("order must not be persisted for an unknown package")
			return nil
		},
	}
	catalog := &mockCatalog{
		packageByIDFn: func(ctx context.Context, id int64) (domain.PackageSnapshot, error) {
			return domain.PackageSnapshot{}, domain.ErrInvalidPackage
		},
	}
	sink := &recordingSink{}

	handler := commands.NewPurchaseHandler(repo, catalog, passthroughScope(), sink)

	_, err := handler.Handle(context.Background(), commands.PurchaseCommand{BuyerID: 1, PackageID: 99})

	if !errors.Is(err, domain.ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage, got %v", err)
	}
	if len(sink.published) != 0 {
		t.Errorf("expected no events, got %d", len(sink.published))
	}
}

func TestPurchaseHandler_Handle_SaveFailureSuppressesEvents(t *testing.T) {
	saveErr := errors.New("disk full")
	repo := &mockOrderRepository{
		createFn: func(ctx context.Context, order *domain.Order) error {
			return saveErr
		},
	}
	catalog := &mockCatalog{
		packageByIDFn: func(ctx context.Context, id int64) (domain.PackageSnapshot, error) {
			return domain.PackageSnapshot{ID: 1, Name: "400 Robux", Price: 8}, nil
		},
	}
	sink := &recordingSink{}

	handler := commands.NewPurchaseHandler(repo, catalog, passthroughScope(), sink)

	_, err := handler.Handle(context.Background(), commands.PurchaseCommand{BuyerID: 1, PackageID: 1})

	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(sink.published) != 0 {
		t.Errorf("expected no events after rollback, got %d", len(sink.published))
	}
}
