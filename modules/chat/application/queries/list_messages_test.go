package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RobuxEmperium/robux-site/modules/chat/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	"github.com/RobuxEmperium/robux-site/modules/chat/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/identity"
	identitydomain "github.com/RobuxEmperium/robux-site/modules/identity/domain"
	ordersdomain "github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

type mockOrderDirectory struct {
	buyerOfFn func(ctx context.Context, orderID int64) (int64, error)
}

func (m *mockOrderDirectory) BuyerOf(ctx context.Context, orderID int64) (int64, error) {
	return m.buyerOfFn(ctx, orderID)
}

func directory(orderID, buyerID int64) *mockOrderDirectory {
	return &mockOrderDirectory{
		buyerOfFn: func(ctx context.Context, id int64) (int64, error) {
			if id != orderID {
				return 0, ordersdomain.ErrOrderNotFound
			}
			return buyerID, nil
		},
	}
}

func seedConversation(t *testing.T, repo *persistence.InMemoryRepository, orderID int64) {
	t.Helper()
	ctx := context.Background()

	repo.AuthorEmails[2] = "buyer@example.com"
	repo.AuthorEmails[1] = "seller@store.test"

	for _, m := range []struct {
		author  int64
		content string
	}{
		{2, "is this in stock?"},
		{1, "yes, shipping today"},
		{2, "great, thanks"},
	} {
		message, err := domain.NewMessage(orderID, m.author, m.content)
		if err != nil {
			t.Fatalf("building message: %v", err)
		}
		if err := repo.Create(ctx, message); err != nil {
			t.Fatalf("seeding message: %v", err)
		}
	}
}

func TestListMessagesHandler_Handle_OldestFirst(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	seedConversation(t, repo, 9)
	handler := queries.NewListMessagesHandler(repo, directory(9, 2))

	actor := identity.Identity{UserID: 2, Role: identitydomain.RoleBuyer}
	views, err := handler.Handle(context.Background(), queries.ListMessagesQuery{Actor: actor, OrderID: 9})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(views))
	}
	if views[0].Content != "is this in stock?" || views[2].Content != "great, thanks" {
		t.Errorf("expected oldest-first ordering, got %q .. %q", views[0].Content, views[2].Content)
	}
	for i := 1; i < len(views); i++ {
		if views[i].ID <= views[i-1].ID {
			t.Errorf("expected monotonically increasing ids, got %d after %d", views[i].ID, views[i-1].ID)
		}
	}
	if views[0].Author != "buyer@example.com" || views[1].Author != "seller@store.test" {
		t.Errorf("expected resolved author emails, got %q / %q", views[0].Author, views[1].Author)
	}
}

func TestListMessagesHandler_Handle_SellerReadsAnyOrder(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	seedConversation(t, repo, 9)
	handler := queries.NewListMessagesHandler(repo, directory(9, 2))

	actor := identity.Identity{UserID: 50, Role: identitydomain.RoleSeller}
	views, err := handler.Handle(context.Background(), queries.ListMessagesQuery{Actor: actor, OrderID: 9})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Errorf("expected 3 messages, got %d", len(views))
	}
}

func TestListMessagesHandler_Handle_StrangerForbidden(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	seedConversation(t, repo, 9)
	handler := queries.NewListMessagesHandler(repo, directory(9, 2))

	actor := identity.Identity{UserID: 3, Role: identitydomain.RoleBuyer}
	_, err := handler.Handle(context.Background(), queries.ListMessagesQuery{Actor: actor, OrderID: 9})

	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestListMessagesHandler_Handle_OrderNotFound(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := queries.NewListMessagesHandler(repo, directory(9, 2))

	actor := identity.Identity{UserID: 2, Role: identitydomain.RoleBuyer}
	_, err := handler.Handle(context.Background(), queries.ListMessagesQuery{Actor: actor, OrderID: 404})

	if !errors.Is(err, ordersdomain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
