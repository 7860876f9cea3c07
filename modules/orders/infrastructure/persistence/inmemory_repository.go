package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// InMemoryRepository is an in-memory OrderRepository for tests and
// development. BuyerEmails and PackageNames stand in for the joins the
// SQLite implementation performs; tests populate them directly.
type InMemoryRepository struct {
	mu           sync.RWMutex
	orders       map[int64]*domain.Order
	nextID       int64
	BuyerEmails  map[int64]string
	PackageNames map[int64]string
}

var _ domain.OrderRepository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders:       make(map[int64]*domain.Order),
		nextID:       1,
		BuyerEmails:  make(map[int64]string),
		PackageNames: make(map[int64]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.AttachID(r.nextID)
	r.nextID++
	r.orders[order.ID()] = r.clone(order)
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return r.clone(order), nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.SetStatus(status)
	return nil
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listings(func(*domain.Order) bool { return true }, true), nil
}

func (r *InMemoryRepository) ListByBuyer(_ context.Context, buyerID int64) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listings(func(o *domain.Order) bool { return o.BuyerID() == buyerID }, false), nil
}

func (r *InMemoryRepository) listings(match func(*domain.Order) bool, withBuyer bool) []domain.Listing {
	listings := []domain.Listing{}
	for _, o := range r.orders {
		if !match(o) {
			continue
		}
		l := domain.Listing{
			ID:               o.ID(),
			BuyerID:          o.BuyerID(),
			PackageID:        o.PackageID(),
			PackageName:      r.PackageNames[o.PackageID()],
			Price:            o.Price(),
			Status:           o.Status(),
			PaymentReference: o.PaymentReference(),
			CreatedAt:        o.CreatedAt(),
		}
		if withBuyer {
			l.BuyerEmail = r.BuyerEmails[o.BuyerID()]
		}
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID > listings[j].ID
	})
	return listings
}

func (r *InMemoryRepository) clone(o *domain.Order) *domain.Order {
	return domain.Reconstitute(
		o.ID(), o.BuyerID(), o.PackageID(), o.Price(),
		o.Status(), o.PaymentReference(), o.CreatedAt(),
	)
}
