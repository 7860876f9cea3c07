package persistence

import (
	"context"
	"sync"

	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
)

// InMemoryRepository is an in-memory MessageRepository for tests and
// development. AuthorEmails stands in for the users join the SQLite
// implementation performs.
type InMemoryRepository struct {
	mu           sync.RWMutex
	messages     []*domain.Message
	nextID       int64
	AuthorEmails map[int64]string
}

var _ domain.MessageRepository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:       1,
		AuthorEmails: make(map[int64]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.AttachID(r.nextID)
	r.nextID++
	r.messages = append(r.messages, domain.Reconstitute(
		message.ID(), message.OrderID(), message.AuthorID(),
		message.Content(), message.CreatedAt(),
	))
	return nil
}

func (r *InMemoryRepository) ListByOrder(_ context.Context, orderID int64) ([]domain.View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	views := []domain.View{}
	for _, m := range r.messages {
		if m.OrderID() != orderID {
			continue
		}
		views = append(views, domain.View{
			ID:        m.ID(),
			OrderID:   m.OrderID(),
			Author:    r.AuthorEmails[m.AuthorID()],
			Content:   m.Content(),
			CreatedAt: m.CreatedAt(),
		})
	}
	return views, nil
}
