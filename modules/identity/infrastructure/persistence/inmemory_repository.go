package persistence

import (
	"context"
	"sync"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
)

// InMemoryRepository implements UserRepository using in-memory storage.
// Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email().Equals(user.Email()) {
			return domain.ErrEmailExists
		}
	}

	user.AttachID(r.nextID)
	r.users[r.nextID] = user
	r.nextID++
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email().Equals(email) {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryRepository) Exists(ctx context.Context, email domain.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email().Equals(email) {
			return true, nil
		}
	}
	return false, nil
}

// Compile-time interface check.
var _ domain.UserRepository = (*InMemoryRepository)(nil)
