// Package session provides in-memory login sessions.
//
// Sessions are ephemeral by design: a restart logs everyone out, matching
// the reference deployment where the session store lives in process memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
)

// Session is an authenticated login, addressed by an opaque random token.
type Session struct {
	Token     string
	UserID    int64
	Email     string
	Role      domain.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store holds active sessions. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewStore creates a session store with the given session lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create issues a new session for the user.
func (s *Store) Create(user *domain.User) Session {
	now := s.now().UTC()
	sess := Session{
		Token:     uuid.New().String(),
		UserID:    user.ID(),
		Email:     user.Email().String(),
		Role:      user.Role(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for token, if it exists and has not expired.
// Expired sessions are removed lazily.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	if s.now().UTC().After(sess.ExpiresAt) {
		s.Delete(token)
		return Session{}, false
	}
	return sess, true
}

// Delete removes the session for token. Unknown tokens are a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len returns the number of stored sessions (useful for testing).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
