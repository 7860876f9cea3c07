package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/crypto"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/session"
)

// LoginCommand represents a login attempt.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginHandler verifies credentials and issues a session.
type LoginHandler struct {
	repo     domain.UserRepository
	hasher   crypto.PasswordHasher
	sessions *session.Store
}

func NewLoginHandler(repo domain.UserRepository, hasher crypto.PasswordHasher, sessions *session.Store) *LoginHandler {
	return &LoginHandler{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Handle executes the login use case. Unknown email and wrong password
// both fail with ErrInvalidCredentials so callers cannot probe which
// emails are registered.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (session.Session, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return session.Session{}, domain.ErrInvalidCredentials
	}

	user, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return session.Session{}, domain.ErrInvalidCredentials
		}
		return session.Session{}, fmt.Errorf("finding user: %w", err)
	}

	match, err := h.hasher.Verify(ctx, cmd.Password, user.PasswordHash())
	if err != nil {
		return session.Session{}, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return session.Session{}, domain.ErrInvalidCredentials
	}

	return h.sessions.Create(user), nil
}
