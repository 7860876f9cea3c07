// Package commands contains write use cases for the identity module.
package commands

import (
	"context"
	"fmt"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/crypto"
)

// RegisterUserCommand represents the intent to create a new account.
// Accounts created through registration are always buyers.
type RegisterUserCommand struct {
	Email    string
	Password string
}

// RegisterUserHandler handles the RegisterUserCommand.
type RegisterUserHandler struct {
	repo   domain.UserRepository
	hasher crypto.PasswordHasher
}

func NewRegisterUserHandler(repo domain.UserRepository, hasher crypto.PasswordHasher) *RegisterUserHandler {
	return &RegisterUserHandler{
		repo:   repo,
		hasher: hasher,
	}
}

// Handle executes the register use case and returns the new user's id.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (int64, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return 0, err
	}
	if cmd.Password == "" {
		return 0, domain.ErrPasswordRequired
	}

	exists, err := h.repo.Exists(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return 0, domain.ErrEmailExists
	}

	hash, err := h.hasher.Hash(ctx, cmd.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	user, err := domain.NewUser(email, hash, domain.RoleBuyer)
	if err != nil {
		return 0, err
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return 0, fmt.Errorf("saving user: %w", err)
	}

	return user.ID(), nil
}
