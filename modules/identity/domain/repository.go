package domain

import (
	"context"
)

// UserRepository defines the persistence interface for users.
// This is a port - defined in domain, implemented in infrastructure.
type UserRepository interface {
	// Create inserts a new user and attaches the generated id.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, user *User) error

	// FindByID retrieves a user by id.
	// Returns ErrUserNotFound if the user doesn't exist.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user doesn't exist.
	FindByEmail(ctx context.Context, email Email) (*User, error)

	// Exists checks if a user with the given email exists.
	Exists(ctx context.Context, email Email) (bool, error)
}
