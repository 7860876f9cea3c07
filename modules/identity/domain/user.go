// Package domain contains the business entities and rules for identity.
// This is the innermost layer - it has no dependencies on outer layers.
package domain

import (
	"time"
)

// User is the aggregate root for the identity bounded context. A user is
// either a buyer or a seller; registration always produces buyers, and
// seller accounts are created only by server-side seeding.
type User struct {
	id           int64
	email        Email
	passwordHash string
	role         Role
	createdAt    time.Time
}

// NewUser creates a new User with validated inputs. The id is zero until
// the repository persists the row and attaches the generated id.
func NewUser(email Email, passwordHash string, role Role) (*User, error) {
	if passwordHash == "" {
		return nil, ErrPasswordHashRequired
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstitute recreates a User from persistence.
func Reconstitute(id int64, email Email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

// AttachID records the storage-assigned id. Called by repositories once,
// after the row is inserted.
func (u *User) AttachID(id int64) { u.id = id }

func (u *User) ID() int64            { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// IsSeller reports whether the user holds the seller role.
func (u *User) IsSeller() bool { return u.role == RoleSeller }
