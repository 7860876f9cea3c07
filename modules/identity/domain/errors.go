package domain

import "errors"

// Domain errors - business rule violations.
// These errors are part of the domain language.
var (
	// User errors
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRole          = errors.New("invalid role")
	ErrPasswordHashRequired = errors.New("password hash is required")

	// Email errors
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email format is invalid")
	ErrEmailExists   = errors.New("email already exists")

	// Password errors
	ErrPasswordRequired = errors.New("password is required")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately flattened so login failures do not reveal which emails
	// are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
