package domain

import "errors"

var (
	// ErrOrderNotFound is returned when no order exists with the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidPackage is returned when a purchase names a package id
	// the catalog cannot resolve.
	ErrInvalidPackage = errors.New("invalid package")

	// ErrSellerRoleRequired is returned when a buyer attempts a
	// seller-only operation.
	ErrSellerRoleRequired = errors.New("seller role required")
)
