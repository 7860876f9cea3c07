// Package crypto provides password hashing for the identity module.
package crypto

import "context"

// PasswordHasher hashes and verifies login passwords.
// This is a port so tests can substitute a cheap implementation.
type PasswordHasher interface {
	// Hash derives a self-describing encoded hash from password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	// A malformed hash is an error; a mismatch is (false, nil).
	Verify(ctx context.Context, password, encodedHash string) (bool, error)
}
