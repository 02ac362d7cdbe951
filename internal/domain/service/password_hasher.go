// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within
// a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the
// domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two hashes of
	// the same plaintext differ, but both verify.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. An empty or malformed
	// hash returns false rather than panicking, so callers may pass a
	// possibly-absent stored digest without a prior existence check.
	Check(password, hash string) bool
}
