package service

import (
	"github.com/google/uuid"
)

// TokenService signs and verifies the compact, time-bounded identity claim
// carried in the session cookie. Tokens are stateless capabilities: there is
// no server-side session table and no revocation before expiry.
type TokenService interface {
	// Issue creates a signed token for the given subject, valid for the
	// configured session lifetime (30 days).
	Issue(subjectID uuid.UUID) (string, error)

	// Validate verifies the signature and expiry of a token string and
	// returns the embedded subject id. A tampered, malformed, or expired
	// token yields an error, never the original id.
	Validate(tokenString string) (uuid.UUID, error)
}
