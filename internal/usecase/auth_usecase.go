// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"flock/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput carries the sanitized user and the freshly issued session
// token. The delivery layer attaches the token as a cookie; the usecase
// never touches HTTP concerns.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase defines the authentication operations the delivery layer
// depends on. Logout is absent by design: it is purely a cookie-clearing
// operation and never reaches this layer.
type AuthUsecase interface {
	// Signup validates input, creates the account, and issues a session token.
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	// Login validates credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// CheckAuth re-fetches the current account by id, defending against
	// profile changes since token issuance.
	CheckAuth(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
