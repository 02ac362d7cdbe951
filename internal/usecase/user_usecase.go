package usecase

import (
	"context"

	"github.com/google/uuid"

	"flock/internal/domain/entity"
)

// UpdateProfileInput defines the optional fields of a profile update.
// Changing the password requires both CurrentPassword and NewPassword.
// ProfileImage and CoverImage are base64 (or data-URI) payloads.
type UpdateProfileInput struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImage    string `json:"profileImage"`
	CoverImage      string `json:"coverImage"`
}

// FollowOutput reports the resulting state of a follow/unfollow toggle.
type FollowOutput struct {
	Following bool
}

// UserUsecase defines the user-graph and profile operations available
// behind the authorization gate.
type UserUsecase interface {
	// GetProfile retrieves a public profile by username.
	GetProfile(ctx context.Context, username string) (*entity.User, error)

	// FollowUnfollow toggles the follow edge from the current user to the
	// target. A new follow records a notification best-effort.
	FollowUnfollow(ctx context.Context, currentUserID, targetID uuid.UUID) (*FollowOutput, error)

	// SuggestedUsers lists users the current user does not follow yet.
	SuggestedUsers(ctx context.Context, currentUserID uuid.UUID) ([]*entity.User, error)

	// UpdateProfile applies a partial profile update for the current user.
	UpdateProfile(ctx context.Context, currentUserID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// Notifications lists the current user's notifications, newest first.
	Notifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)
}
