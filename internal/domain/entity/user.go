// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a single account.
// PasswordHash is never serialized; handlers only ever see sanitized copies.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	FullName     string      `json:"fullname"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Bio          string      `json:"bio"`
	Link         string      `json:"link"`
	ProfileImage string      `json:"profileImage"`
	CoverImage   string      `json:"coverImage"`
	Followers    []uuid.UUID `json:"followers"`
	Following    []uuid.UUID `json:"following"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Sanitized returns a copy of the user with the password hash stripped.
// This is the only shape that may cross the delivery boundary.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clean := *u
	clean.PasswordHash = ""

	return &clean
}

// IsFollowing reports whether the user currently follows the given id.
func (u *User) IsFollowing(id uuid.UUID) bool {
	for _, followee := range u.Following {
		if followee == id {
			return true
		}
	}

	return false
}
