// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTypeFollow is recorded when one user starts following another.
const NotificationTypeFollow = "follow"

// Notification represents a single event addressed to a user, such as
// gaining a new follower. Delivery is pull-based; there is no real-time push.
type Notification struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from"`
	ToUserID   uuid.UUID `json:"to"`
	Type       string    `json:"type"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
