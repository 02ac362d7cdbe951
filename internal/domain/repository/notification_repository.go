// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"flock/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification record.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByRecipient retrieves notifications addressed to the given user,
	// newest first.
	FindByRecipient(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error)
}
