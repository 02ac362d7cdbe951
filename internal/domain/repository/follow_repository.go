// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// FollowRepository manages the follow graph. An edge (follower, followee)
// is a single row, so creating or removing a follow is one atomic write;
// there is no two-record update to keep consistent.
type FollowRepository interface {
	// AddEdge records that follower follows followee. Idempotent: adding an
	// existing edge is a no-op.
	AddEdge(ctx context.Context, followerID, followeeID uuid.UUID) error

	// RemoveEdge removes the follow edge if present. Idempotent.
	RemoveEdge(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Exists reports whether follower currently follows followee.
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}
