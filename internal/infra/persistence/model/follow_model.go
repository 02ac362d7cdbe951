package model

import (
	"time"

	"github.com/google/uuid"
)

// FollowModel mirrors the 'follows' table. One row is one edge of the follow
// graph; the composite primary key makes the edge naturally unique.
type FollowModel struct {
	FollowerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	FolloweeID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (FollowModel) TableName() string {
	return "follows"
}
