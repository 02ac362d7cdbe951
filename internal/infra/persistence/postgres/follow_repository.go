package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"flock/internal/domain/repository"
	"flock/internal/infra/persistence/model"
)

// followRepository implements the repository.FollowRepository interface.
// Each follow is one row, so adding and removing edges are single atomic
// statements.
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository is the constructor for followRepository.
func NewFollowRepository(db *gorm.DB) repository.FollowRepository {
	return &followRepository{db: db}
}

// AddEdge inserts the follow edge. ON CONFLICT DO NOTHING makes it idempotent.
func (repo *followRepository) AddEdge(ctx context.Context, followerID, followeeID uuid.UUID) error {
	edge := &model.FollowModel{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error; err != nil {
		return errors.Wrap(err, "failed to add follow edge")
	}

	return nil
}

// RemoveEdge deletes the follow edge if present.
func (repo *followRepository) RemoveEdge(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.FollowModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to remove follow edge")
	}

	return nil
}

// Exists reports whether follower currently follows followee.
func (repo *followRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.FollowModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check follow edge")
	}

	return count > 0, nil
}
