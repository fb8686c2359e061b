package repository

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository manages directed follow edges.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) (int64, error)
	FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
}

type followRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, log: observability.NewRepoLogger("follows")}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the edge. A concurrent insert of the same edge loses on
// the primary key and is reported as a duplicate; a followee removed since
// the existence check trips the foreign key and is reported as not found.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("The user is already subscribed")
		}
		if isForeignKeyError(err) {
			return models.NewNotFoundMessage("The subscription user was not found")
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{"follower_id": followerID, "followee_id": followeeID})
	return nil
}

// Delete removes the edge and returns how many rows went away (0 or 1).
func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return 0, models.NewInternalError(res.Error)
	}
	r.log.LogDelete(ctx, map[string]any{"follower_id": followerID, "followee_id": followeeID, "rows": res.RowsAffected})
	return res.RowsAffected, nil
}

func (r *followRepository) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
