package repository

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository manages (user, tweet) like rows.
type LikeRepository interface {
	Exists(ctx context.Context, userID, tweetID uint) (bool, error)
	Create(ctx context.Context, userID, tweetID uint) error
	Delete(ctx context.Context, userID, tweetID uint) (int64, error)
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

func (r *likeRepository) Exists(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the like. idx_likes_user_tweet decides concurrent duplicates;
// a tweet deleted since the existence check surfaces as NotFound.
func (r *likeRepository) Create(ctx context.Context, userID, tweetID uint) error {
	like := &models.Like{UserID: userID, TweetID: tweetID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("The user has already liked this tweet")
		}
		if isForeignKeyError(err) {
			return models.NewNotFoundError("Tweet", tweetID)
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{"user_id": userID, "tweet_id": tweetID})
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, tweetID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return 0, models.NewInternalError(res.Error)
	}
	r.log.LogDelete(ctx, map[string]any{"user_id": userID, "tweet_id": tweetID, "rows": res.RowsAffected})
	return res.RowsAffected, nil
}
