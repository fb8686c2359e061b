package repository

import (
	"context"
	"errors"

	"microblog/internal/models"
	"microblog/internal/observability"

	"gorm.io/gorm"
)

// TweetRepository persists tweets together with their likes and images.
type TweetRepository interface {
	CreateWithImages(ctx context.Context, tweet *models.Tweet, imageIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Tweet, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db, log: observability.NewRepoLogger("tweets")}
}

// CreateWithImages inserts the tweet and binds imageIDs to it in one
// transaction. Only orphan images uploaded by the tweet's author can be
// bound; any other id fails the whole operation with a Media not-found error.
func (r *tweetRepository) CreateWithImages(ctx context.Context, tweet *models.Tweet, imageIDs []uint) error {
	ids := dedupe(imageIDs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		var bindable []uint
		if err := tx.Model(&models.Image{}).
			Where("id IN ? AND uploader_id = ? AND tweet_id IS NULL", ids, tweet.UserID).
			Pluck("id", &bindable).Error; err != nil {
			return err
		}
		if missing, ok := firstMissing(ids, bindable); ok {
			return models.NewNotFoundError("Media", missing)
		}

		res := tx.Model(&models.Image{}).
			Where("id IN ? AND tweet_id IS NULL", ids).
			Update("tweet_id", tweet.ID)
		if res.Error != nil {
			return res.Error
		}
		// Lost a race with another tweet binding the same image.
		if res.RowsAffected != int64(len(ids)) {
			return models.NewNotFoundError("Media", ids[0])
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}

	r.log.LogCreate(ctx, map[string]any{"tweet_id": tweet.ID, "user_id": tweet.UserID, "images": len(ids)})
	return nil
}

// GetByID loads the bare tweet row; relations are not preloaded.
func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListByAuthors returns every tweet written by authorIDs, newest first, with
// author, likes (and their users) and images loaded.
func (r *tweetRepository) ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	if len(authorIDs) == 0 {
		return tweets, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Preload("Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id ASC")
		}).
		Preload("Likes.User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.id ASC")
		}).
		Order("created_at DESC").Order("id DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

// DeleteCascade removes the tweet's images, then its likes, then the tweet
// itself, in one transaction.
func (r *tweetRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tweet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Tweet", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]any{"tweet_id": id})
	return nil
}

func dedupe(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstMissing(want, have []uint) (uint, bool) {
	got := make(map[uint]struct{}, len(have))
	for _, id := range have {
		got[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			return id, true
		}
	}
	return 0, false
}
