package repository

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"

	"gorm.io/gorm"
)

// ImageRepository stores uploaded media records.
type ImageRepository interface {
	Create(ctx context.Context, img *models.Image) error
	PathsByTweet(ctx context.Context, tweetID uint) ([]string, error)
}

type imageRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db, log: observability.NewRepoLogger("images")}
}

func (r *imageRepository) Create(ctx context.Context, img *models.Image) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{"image_id": img.ID, "path": img.Path})
	return nil
}

// PathsByTweet lists the stored files of a tweet's images in upload order.
func (r *imageRepository) PathsByTweet(ctx context.Context, tweetID uint) ([]string, error) {
	var paths []string
	if err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("tweet_id = ?", tweetID).
		Order("id ASC").
		Pluck("path_media", &paths).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return paths, nil
}
