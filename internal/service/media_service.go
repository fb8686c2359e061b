package service

import (
	"context"
	"fmt"

	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultMaxUploadSizeMB applies when no limit is configured.
const DefaultMaxUploadSizeMB = 10

// MediaService accepts uploads and records them.
type MediaService struct {
	imageRepo repository.ImageRepository
	userRepo  repository.UserRepository
	store     MediaStore
	maxBytes  int64
}

// NewMediaService returns a new MediaService.
func NewMediaService(imageRepo repository.ImageRepository, userRepo repository.UserRepository, store MediaStore, maxUploadSizeMB int) *MediaService {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &MediaService{
		imageRepo: imageRepo,
		userRepo:  userRepo,
		store:     store,
		maxBytes:  int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload stores a tweet image and records it as an orphan owned by actorID,
// ready to be attached to that user's next tweet.
func (s *MediaService) Upload(ctx context.Context, actorID uint, filename string, data []byte) (img *models.Image, err error) {
	ctx, end := observability.StartSpan(ctx, "MediaService.Upload",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int("media.bytes", len(data)))
	defer func() { end(err) }()

	if err := s.checkSize(data); err != nil {
		return nil, err
	}

	path, err := s.store.Save(ctx, filename, data, false)
	if err != nil {
		return nil, err
	}

	img = &models.Image{UploaderID: &actorID, Path: path}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		s.store.Delete(ctx, []string{path})
		return nil, err
	}
	return img, nil
}

// UpdateAvatar replaces actorID's avatar and removes the previous file.
func (s *MediaService) UpdateAvatar(ctx context.Context, actorID uint, filename string, data []byte) (path string, err error) {
	ctx, end := observability.StartSpan(ctx, "MediaService.UpdateAvatar", attribute.Int64("user.id", int64(actorID)))
	defer func() { end(err) }()

	if err := s.checkSize(data); err != nil {
		return "", err
	}

	path, err = s.store.Save(ctx, filename, data, true)
	if err != nil {
		return "", err
	}

	previous, err := s.userRepo.UpdateAvatar(ctx, actorID, path)
	if err != nil {
		s.store.Delete(ctx, []string{path})
		return "", err
	}
	if previous != "" {
		s.store.Delete(ctx, []string{previous})
	}
	return path, nil
}

func (s *MediaService) checkSize(data []byte) error {
	if len(data) == 0 {
		return models.NewValidationError("No file uploaded")
	}
	if int64(len(data)) > s.maxBytes {
		return models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}
	return nil
}
