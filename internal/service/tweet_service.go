package service

import (
	"context"
	"log/slog"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"
	"microblog/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// MediaStore is the file side of media handling.
type MediaStore interface {
	Save(ctx context.Context, filename string, data []byte, isAvatar bool) (string, error)
	Delete(ctx context.Context, paths []string)
}

// TweetService creates and deletes tweets together with their media.
type TweetService struct {
	tweetRepo repository.TweetRepository
	imageRepo repository.ImageRepository
	store     MediaStore
}

// NewTweetService returns a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository, imageRepo repository.ImageRepository, store MediaStore) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, imageRepo: imageRepo, store: store}
}

// CreateTweetInput is the payload of a new tweet.
type CreateTweetInput struct {
	Content  string
	MediaIDs []uint
}

// Create validates the body and persists the tweet, binding the given
// uploads to it atomically.
func (s *TweetService) Create(ctx context.Context, actorID uint, in CreateTweetInput) (tweet *models.Tweet, err error) {
	ctx, end := observability.StartSpan(ctx, "TweetService.Create",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int("media.count", len(in.MediaIDs)))
	defer func() { end(err) }()

	if err := validation.ValidateTweetContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tweet = &models.Tweet{UserID: actorID, Content: in.Content}
	if err := s.tweetRepo.CreateWithImages(ctx, tweet, in.MediaIDs); err != nil {
		return nil, err
	}

	observability.TweetEvents.WithLabelValues("created").Inc()
	return tweet, nil
}

// Delete removes a tweet owned by actorID. Files are removed first and
// their failures only logged; rows go in one transaction afterwards.
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "TweetService.Delete",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("tweet.id", int64(tweetID)))
	defer func() { end(err) }()

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != actorID {
		return models.NewOwnershipError("The tweet that is being accessed is locked")
	}

	paths, err := s.imageRepo.PathsByTweet(ctx, tweetID)
	if err != nil {
		return err
	}
	if len(paths) > 0 && s.store != nil {
		s.store.Delete(ctx, paths)
		middleware.Logger.DebugContext(ctx, "tweet media removed",
			slog.Uint64("tweet_id", uint64(tweetID)), slog.Int("files", len(paths)))
	}

	if err := s.tweetRepo.DeleteCascade(ctx, tweetID); err != nil {
		return err
	}

	observability.TweetEvents.WithLabelValues("deleted").Inc()
	return nil
}
