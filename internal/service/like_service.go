package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// LikeService enforces at most one like per (user, tweet).
type LikeService struct {
	likeRepo  repository.LikeRepository
	tweetRepo repository.TweetRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, tweetRepo repository.TweetRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, tweetRepo: tweetRepo}
}

// Like records that actorID likes tweetID. Liking your own tweet is allowed.
func (s *LikeService) Like(ctx context.Context, actorID, tweetID uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "LikeService.Like",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("tweet.id", int64(tweetID)))
	defer func() {
		observability.RecordLedger("like", "create", errCode(err))
		end(err)
	}()

	if err := s.requireTweet(ctx, tweetID); err != nil {
		return err
	}

	liked, err := s.likeRepo.Exists(ctx, actorID, tweetID)
	if err != nil {
		return err
	}
	if liked {
		return models.NewDuplicateError("The user has already liked this tweet")
	}

	return s.likeRepo.Create(ctx, actorID, tweetID)
}

// Unlike removes actorID's like from tweetID.
func (s *LikeService) Unlike(ctx context.Context, actorID, tweetID uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "LikeService.Unlike",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("tweet.id", int64(tweetID)))
	defer func() {
		observability.RecordLedger("like", "delete", errCode(err))
		end(err)
	}()

	if err := s.requireTweet(ctx, tweetID); err != nil {
		return err
	}

	removed, err := s.likeRepo.Delete(ctx, actorID, tweetID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return models.NewDuplicateError("The user has not yet liked this tweet")
	}
	return nil
}

func (s *LikeService) requireTweet(ctx context.Context, tweetID uint) error {
	ok, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Tweet", tweetID)
	}
	return nil
}
