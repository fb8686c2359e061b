package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedService composes the home timeline.
type FeedService struct {
	followRepo repository.FollowRepository
	tweetRepo  repository.TweetRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(followRepo repository.FollowRepository, tweetRepo repository.TweetRepository) *FeedService {
	return &FeedService{followRepo: followRepo, tweetRepo: tweetRepo}
}

// GetFeed returns tweets by the users actorID follows, newest first.
// Following nobody yields an empty, non-nil slice.
func (s *FeedService) GetFeed(ctx context.Context, actorID uint) (tweets []models.Tweet, err error) {
	ctx, end := observability.StartSpan(ctx, "FeedService.GetFeed", attribute.Int64("user.id", int64(actorID)))
	defer func() { end(err) }()

	followees, err := s.followRepo.FolloweeIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		observability.FeedSize.Observe(0)
		return []models.Tweet{}, nil
	}

	tweets, err = s.tweetRepo.ListByAuthors(ctx, followees)
	if err != nil {
		return nil, err
	}
	observability.FeedSize.Observe(float64(len(tweets)))
	return tweets, nil
}
