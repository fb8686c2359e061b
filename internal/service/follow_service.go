// Package service contains the business rules behind each API operation.
package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FollowService enforces the follow ledger: no self edges, at most one
// edge per ordered pair.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// CreateFollow makes actorID follow targetID.
func (s *FollowService) CreateFollow(ctx context.Context, actorID, targetID uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "FollowService.CreateFollow",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("target.id", int64(targetID)))
	defer func() {
		observability.RecordLedger("follow", "create", errCode(err))
		end(err)
	}()

	if err := s.checkTarget(ctx, actorID, targetID,
		"Invalid data. You can't subscribe to yourself", "The subscription user was not found"); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewDuplicateError("The user is already subscribed")
	}

	return s.followRepo.Create(ctx, actorID, targetID)
}

// DeleteFollow removes the actorID -> targetID edge.
func (s *FollowService) DeleteFollow(ctx context.Context, actorID, targetID uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "FollowService.DeleteFollow",
		attribute.Int64("user.id", int64(actorID)),
		attribute.Int64("target.id", int64(targetID)))
	defer func() {
		observability.RecordLedger("follow", "delete", errCode(err))
		end(err)
	}()

	if err := s.checkTarget(ctx, actorID, targetID,
		"Invalid data. You can't unsubscribe from yourself", "The user to cancel the subscription was not found"); err != nil {
		return err
	}

	removed, err := s.followRepo.Delete(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return models.NewNotFoundMessage("The user is not among the subscribers")
	}
	return nil
}

func (s *FollowService) checkTarget(ctx context.Context, actorID, targetID uint, selfMsg, missingMsg string) error {
	if actorID == targetID {
		return models.NewSelfReferenceError(selfMsg)
	}
	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundMessage(missingMsg)
	}
	return nil
}

// errCode labels metrics: "" on success, the AppError code otherwise.
func errCode(err error) string {
	if err == nil {
		return ""
	}
	return models.ErrorCode(err)
}
