package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// UserService resolves users and their follow views.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the user or nil when absent.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByCredential returns the user owning apiKey or nil when absent.
func (s *UserService) GetByCredential(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, nil
	}
	return s.userRepo.GetByAPIKey(ctx, apiKey)
}

// GetByIDOrError is GetByID with absence reported as NotFound.
func (s *UserService) GetByIDOrError(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}
