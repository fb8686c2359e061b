package service

import (
	"context"

	"microblog/internal/models"
)

type userRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.User, error)
	getByAPIKeyFn  func(context.Context, string) (*models.User, error)
	existsFn       func(context.Context, uint) (bool, error)
	createFn       func(context.Context, *models.User) error
	updateAvatarFn func(context.Context, uint, string) (string, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	return s.getByAPIKeyFn(ctx, apiKey)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateAvatar(ctx context.Context, id uint, path string) (string, error) {
	return s.updateAvatarFn(ctx, id, path)
}

type followRepoStub struct {
	existsFn      func(context.Context, uint, uint) (bool, error)
	createFn      func(context.Context, uint, uint) error
	deleteFn      func(context.Context, uint, uint) (int64, error)
	followeeIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Exists(ctx context.Context, a, b uint) (bool, error) {
	return s.existsFn(ctx, a, b)
}
func (s *followRepoStub) Create(ctx context.Context, a, b uint) error {
	return s.createFn(ctx, a, b)
}
func (s *followRepoStub) Delete(ctx context.Context, a, b uint) (int64, error) {
	return s.deleteFn(ctx, a, b)
}
func (s *followRepoStub) FolloweeIDs(ctx context.Context, a uint) ([]uint, error) {
	return s.followeeIDsFn(ctx, a)
}

type imageRepoStub struct {
	createFn       func(context.Context, *models.Image) error
	pathsByTweetFn func(context.Context, uint) ([]string, error)
}

func (s *imageRepoStub) Create(ctx context.Context, img *models.Image) error {
	return s.createFn(ctx, img)
}
func (s *imageRepoStub) PathsByTweet(ctx context.Context, id uint) ([]string, error) {
	return s.pathsByTweetFn(ctx, id)
}

type tweetRepoStub struct {
	createFn  func(context.Context, *models.Tweet, []uint) error
	getByIDFn func(context.Context, uint) (*models.Tweet, error)
	existsFn  func(context.Context, uint) (bool, error)
	listFn    func(context.Context, []uint) ([]models.Tweet, error)
	deleteFn  func(context.Context, uint) error
}

func (s *tweetRepoStub) CreateWithImages(ctx context.Context, tw *models.Tweet, ids []uint) error {
	return s.createFn(ctx, tw, ids)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *tweetRepoStub) ListByAuthors(ctx context.Context, ids []uint) ([]models.Tweet, error) {
	return s.listFn(ctx, ids)
}
func (s *tweetRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
