package repository

import (
	"context"
	"errors"

	"microblog/internal/models"
	"microblog/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, id uint, path string) (string, error)
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

// GetByID returns the user with following and followers filled in,
// or nil without error when no such user exists.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.getWithRelations(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByAPIKey is GetByID keyed by credential.
func (r *userRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, nil
	}
	return r.getWithRelations(ctx, r.db.WithContext(ctx).Where("api_key = ?", apiKey))
}

func (r *userRepository) getWithRelations(ctx context.Context, q *gorm.DB) (*models.User, error) {
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	following, err := r.related(ctx, "follows.follower_id = ?", "follows.followee_id", user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := r.related(ctx, "follows.followee_id = ?", "follows.follower_id", user.ID)
	if err != nil {
		return nil, err
	}
	user.Following = following
	user.Followers = followers
	return &user, nil
}

// related loads the users on the other end of userID's edges.
func (r *userRepository) related(ctx context.Context, where, joinCol string, userID uint) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN follows ON users.id = "+joinCol).
		Where(where, userID).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("User with this name or api key already exists")
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{"user_id": user.ID})
	return nil
}

// UpdateAvatar sets the avatar path and returns the previous one.
func (r *userRepository) UpdateAvatar(ctx context.Context, id uint, path string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "avatar").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return err
		}
		previous = user.Avatar
		return tx.Model(&models.User{}).Where("id = ?", id).Update("avatar", path).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", models.NewInternalError(err)
	}
	return previous, nil
}
