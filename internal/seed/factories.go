package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RandomOptions sizes a random data set.
type RandomOptions struct {
	Users          int
	TweetsPerUser  int
	FollowsPerUser int
	LikesPerUser   int
	MaxDays        int
	// Seed makes the generated data reproducible. Zero means time-based.
	Seed int64
}

// DefaultRandomOptions is used by cmd/seed when no flags are given.
var DefaultRandomOptions = RandomOptions{
	Users:          20,
	TweetsPerUser:  5,
	FollowsPerUser: 4,
	LikesPerUser:   10,
	MaxDays:        30,
}

// Factory builds random entities and persists them.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	opts  RandomOptions
}

// NewFactory returns a Factory bound to db.
func NewFactory(db *gorm.DB, opts RandomOptions) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, faker: gofakeit.New(seed), opts: opts}
}

// CreateUser inserts a user with a unique name and api key.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	name := fmt.Sprintf("%s_%s", f.faker.Username(), f.faker.LetterN(4))
	if len([]rune(name)) > 60 {
		name = string([]rune(name)[:60])
	}
	u := &models.User{Username: name, APIKey: f.faker.UUID()}
	if err := validation.ValidateUsername(u.Username); err != nil {
		return nil, fmt.Errorf("generated user: %w", err)
	}
	if err := validation.ValidateAPIKey(u.APIKey); err != nil {
		return nil, fmt.Errorf("generated user: %w", err)
	}
	if err := f.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// BuildTweet returns an unsaved tweet with a created_at spread over MaxDays.
func (f *Factory) BuildTweet(author *models.User) *models.Tweet {
	content := f.faker.Sentence(f.faker.Number(3, 30))
	if r := []rune(content); len(r) > models.MaxTweetLength {
		content = string(r[:models.MaxTweetLength])
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return &models.Tweet{
		UserID:    author.ID,
		Content:   content,
		CreatedAt: time.Now().Add(-back),
	}
}

// CreateTweets persists n tweets for author in one batch.
func (f *Factory) CreateTweets(ctx context.Context, author *models.User, n int) ([]models.Tweet, error) {
	if n <= 0 {
		return nil, nil
	}
	tweets := make([]models.Tweet, 0, n)
	for i := 0; i < n; i++ {
		tweets = append(tweets, *f.BuildTweet(author))
	}
	if err := f.db.WithContext(ctx).Create(&tweets).Error; err != nil {
		return nil, fmt.Errorf("create tweets: %w", err)
	}
	return tweets, nil
}

// Follow adds follower -> followee, ignoring self edges and duplicates.
func (f *Factory) Follow(ctx context.Context, follower, followee uint) error {
	if follower == followee {
		return nil
	}
	edge := models.Follow{FollowerID: follower, FolloweeID: followee}
	return f.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

// Like adds a like, ignoring duplicates.
func (f *Factory) Like(ctx context.Context, userID, tweetID uint) error {
	like := models.Like{UserID: userID, TweetID: tweetID}
	return f.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// RandomSummary reports what Random created.
type RandomSummary struct {
	Users  []models.User
	Tweets int
}

// Random creates a social graph of random users, tweets, follows and likes.
func Random(ctx context.Context, db *gorm.DB, opts RandomOptions) (*RandomSummary, error) {
	f := NewFactory(db, opts)

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	var tweets []models.Tweet
	for i := range users {
		created, err := f.CreateTweets(ctx, &users[i], opts.TweetsPerUser)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, created...)
	}

	if len(users) > 1 {
		for _, u := range users {
			for j := 0; j < opts.FollowsPerUser; j++ {
				target := users[f.faker.Number(0, len(users)-1)]
				if err := f.Follow(ctx, u.ID, target.ID); err != nil {
					return nil, fmt.Errorf("follow: %w", err)
				}
			}
		}
	}

	if len(tweets) > 0 {
		for _, u := range users {
			for j := 0; j < opts.LikesPerUser; j++ {
				tw := tweets[f.faker.Number(0, len(tweets)-1)]
				if err := f.Like(ctx, u.ID, tw.ID); err != nil {
					return nil, fmt.Errorf("like: %w", err)
				}
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "random data created",
		slog.Int("users", len(users)),
		slog.Int("tweets", len(tweets)),
	)
	return &RandomSummary{Users: users, Tweets: len(tweets)}, nil
}

// Clear removes all rows in dependency order.
func Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Like{}, &models.Image{}, &models.Tweet{}, &models.Follow{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
