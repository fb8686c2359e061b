// Package seed loads demo and random data into the database. It is meant
// for development and testing only.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed demo.yaml
var demoYAML []byte

// Fixture is a declarative data set. Users are referenced by api key and
// tweets by their fixture key.
type Fixture struct {
	Users []struct {
		Name   string `yaml:"name"`
		APIKey string `yaml:"api_key"`
	} `yaml:"users"`
	Follows []struct {
		Follower string `yaml:"follower"`
		Followee string `yaml:"followee"`
	} `yaml:"follows"`
	Tweets []struct {
		Key     string   `yaml:"key"`
		Author  string   `yaml:"author"`
		Content string   `yaml:"content"`
		Images  []string `yaml:"images"`
	} `yaml:"tweets"`
	Likes []struct {
		User  string `yaml:"user"`
		Tweet string `yaml:"tweet"`
	} `yaml:"likes"`
}

// DemoFixture returns the embedded demo data set.
func DemoFixture() (*Fixture, error) {
	return ParseFixture(demoYAML)
}

// ParseFixture decodes a fixture and checks its references.
func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if err := validation.ValidateUsername(u.Name); err != nil {
			return nil, fmt.Errorf("fixture user %q: %w", u.APIKey, err)
		}
		if err := validation.ValidateAPIKey(u.APIKey); err != nil {
			return nil, fmt.Errorf("fixture user %q: %w", u.Name, err)
		}
		users[u.APIKey] = true
	}
	for _, fl := range f.Follows {
		if !users[fl.Follower] || !users[fl.Followee] {
			return nil, fmt.Errorf("follow %s -> %s references an unknown user", fl.Follower, fl.Followee)
		}
		if fl.Follower == fl.Followee {
			return nil, fmt.Errorf("user %s cannot follow itself", fl.Follower)
		}
	}
	tweets := make(map[string]bool, len(f.Tweets))
	for _, t := range f.Tweets {
		if !users[t.Author] {
			return nil, fmt.Errorf("tweet %s references unknown author %s", t.Key, t.Author)
		}
		if models.ContentLength(t.Content) > models.MaxTweetLength {
			return nil, fmt.Errorf("tweet %s is longer than %d characters", t.Key, models.MaxTweetLength)
		}
		tweets[t.Key] = true
	}
	for _, l := range f.Likes {
		if !users[l.User] || !tweets[l.Tweet] {
			return nil, fmt.Errorf("like %s -> %s references unknown data", l.User, l.Tweet)
		}
	}
	return &f, nil
}

// Demo loads the embedded demo fixture. It is safe to run repeatedly.
func Demo(ctx context.Context, db *gorm.DB, mediaRoot string) error {
	f, err := DemoFixture()
	if err != nil {
		return err
	}
	return Apply(ctx, db, mediaRoot, f)
}

// Apply upserts the fixture in a single transaction. Existing users, tweets
// and images are matched by api key, author+content and path respectively.
// Placeholder image files are written under mediaRoot when missing.
func Apply(ctx context.Context, db *gorm.DB, mediaRoot string, f *Fixture) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs := make(map[string]uint, len(f.Users))
		for _, u := range f.Users {
			user := models.User{Username: u.Name, APIKey: u.APIKey}
			if err := tx.Where(models.User{APIKey: u.APIKey}).FirstOrCreate(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Name, err)
			}
			userIDs[u.APIKey] = user.ID
		}

		for _, fl := range f.Follows {
			edge := models.Follow{FollowerID: userIDs[fl.Follower], FolloweeID: userIDs[fl.Followee]}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}

		tweetIDs := make(map[string]uint, len(f.Tweets))
		for _, t := range f.Tweets {
			tweet := models.Tweet{UserID: userIDs[t.Author], Content: t.Content}
			if err := tx.Where("user_id = ? AND tweet_data = ?", tweet.UserID, tweet.Content).
				FirstOrCreate(&tweet).Error; err != nil {
				return fmt.Errorf("seed tweet %s: %w", t.Key, err)
			}
			tweetIDs[t.Key] = tweet.ID

			for _, p := range t.Images {
				uploader := tweet.UserID
				tweetID := tweet.ID
				img := models.Image{Path: p, TweetID: &tweetID, UploaderID: &uploader}
				if err := tx.Where("path_media = ?", p).FirstOrCreate(&img).Error; err != nil {
					return fmt.Errorf("seed image %s: %w", p, err)
				}
			}
		}

		for _, l := range f.Likes {
			like := models.Like{UserID: userIDs[l.User], TweetID: tweetIDs[l.Tweet]}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if mediaRoot != "" {
		for i, t := range f.Tweets {
			for _, p := range t.Images {
				if err := writePlaceholder(filepath.Join(mediaRoot, filepath.FromSlash(p)), i); err != nil {
					return err
				}
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "demo data loaded",
		slog.Int("users", len(f.Users)),
		slog.Int("tweets", len(f.Tweets)),
	)
	return nil
}

var placeholderColors = []color.RGBA{
	{R: 0x1d, G: 0x9b, B: 0xf0, A: 0xff},
	{R: 0xf9, G: 0x18, B: 0x80, A: 0xff},
	{R: 0x00, G: 0xba, B: 0x7c, A: 0xff},
}

func writePlaceholder(path string, n int) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := placeholderColors[n%len(placeholderColors)]
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create placeholder: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode placeholder: %w", err)
	}
	return out.Close()
}
