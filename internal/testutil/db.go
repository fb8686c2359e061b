// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"microblog/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory sqlite database with the schema applied.
// A single connection keeps every statement on the same in-memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Tweet{}, &models.Image{}, &models.Like{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given name. The api key equals the name.
func CreateUser(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, APIKey: name}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// CreateFollow inserts a follow edge.
func CreateFollow(t testing.TB, db *gorm.DB, follower, followee uint) {
	t.Helper()
	if err := db.Create(&models.Follow{FollowerID: follower, FolloweeID: followee}).Error; err != nil {
		t.Fatalf("create follow %d->%d: %v", follower, followee, err)
	}
}

// CreateTweet inserts a tweet owned by userID.
func CreateTweet(t testing.TB, db *gorm.DB, userID uint, content string) *models.Tweet {
	t.Helper()
	tw := &models.Tweet{UserID: userID, Content: content}
	if err := db.Create(tw).Error; err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	return tw
}

// CreateImage inserts an image row. tweetID may be nil for an unattached upload.
func CreateImage(t testing.TB, db *gorm.DB, uploaderID uint, tweetID *uint, path string) *models.Image {
	t.Helper()
	img := &models.Image{UploaderID: &uploaderID, TweetID: tweetID, Path: path}
	if err := db.Create(img).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}
	return img
}

// Count returns the number of rows in model's table.
func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
