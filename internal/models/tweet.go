package models

import (
	"time"
	"unicode/utf8"
)

// MaxTweetLength is the maximum tweet body length in characters.
const MaxTweetLength = 280

// Tweet is a short post owned by a single user.
type Tweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"column:tweet_data;size:280;not null" json:"content"`
	UserID    uint      `gorm:"not null;index:idx_tweets_user_created,priority:1" json:"user_id"`
	CreatedAt time.Time `gorm:"index:idx_tweets_user_created,priority:2" json:"created_at"`

	// Relationships
	Author User    `gorm:"foreignKey:UserID" json:"author"`
	Likes  []Like  `gorm:"foreignKey:TweetID" json:"likes"`
	Images []Image `gorm:"foreignKey:TweetID" json:"images"`
}

// TableName specifies the table name for GORM
func (Tweet) TableName() string {
	return "tweets"
}

// ContentLength returns the body length in characters, not bytes.
func ContentLength(content string) int {
	return utf8.RuneCountInString(content)
}
