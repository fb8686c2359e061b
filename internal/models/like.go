package models

import "time"

// Like marks a tweet as liked by a user. At most one row exists per pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_tweet" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_likes_user_tweet;index" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}
