package models

import "time"

// Image is an uploaded media file. TweetID stays nil until the image is
// attached to a tweet, and is set at most once.
type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TweetID    *uint     `gorm:"index" json:"tweet_id,omitempty"`
	UploaderID *uint     `gorm:"index" json:"uploader_id,omitempty"`
	Path       string    `gorm:"column:path_media;size:512;not null" json:"path"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Image) TableName() string {
	return "images"
}
