// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is an account that can post, follow and like.
// Following and Followers are read views filled by the repository from the
// follows edge table; they are never persisted through the user row.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;uniqueIndex;not null" json:"name"`
	APIKey    string    `gorm:"column:api_key;size:128;uniqueIndex;not null" json:"-"`
	Avatar    string    `gorm:"size:255" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"-"`

	Following []User `gorm:"-" json:"following"`
	Followers []User `gorm:"-" json:"followers"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
