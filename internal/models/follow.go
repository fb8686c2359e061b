package models

import "time"

// Follow is a directed edge: FollowerID follows FolloweeID.
// The composite primary key makes the ordered pair unique.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false;check:chk_follows_not_self,follower_id <> followee_id" json:"follower_id"`
	FolloweeID uint      `gorm:"primaryKey;autoIncrement:false;index:idx_follows_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
