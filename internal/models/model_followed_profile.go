package models

import "time"

// FollowedProfile records that a user already followed a suggested profile.
// The composite primary key prevents double point-earning for the same
// follow and keeps the suggestion feed from re-offering the target.
type FollowedProfile struct {
	UserID    string    `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	ProfileID string    `gorm:"column:profile_id;type:varchar(64);primary_key" json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (FollowedProfile) TableName() string {
	return "followed_profile"
}
