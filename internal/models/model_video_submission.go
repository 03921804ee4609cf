package models

import "time"

// VideoSubmission is a video submitted for likes/views. ExternalVideoID is
// the platform's video identifier extracted from the submitted URL; its
// unique index rejects duplicate submissions across all users.
type VideoSubmission struct {
	ID              string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID          string    `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	URL             string    `gorm:"column:url;type:varchar(512);not null" json:"url"`
	ExternalVideoID string    `gorm:"column:external_video_id;type:varchar(64);not null;uniqueIndex" json:"external_video_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (VideoSubmission) TableName() string {
	return "video_submission"
}
