package models

import (
	"time"

	"github.com/growthlab/boostup/pkg/types"
)

// ChallengeProgress is one user's progress on one challenge for one calendar
// day. Day is a DateOnly string so the unique index gives implicit per-day
// rows; within a day Progress is non-decreasing and Completed never reverts.
type ChallengeProgress struct {
	ID            string              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID        string              `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_user_challenge_day,priority:1" json:"user_id"`
	ChallengeCode types.ChallengeCode `gorm:"column:challenge_code;type:varchar(64);not null;uniqueIndex:idx_user_challenge_day,priority:2" json:"challenge_code"`
	Day           string              `gorm:"column:day;type:varchar(10);not null;uniqueIndex:idx_user_challenge_day,priority:3" json:"day"`
	Progress      int                 `gorm:"column:progress;not null;default:0" json:"progress"`
	Goal          int                 `gorm:"column:goal;not null" json:"goal"`
	Completed     bool                `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
