package models

import "time"

// UserStreak tracks consecutive-day challenge completion and the points
// earned so far today. PointsToday is reset lazily when the calendar day
// advances past LastCompletedAt; there is no scheduled reset job.
type UserStreak struct {
	UserID          string     `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	CurrentStreak   int        `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	LastCompletedAt *time.Time `gorm:"column:last_completed_at;default:null" json:"last_completed_at"`
	PointsToday     int64      `gorm:"column:points_today;not null;default:0" json:"points_today"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (UserStreak) TableName() string {
	return "user_streak"
}
