package models

import "time"

// EngagementDailySnapshot is a per-day aggregate row backing the admin
// charts. One row per day, upserted lazily by the statistics service when
// the admin dashboard is loaded.
type EngagementDailySnapshot struct {
	ID                  string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SnapshotDate        string    `gorm:"column:snapshot_date;type:varchar(10);not null;uniqueIndex" json:"snapshot_date"`
	ActiveUsers         int64     `gorm:"column:active_users;not null;default:0" json:"active_users"`
	ChallengesCompleted int64     `gorm:"column:challenges_completed;not null;default:0" json:"challenges_completed"`
	PointsAwarded       int64     `gorm:"column:points_awarded;not null;default:0" json:"points_awarded"`
	PremiumUsers        int64     `gorm:"column:premium_users;not null;default:0" json:"premium_users"`
	SnapshotCreatedAt   time.Time `gorm:"column:snapshot_created_at" json:"snapshot_created_at"`
}

func (EngagementDailySnapshot) TableName() string {
	return "engagement_daily_snapshot"
}
