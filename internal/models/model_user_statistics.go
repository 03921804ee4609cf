package models

import "time"

// UserStatistics is the authoritative per-user points balance plus the
// engagement counters shown on the dashboard. Created lazily with the seed
// balance; all numeric columns are mutated only through atomic increments
// (see the ledger service), never read-modify-write.
type UserStatistics struct {
	UserID                   string    `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	Points                   int64     `gorm:"column:points;not null;default:0" json:"points"`
	FollowersGained          int64     `gorm:"column:followers_gained;not null;default:0" json:"followers_gained"`
	IdeasGenerated           int64     `gorm:"column:ideas_generated;not null;default:0" json:"ideas_generated"`
	AnalysesCompleted        int64     `gorm:"column:analyses_completed;not null;default:0" json:"analyses_completed"`
	VideosShared             int64     `gorm:"column:videos_shared;not null;default:0" json:"videos_shared"`
	DailyChallengesCompleted int64     `gorm:"column:daily_challenges_completed;not null;default:0" json:"daily_challenges_completed"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}
