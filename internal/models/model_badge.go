package models

import (
	"time"

	"github.com/growthlab/boostup/pkg/types"
)

// Badge is an achievement definition, seeded at startup from
// types.StreakBadges.
type Badge struct {
	Code            types.BadgeCode `gorm:"column:code;type:varchar(64);primary_key" json:"code"`
	Title           string          `gorm:"column:title;type:varchar(128);not null" json:"title"`
	Description     string          `gorm:"column:description;type:varchar(255)" json:"description"`
	StreakThreshold int             `gorm:"column:streak_threshold;not null" json:"streak_threshold"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Badge) TableName() string {
	return "badge"
}

// UserBadge marks an earned badge. Row existence is the achievement signal;
// the composite primary key makes the grant idempotent at the store level.
type UserBadge struct {
	UserID    string          `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	BadgeCode types.BadgeCode `gorm:"column:badge_code;type:varchar(64);primary_key" json:"badge_code"`
	AwardedAt time.Time       `gorm:"column:awarded_at;not null" json:"awarded_at"`
}

func (UserBadge) TableName() string {
	return "user_badge"
}
