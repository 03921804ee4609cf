package types

type BadgeCode string

const (
	BadgeStreak3  BadgeCode = "streak_3"
	BadgeStreak7  BadgeCode = "streak_7"
	BadgeStreak30 BadgeCode = "streak_30"
)

// BadgeDefinition is a streak-threshold achievement. Definitions are seeded
// into the badge table at startup; earned badges are rows in user_badge.
type BadgeDefinition struct {
	Code            BadgeCode `json:"code"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StreakThreshold int       `json:"streak_threshold"`
}

// StreakBadges is ordered by ascending threshold.
var StreakBadges = []*BadgeDefinition{
	{Code: BadgeStreak3, Title: "On a Roll", Description: "3-day challenge streak", StreakThreshold: 3},
	{Code: BadgeStreak7, Title: "Week Warrior", Description: "7-day challenge streak", StreakThreshold: 7},
	{Code: BadgeStreak30, Title: "Creator Habit", Description: "30-day challenge streak", StreakThreshold: 30},
}
