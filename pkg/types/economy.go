package types

// Point economy constants. Tests in the progression and billing services
// assert against these values; change with care.
const (
	// SeedPoints is granted when a user's statistics row is first created.
	SeedPoints int64 = 10

	// DailyPointCap is the maximum challenge points earnable per calendar
	// day on the free tier. Premium accounts are not capped.
	DailyPointCap int64 = 50

	// StreakBonusPerDay scales the per-completion streak bonus; the bonus
	// is capped at StreakBonusMax.
	StreakBonusPerDay int64 = 10
	StreakBonusMax    int64 = 50

	// FollowPoints is granted per newly followed profile.
	FollowPoints int64 = 2
	// VideoPoints is granted per accepted video submission.
	VideoPoints int64 = 5

	// SubscriptionBonusPoints is the one-time bonus on a completed
	// subscription checkout.
	SubscriptionBonusPoints int64 = 200
)
