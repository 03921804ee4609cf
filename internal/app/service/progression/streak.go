package progression

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/types"
)

const dayLayout = time.DateOnly

// CompletionResult reports the streak state after a completed challenge.
type CompletionResult struct {
	Streak      int
	PointsToday int64
	Bonus       int64
	// Applied is false when the daily cap rejected the completion's points.
	Applied bool
	// DailyLimitReached signals that the cap is now (or was already) hit.
	// It is a normal state for the caller to surface, not an error.
	DailyLimitReached bool
}

// now is indirected for tests.
var timeNow = time.Now

func (s *Service) now() time.Time { return timeNow() }

// RecordCompletion settles the streak for one completed challenge worth
// pointsEarned. Streak math: same-day completions leave the streak alone, a
// yesterday completion extends it, anything else restarts at 1. capExempt
// (premium accounts) skips the daily cap check.
func (s *Service) RecordCompletion(ctx context.Context, userID string, pointsEarned int64, capExempt bool) (*CompletionResult, error) {
	streak, err := s.loadOrInitStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := settleCompletion(streak, pointsEarned, capExempt, s.now())
	if !res.Applied {
		return res, nil
	}

	if err := s.db.WithContext(ctx).Save(streak).Error; err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}
	return res, nil
}

// settleCompletion applies the streak and cap rules to the loaded row for one
// completion at now, mutating the row when the completion applies. A row at
// the cap rejects the points but keeps the result a normal outcome; a
// completion that crosses the cap applies in full.
func settleCompletion(streak *models.UserStreak, pointsEarned int64, capExempt bool, now time.Time) *CompletionResult {
	resetPointsTodayIfStale(streak, now)

	if !capExempt && streak.PointsToday >= types.DailyPointCap {
		return &CompletionResult{
			Streak:            streak.CurrentStreak,
			PointsToday:       streak.PointsToday,
			Applied:           false,
			DailyLimitReached: true,
		}
	}

	streak.CurrentStreak = nextStreak(streak.CurrentStreak, streak.LastCompletedAt, now)
	streak.LastCompletedAt = &now
	streak.PointsToday += pointsEarned

	return &CompletionResult{
		Streak:            streak.CurrentStreak,
		PointsToday:       streak.PointsToday,
		Bonus:             streakBonus(streak.CurrentStreak),
		Applied:           true,
		DailyLimitReached: !capExempt && streak.PointsToday >= types.DailyPointCap,
	}
}

func (s *Service) loadOrInitStreak(ctx context.Context, userID string) (*models.UserStreak, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	init := &models.UserStreak{UserID: userID}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(init).Error; err != nil {
		return nil, fmt.Errorf("failed to init streak row: %w", err)
	}
	var streak models.UserStreak
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&streak).Error; err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}
	return &streak, nil
}

// nextStreak computes the streak value for a completion happening at now.
func nextStreak(current int, lastCompleted *time.Time, now time.Time) int {
	if lastCompleted == nil {
		return 1
	}
	last := dateOf(*lastCompleted)
	today := dateOf(now)
	switch {
	case last.Equal(today):
		if current == 0 {
			return 1
		}
		return current
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

// streakBonus is the per-completion bonus, scaled by streak length.
func streakBonus(streak int) int64 {
	bonus := int64(streak) * types.StreakBonusPerDay
	if bonus > types.StreakBonusMax {
		return types.StreakBonusMax
	}
	return bonus
}

// resetPointsTodayIfStale zeroes the daily counter when the calendar day has
// advanced past the last completion. The zeroed value is persisted on the
// next Save; reads treat it as already reset.
func resetPointsTodayIfStale(streak *models.UserStreak, now time.Time) {
	if streak.LastCompletedAt == nil {
		return
	}
	if dateOf(*streak.LastCompletedAt).Before(dateOf(now)) {
		streak.PointsToday = 0
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
