package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/types"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	daysAgo := func(n int) *time.Time {
		d := now.AddDate(0, 0, -n)
		return &d
	}

	tests := []struct {
		name          string
		current       int
		lastCompleted *time.Time
		want          int
	}{
		{name: "first completion ever", current: 0, lastCompleted: nil, want: 1},
		{name: "same day keeps streak", current: 4, lastCompleted: &now, want: 4},
		{name: "same day with zero streak recovers to 1", current: 0, lastCompleted: &now, want: 1},
		{name: "yesterday extends", current: 4, lastCompleted: &yesterday, want: 5},
		{name: "two day gap resets", current: 9, lastCompleted: daysAgo(2), want: 1},
		{name: "long gap resets", current: 30, lastCompleted: daysAgo(45), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStreak(tt.current, tt.lastCompleted, now))
		})
	}
}

func TestNextStreakCrossesMidnight(t *testing.T) {
	// 23:59 yesterday -> 00:01 today counts as consecutive days.
	last := time.Date(2026, 3, 9, 23, 59, 0, 0, time.Local)
	now := time.Date(2026, 3, 10, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 3, nextStreak(2, &last, now))
}

func TestStreakBonus(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{streak: 1, want: 10},
		{streak: 2, want: 20},
		{streak: 5, want: 50},
		{streak: 6, want: 50},
		{streak: 30, want: 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, streakBonus(tt.streak))
	}
	assert.Equal(t, types.StreakBonusMax, streakBonus(1000))
}

func TestResetPointsTodayIfStale(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	t.Run("no completion yet", func(t *testing.T) {
		st := &models.UserStreak{PointsToday: 30}
		resetPointsTodayIfStale(st, now)
		assert.Equal(t, int64(30), st.PointsToday)
	})

	t.Run("same day keeps counter", func(t *testing.T) {
		earlier := now.Add(-2 * time.Hour)
		st := &models.UserStreak{PointsToday: 30, LastCompletedAt: &earlier}
		resetPointsTodayIfStale(st, now)
		assert.Equal(t, int64(30), st.PointsToday)
	})

	t.Run("previous day resets counter", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		st := &models.UserStreak{PointsToday: 50, LastCompletedAt: &yesterday}
		resetPointsTodayIfStale(st, now)
		assert.Equal(t, int64(0), st.PointsToday)
	})
}

func TestSettleCompletion(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	earlier := now.Add(-3 * time.Hour)

	t.Run("at the cap the points are rejected, not errored", func(t *testing.T) {
		st := &models.UserStreak{CurrentStreak: 5, LastCompletedAt: &earlier, PointsToday: types.DailyPointCap}
		res := settleCompletion(st, 30, false, now)
		assert.False(t, res.Applied)
		assert.True(t, res.DailyLimitReached)
		assert.Equal(t, 5, res.Streak)
		assert.Equal(t, types.DailyPointCap, st.PointsToday)
		assert.Equal(t, earlier, *st.LastCompletedAt)
	})

	t.Run("crossing completion applies in full", func(t *testing.T) {
		st := &models.UserStreak{CurrentStreak: 5, LastCompletedAt: &earlier, PointsToday: 45}
		res := settleCompletion(st, 30, false, now)
		assert.True(t, res.Applied)
		assert.True(t, res.DailyLimitReached)
		assert.Equal(t, int64(75), st.PointsToday)
	})

	t.Run("premium is exempt from the cap", func(t *testing.T) {
		st := &models.UserStreak{CurrentStreak: 5, LastCompletedAt: &earlier, PointsToday: types.DailyPointCap}
		res := settleCompletion(st, 30, true, now)
		assert.True(t, res.Applied)
		assert.False(t, res.DailyLimitReached)
		assert.Equal(t, types.DailyPointCap+30, st.PointsToday)
	})

	t.Run("fresh day resets the counter before the cap check", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		st := &models.UserStreak{CurrentStreak: 2, LastCompletedAt: &yesterday, PointsToday: types.DailyPointCap}
		res := settleCompletion(st, 20, false, now)
		assert.True(t, res.Applied)
		assert.Equal(t, 3, res.Streak)
		assert.Equal(t, int64(20), st.PointsToday)
	})
}

func TestFirstCompletionAward(t *testing.T) {
	// The very first completion starts the streak at 1 and already carries
	// the base streak bonus, so a 20-point challenge grants 30 and lands a
	// seeded account at 40.
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	st := &models.UserStreak{}
	res := settleCompletion(st, 20, false, now)

	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, int64(10), res.Bonus)

	var reward int64 = 20
	assert.Equal(t, int64(30), reward+res.Bonus)
	assert.Equal(t, int64(40), types.SeedPoints+reward+res.Bonus)
}

func TestDateOf(t *testing.T) {
	late := time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)
	early := time.Date(2026, 3, 10, 0, 0, 1, 0, time.Local)
	assert.True(t, dateOf(late).Equal(dateOf(early)))
	assert.False(t, dateOf(late).Equal(dateOf(late.AddDate(0, 0, 1))))
}
