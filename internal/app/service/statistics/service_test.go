package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/growthlab/boostup/pkg/types"
)

func newDryRunService(t *testing.T) *Service {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return New(db, zap.NewNop().Sugar())
}

func TestBadgesAwardedByDayGroupsByAwardTime(t *testing.T) {
	svc := newDryRunService(t)

	var rows []EngagementStatisticResponseDataItem
	stmt := svc.badgesAwardedByDay(t.Context(), &EngagementStatisticRequest{}).Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "user_badge")
	assert.Contains(t, sql, "awarded_at")
	assert.NotContains(t, sql, "created_at")
}

func TestGetFiltersApplicability(t *testing.T) {
	req := &EngagementStatisticRequest{
		Filters: []*types.CommonFilter{
			{Field: "reason", Operator: types.CommonFilterOperatorEq, Values: []any{"follow_profile"}},
			{Field: "challenge_code", Operator: types.CommonFilterOperatorEq, Values: []any{"share_video"}},
			{Field: "day", Operator: types.CommonFilterOperatorRange, Values: []any{"2026-03-01", "2026-03-31"}},
		},
	}

	t.Run("point stat keeps reason and generic filters", func(t *testing.T) {
		got := req.GetFilters(StatisticTypeDailyPointsAwarded)
		require.Len(t, got.Filters, 2)
		assert.Equal(t, "reason", got.Filters[0].Field)
		assert.Equal(t, "day", got.Filters[1].Field)
	})

	t.Run("challenge stat keeps challenge_code and generic filters", func(t *testing.T) {
		got := req.GetFilters(StatisticTypeDailyChallengesCompleted)
		require.Len(t, got.Filters, 2)
		assert.Equal(t, "challenge_code", got.Filters[0].Field)
		assert.Equal(t, "day", got.Filters[1].Field)
	})

	t.Run("subscription stat keeps only generic filters", func(t *testing.T) {
		got := req.GetFilters(StatisticTypeDailyNewSubscribers)
		require.Len(t, got.Filters, 1)
		assert.Equal(t, "day", got.Filters[0].Field)
	})
}

func TestGetFiltersNilRequest(t *testing.T) {
	var req *EngagementStatisticRequest
	assert.Nil(t, req.GetFilters(StatisticTypeDailyPointsAwarded))

	empty := &EngagementStatisticRequest{}
	assert.Equal(t, empty, empty.GetFilters(StatisticTypeDailyPointsAwarded))
}
