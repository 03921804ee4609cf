package progression

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/gorm/utils/tests"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/types"
)

// Granting the same badge twice must award once: the insert is keyed on the
// (user_id, badge_code) primary key and ignores conflicts, so a replay
// affects zero rows and never re-notifies.
func TestGrantBadgeIgnoresReplays(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	svc := NewService(db, zap.NewNop().Sugar(), nil)

	grant := &models.UserBadge{UserID: "u1", BadgeCode: types.BadgeStreak3, AwardedAt: time.Now()}
	sql := svc.grantBadge(t.Context(), grant).Statement.SQL.String()

	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "DO NOTHING")
	assert.Contains(t, sql, "user_id")
	assert.Contains(t, sql, "badge_code")
}

func TestUserBadgeKeyedPerUserAndBadge(t *testing.T) {
	parsed, err := schema.Parse(&models.UserBadge{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "badge_code"}, parsed.PrimaryFieldDBNames)
}

func TestStreakBadgeThresholds(t *testing.T) {
	byCode := map[types.BadgeCode]int{}
	for _, b := range types.StreakBadges {
		byCode[b.Code] = b.StreakThreshold
	}
	assert.Equal(t, 3, byCode[types.BadgeStreak3])
	assert.Equal(t, 7, byCode[types.BadgeStreak7])
	assert.Equal(t, 30, byCode[types.BadgeStreak30])
}

func TestEligibleBadges(t *testing.T) {
	codes := func(defs []*types.BadgeDefinition) []types.BadgeCode {
		var out []types.BadgeCode
		for _, d := range defs {
			out = append(out, d.Code)
		}
		return out
	}

	tests := []struct {
		streak int
		want   []types.BadgeCode
	}{
		{streak: 0, want: nil},
		{streak: 2, want: nil},
		{streak: 3, want: []types.BadgeCode{types.BadgeStreak3}},
		{streak: 7, want: []types.BadgeCode{types.BadgeStreak3, types.BadgeStreak7}},
		{streak: 29, want: []types.BadgeCode{types.BadgeStreak3, types.BadgeStreak7}},
		{streak: 30, want: []types.BadgeCode{types.BadgeStreak3, types.BadgeStreak7, types.BadgeStreak30}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codes(eligibleBadges(tt.streak)), "streak %d", tt.streak)
	}
}
