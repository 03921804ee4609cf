package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/types"
)

func newTestService() *Service {
	return &Service{
		cfg: &config.Config{
			Billing: config.BillingConfig{PremiumPriceID: "price_premium"},
		},
		log: zap.NewNop().Sugar(),
	}
}

func TestTierForPrice(t *testing.T) {
	s := newTestService()
	assert.Equal(t, types.SubscriptionTierPremium, s.tierForPrice("price_premium"))
	// Only one paid tier exists; unknown prices still map to it.
	assert.Equal(t, types.SubscriptionTierPremium, s.tierForPrice("price_other"))
	assert.Equal(t, types.SubscriptionTierPremium, s.tierForPrice(""))
}

func TestTierForEvent(t *testing.T) {
	s := newTestService()
	assert.Equal(t, types.SubscriptionTierPremium, s.tierForEvent(&types.BillingEvent{}))
	assert.Equal(t, types.SubscriptionTierPremium, s.tierForEvent(&types.BillingEvent{Tier: types.SubscriptionTierPremium}))
}

func TestResetDailyPointsIfStale(t *testing.T) {
	s := newTestService()

	t.Run("stale reset", func(t *testing.T) {
		record := &models.SubscriptionRecord{
			PointsEarnedToday: 40,
			LastPointsReset:   time.Now().AddDate(0, 0, -1),
		}
		s.resetDailyPointsIfStale(record)
		assert.Equal(t, int64(0), record.PointsEarnedToday)
		assert.WithinDuration(t, time.Now(), record.LastPointsReset, time.Minute)
	})

	t.Run("same day untouched", func(t *testing.T) {
		last := time.Now().Add(-time.Minute)
		record := &models.SubscriptionRecord{
			PointsEarnedToday: 40,
			LastPointsReset:   last,
		}
		s.resetDailyPointsIfStale(record)
		assert.Equal(t, int64(40), record.PointsEarnedToday)
		assert.Equal(t, last, record.LastPointsReset)
	})
}

func TestApplyEventRejectsInvalid(t *testing.T) {
	s := newTestService()
	assert.Error(t, s.ApplyEvent(t.Context(), nil))
	assert.Error(t, s.ApplyEvent(t.Context(), &types.BillingEvent{}))
}
