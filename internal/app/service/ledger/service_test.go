package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

// The tx variant must stay off the leaderboard cache: its caller may still
// roll back, and a rolled-back grant must not leave a score behind. A nil
// board makes any cache touch a hard failure.
func TestAddPointsTxLeavesCacheAlone(t *testing.T) {
	svc := NewService(newDryRunDB(t), zap.NewNop().Sugar(), nil)

	callerTx := newDryRunDB(t)
	_, err := svc.AddPointsTx(t.Context(), callerTx, "u1", 5, "follow_profile")
	assert.NoError(t, err)
}

func TestAddPointsTxRejectsEmptyUser(t *testing.T) {
	svc := NewService(newDryRunDB(t), zap.NewNop().Sugar(), nil)

	_, err := svc.AddPointsTx(t.Context(), newDryRunDB(t), "", 5, "follow_profile")
	assert.Error(t, err)
}

func TestIncrementCounterRejectsUnknownColumn(t *testing.T) {
	svc := NewService(newDryRunDB(t), zap.NewNop().Sugar(), nil)

	err := svc.IncrementCounter(t.Context(), "u1", Counter("points"))
	assert.Error(t, err)

	for counter := range counterColumns {
		assert.NoError(t, svc.IncrementCounter(t.Context(), "u1", counter))
	}
}
