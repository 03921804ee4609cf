package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/app/service/leaderboard"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

// Counter names a UserStatistics engagement counter. The ledger only bumps
// columns from this fixed set.
type Counter string

const (
	CounterFollowersGained          Counter = "followers_gained"
	CounterIdeasGenerated           Counter = "ideas_generated"
	CounterAnalysesCompleted        Counter = "analyses_completed"
	CounterVideosShared             Counter = "videos_shared"
	CounterDailyChallengesCompleted Counter = "daily_challenges_completed"
)

var counterColumns = map[Counter]struct{}{
	CounterFollowersGained:          {},
	CounterIdeasGenerated:           {},
	CounterAnalysesCompleted:        {},
	CounterVideosShared:             {},
	CounterDailyChallengesCompleted: {},
}

// Service is the only writer of the points balance. All mutations are
// single-statement atomic increments at the store; callers never compute a
// new balance in application code.
type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	board *leaderboard.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, board *leaderboard.Service) *Service {
	return &Service{db: db, log: log, board: board}
}

// EnsureStatistics creates the per-user statistics row with the seed balance
// if it does not exist, then returns the current row.
func (s *Service) EnsureStatistics(ctx context.Context, userID string) (*models.UserStatistics, error) {
	return s.ensureStatistics(ctx, s.db, userID)
}

func (s *Service) ensureStatistics(ctx context.Context, db *gorm.DB, userID string) (*models.UserStatistics, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	seed := &models.UserStatistics{UserID: userID, Points: types.SeedPoints}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure statistics row: %w", err)
	}
	var stats models.UserStatistics
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}
	return &stats, nil
}

// AddPoints atomically applies delta to the balance and returns the new
// balance. Negative deltas (admin corrections) clamp at zero. The statement
// is a single UPDATE, so concurrent writers cannot lose increments.
func (s *Service) AddPoints(ctx context.Context, userID string, delta int64, reason string) (int64, error) {
	balance, err := s.AddPointsTx(ctx, s.db, userID, delta, reason)
	if err != nil {
		return 0, err
	}
	s.board.Set(ctx, userID, balance)
	return balance, nil
}

// AddPointsTx is AddPoints running against a caller-supplied transaction, so
// a caller can make the grant atomic with its own writes (the webhook
// handler pairs it with the processed-event insert). The audit row shares
// the supplied handle: if the caller's transaction rolls back, the log never
// claims a grant that did not happen. The leaderboard cache is not touched
// here; callers mirror via MirrorBalance once their transaction commits.
func (s *Service) AddPointsTx(ctx context.Context, db *gorm.DB, userID string, delta int64, reason string) (int64, error) {
	if _, err := s.ensureStatistics(ctx, db, userID); err != nil {
		return 0, err
	}

	var balance int64
	err := db.WithContext(ctx).Raw(
		`UPDATE user_statistics SET points = GREATEST(points + ?, 0), updated_at = NOW() WHERE user_id = ? RETURNING points`,
		delta, userID,
	).Scan(&balance).Error
	if err != nil {
		return 0, fmt.Errorf("failed to apply points delta: %w", err)
	}

	entry := &models.PointLog{
		ID:           tool.GenerateUUIDV7(),
		UserID:       userID,
		Delta:        delta,
		Reason:       reason,
		BalanceAfter: balance,
	}
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return 0, fmt.Errorf("failed to save point log: %w", err)
	}

	return balance, nil
}

// MirrorBalance refreshes the cached leaderboard score from the committed
// balance. Failures only log; the cache rebuilds from the database anyway.
func (s *Service) MirrorBalance(ctx context.Context, userID string) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("balance_mirror_failed", "err", err, "user_id", userID)
		}
		return
	}
	s.board.Set(ctx, userID, balance)
}

// IncrementCounter bumps one engagement counter by one.
func (s *Service) IncrementCounter(ctx context.Context, userID string, counter Counter) error {
	if _, ok := counterColumns[counter]; !ok {
		return fmt.Errorf("unknown counter: %s", counter)
	}
	if _, err := s.EnsureStatistics(ctx, userID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.UserStatistics{}).
		Where("user_id = ?", userID).
		UpdateColumn(string(counter), gorm.Expr(string(counter)+" + 1")).Error
}

// Balance returns the current points balance without creating the row.
func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	var stats models.UserStatistics
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return 0, err
	}
	return stats.Points, nil
}

// RecentPointLogs returns the newest ledger entries for a user.
func (s *Service) RecentPointLogs(ctx context.Context, userID string, limit int) ([]*models.PointLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []*models.PointLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
