package leaderboard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"gorm.io/gorm"
)

const pointsKey = "leaderboard:points"

// Service mirrors points balances into a redis sorted set for cheap top-N
// queries. Redis is a cache, not the source of truth; on a miss the set is
// rebuilt from user_statistics.
type Service struct {
	rdb *redis.Client
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(rdb *redis.Client, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{rdb: rdb, db: db, log: log}
}

type Entry struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
	Rank   int64  `json:"rank"`
}

// Set overwrites a user's cached score with their committed balance.
// Failures are logged and swallowed; the ledger must not fail because the
// cache is down.
func (s *Service) Set(ctx context.Context, userID string, points int64) {
	if err := s.rdb.ZAdd(ctx, pointsKey, redis.Z{Score: float64(points), Member: userID}).Err(); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("leaderboard_set_failed", "err", err, "user_id", userID)
	}
}

// Top returns the highest balances, rebuilding the set from the database
// when it is empty.
func (s *Service) Top(ctx context.Context, n int64) ([]*Entry, error) {
	if n <= 0 {
		n = 10
	}
	size, err := s.rdb.ZCard(ctx, pointsKey).Result()
	if err == nil && size == 0 {
		if err := s.rebuild(ctx); err != nil {
			return nil, err
		}
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, pointsKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]*Entry, 0, len(zs))
	for i, z := range zs {
		id, _ := z.Member.(string)
		entries = append(entries, &Entry{UserID: id, Points: int64(z.Score), Rank: int64(i) + 1})
	}
	return entries, nil
}

// Rank returns the 1-based rank of a user, or 0 when unranked.
func (s *Service) Rank(ctx context.Context, userID string) (int64, error) {
	rank, err := s.rdb.ZRevRank(ctx, pointsKey, userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}

func (s *Service) rebuild(ctx context.Context) error {
	var rows []*models.UserStatistics
	if err := s.db.WithContext(ctx).Select("user_id", "points").Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(rows))
	for _, row := range rows {
		members = append(members, redis.Z{Score: float64(row.Points), Member: row.UserID})
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, pointsKey)
	pipe.ZAdd(ctx, pointsKey, members...)
	pipe.Expire(ctx, pointsKey, 24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}
