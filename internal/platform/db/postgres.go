package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/models"
	cfgpkg "github.com/growthlab/boostup/pkg/config"
	gormzap "github.com/growthlab/boostup/pkg/gormlog"
	"github.com/growthlab/boostup/pkg/types"
)

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(SeedBadges),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserAccount{},
		&models.UserStatistics{},
		&models.UserStreak{},
		&models.Badge{},
		&models.UserBadge{},
		&models.ChallengeProgress{},
		&models.SubscriptionRecord{},
		&models.SubscriptionChangeLog{},
		&models.FollowedProfile{},
		&models.VideoSubmission{},
		&models.PointLog{},
		&models.ProcessedBillingEvent{},
		&models.BillingEventLog{},
		&models.Notification{},
		&models.AdUnit{},
		&models.EngagementDailySnapshot{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// SeedBadges inserts the badge definitions; existing rows are left alone.
func SeedBadges(l *zap.SugaredLogger, db *gorm.DB) error {
	for _, def := range types.StreakBadges {
		badge := &models.Badge{
			Code:            def.Code,
			Title:           def.Title,
			Description:     def.Description,
			StreakThreshold: def.StreakThreshold,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(badge).Error; err != nil {
			l.Errorf("badge seed failed: %v", err)
			return err
		}
	}
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
