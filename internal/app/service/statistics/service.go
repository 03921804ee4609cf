package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

// Statistic types served to the admin charts
type StatisticType string

const (
	// Daily engagement series
	StatisticTypeDailyActiveUsers         StatisticType = "daily_active_users"
	StatisticTypeDailyChallengesCompleted StatisticType = "daily_challenges_completed"
	StatisticTypeDailyPointsAwarded       StatisticType = "daily_points_awarded"
	StatisticTypeDailyBadgesAwarded       StatisticType = "daily_badges_awarded"

	// Subscription related
	StatisticTypeDailyNewSubscribers StatisticType = "daily_new_subscribers"
	StatisticTypeTotalPremiumCount   StatisticType = "total_premium_count"

	// Cumulative points awarded per reason
	StatisticTypeTotalPointsAwarded StatisticType = "total_points_awarded"
)

// Filter types supported by certain statistic types
type EngagementStatisticFilterType string

const (
	EngagementStatisticFilterTypeReason        EngagementStatisticFilterType = "reason"
	EngagementStatisticFilterTypeChallengeCode EngagementStatisticFilterType = "challenge_code"
)

var filterTypes = []EngagementStatisticFilterType{
	EngagementStatisticFilterTypeReason,
	EngagementStatisticFilterTypeChallengeCode,
}

var validFilters = map[EngagementStatisticFilterType][]StatisticType{
	EngagementStatisticFilterTypeReason:        {StatisticTypeDailyPointsAwarded, StatisticTypeTotalPointsAwarded},
	EngagementStatisticFilterTypeChallengeCode: {StatisticTypeDailyActiveUsers, StatisticTypeDailyChallengesCompleted},
}

type EngagementStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type EngagementStatisticRequest struct {
	Filters   []*types.CommonFilter          `json:"filters"`
	DataItems []*EngagementStatisticDataItem `json:"data_items"`
}

func (f *EngagementStatisticRequest) GetFilters(statisticType StatisticType) *EngagementStatisticRequest {
	if f == nil || len(f.Filters) == 0 {
		return f
	}
	var result EngagementStatisticRequest
	for _, filter := range f.Filters {
		if statisticTypes, ok := validFilters[EngagementStatisticFilterType(filter.Field)]; ok {
			if lo.Contains(statisticTypes, statisticType) {
				result.Filters = append(result.Filters, filter)
			}
		} else {
			result.Filters = append(result.Filters, filter)
		}
	}
	return &result
}

// Build composes a WHERE clause from the provided filters.
func (f *EngagementStatisticRequest) Build(builder clause.Builder) {
	if len(f.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		filter.Build(builder)
	}
}

type EngagementStatisticResponseDataItem struct {
	Date  string `json:"date"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type EngagementStatisticResponse struct {
	DataItems map[StatisticType][]EngagementStatisticResponseDataItem `json:"data_items"`
}

// Service provides admin aggregates and user administration
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// EnsureAccount lazily creates the user_account row the first time an
// authenticated user hits the API. Existing rows are left untouched.
func (s *Service) EnsureAccount(ctx context.Context, userID, email string) error {
	account := &models.UserAccount{ID: userID, Email: email}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(account).Error
}

// IsBanned reports whether the user exists and is banned.
func (s *Service) IsBanned(ctx context.Context, userID string) (bool, error) {
	var account models.UserAccount
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return account.Banned, nil
}

func (s *Service) SetBanned(ctx context.Context, userID string, banned bool) error {
	updates := map[string]any{"banned": banned}
	if banned {
		updates["banned_at"] = time.Now()
	} else {
		updates["banned_at"] = nil
	}
	res := s.db.WithContext(ctx).Model(&models.UserAccount{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("unknown user: %s", userID)
	}
	return nil
}

// Overview aggregates the headline totals for the admin dashboard and
// refreshes today's engagement snapshot in the background.
type Overview struct {
	TotalUsers               int64 `json:"total_users"`
	BannedUsers              int64 `json:"banned_users"`
	PremiumUsers             int64 `json:"premium_users"`
	TotalPointsAwarded       int64 `json:"total_points_awarded"`
	BadgesAwarded            int64 `json:"badges_awarded"`
	VideosShared             int64 `json:"videos_shared"`
	ChallengesCompletedToday int64 `json:"challenges_completed_today"`
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	var o Overview
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.UserAccount{}).Count(&o.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserAccount{}).Where("banned").Count(&o.BannedUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SubscriptionRecord{}).
		Where("subscribed AND tier = ?", types.SubscriptionTierPremium).
		Count(&o.PremiumUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.PointLog{}).Where("delta > 0").
		Select("COALESCE(SUM(delta), 0)").Scan(&o.TotalPointsAwarded).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserBadge{}).Count(&o.BadgesAwarded).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.VideoSubmission{}).Count(&o.VideosShared).Error; err != nil {
		return nil, err
	}
	today := time.Now().Format(time.DateOnly)
	if err := db.Model(&models.ChallengeProgress{}).
		Where("day = ? AND completed", today).
		Count(&o.ChallengesCompletedToday).Error; err != nil {
		return nil, err
	}

	go func() {
		if err := s.SaveEngagementDailySnapshot(context.Background(), time.Now()); err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save engagement snapshot: %v", err)
		}
	}()

	return &o, nil
}

// SaveEngagementDailySnapshot upserts the aggregate row for the given day.
// Re-running on the same day overwrites with fresher numbers.
func (s *Service) SaveEngagementDailySnapshot(ctx context.Context, day time.Time) error {
	date := day.Format(time.DateOnly)
	db := s.db.WithContext(ctx)

	snap := &models.EngagementDailySnapshot{
		ID:                tool.GenerateUUIDV7(),
		SnapshotDate:      date,
		SnapshotCreatedAt: time.Now(),
	}
	if err := db.Model(&models.ChallengeProgress{}).Where("day = ?", date).
		Distinct("user_id").Count(&snap.ActiveUsers).Error; err != nil {
		return err
	}
	if err := db.Model(&models.ChallengeProgress{}).Where("day = ? AND completed", date).
		Count(&snap.ChallengesCompleted).Error; err != nil {
		return err
	}
	if err := db.Model(&models.PointLog{}).
		Where("TO_CHAR(created_at, 'YYYY-MM-DD') = ? AND delta > 0", date).
		Select("COALESCE(SUM(delta), 0)").Scan(&snap.PointsAwarded).Error; err != nil {
		return err
	}
	if err := db.Model(&models.SubscriptionRecord{}).
		Where("subscribed AND tier = ?", types.SubscriptionTierPremium).
		Count(&snap.PremiumUsers).Error; err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"active_users", "challenges_completed", "points_awarded", "premium_users", "snapshot_created_at",
		}),
	}).Create(snap).Error
}

// Internal helpers for the daily series
func (s *Service) getDailyActiveUsers(ctx context.Context, request *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.ChallengeProgress{}).TableName()).
		Select("day as date, count(distinct user_id) as value").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyActiveUsers)}}).
		Group("day").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyChallengesCompleted(ctx context.Context, request *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.ChallengeProgress{}).TableName()).
		Select("day as date, challenge_code as label, count(*) as value").
		Where("completed").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyChallengesCompleted)}}).
		Group("day").
		Group("challenge_code").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyPointsAwarded(ctx context.Context, request *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.PointLog{}).TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, reason as label, sum(delta) as value").
		Where("delta > 0").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyPointsAwarded)}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Group("reason").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyBadgesAwarded(ctx context.Context, request *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	if err := s.badgesAwardedByDay(ctx, request).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// badgesAwardedByDay groups badge grants by their award day. user_badge
// carries awarded_at, not the usual created_at.
func (s *Service) badgesAwardedByDay(ctx context.Context, request *EngagementStatisticRequest) *gorm.DB {
	return s.db.WithContext(ctx).Table((models.UserBadge{}).TableName()).
		Select("TO_CHAR(awarded_at, 'YYYY-MM-DD') as date, badge_code as label, count(*) as value").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyBadgesAwarded)}}).
		Group("TO_CHAR(awarded_at, 'YYYY-MM-DD')").
		Group("badge_code").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
}

func (s *Service) getDailyNewSubscribers(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	err := s.db.WithContext(ctx).Raw(`
WITH distinct_dates AS (
    SELECT DISTINCT DATE(created_at) as date FROM subscription_record WHERE subscribed ORDER BY date
),
user_id_date AS (
    SELECT user_id, DATE(created_at) as date FROM subscription_record WHERE subscribed
)
SELECT TO_CHAR(d.date, 'YYYY-MM-DD') as date, COUNT(DISTINCT s.user_id) as value
FROM distinct_dates d
JOIN user_id_date s ON s.date = d.date
GROUP BY d.date
ORDER BY d.date DESC
`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalPremiumCount(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.SubscriptionRecord{}).TableName()).
		Select("count(*) as value").
		Where("subscribed AND tier = ?", types.SubscriptionTierPremium).
		Where("subscription_end IS NULL OR subscription_end >= ?", time.Now())
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalPointsAwarded(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	err := s.db.WithContext(ctx).Raw(`
WITH min_max_dates AS (
    SELECT MIN(DATE(created_at)) as min_date, MAX(DATE(created_at)) as max_date
    FROM point_log
),
distinct_dates AS (
    SELECT generate_series(min_date, max_date, '1 day'::interval) as date FROM min_max_dates
),
dates AS (
    SELECT TO_CHAR(date, 'YYYY-MM-DD') as date FROM distinct_dates
),
reasons AS (
    SELECT DISTINCT reason as label FROM point_log WHERE delta > 0
),
date_reason_combinations AS (
    SELECT d.date, r.label FROM dates d CROSS JOIN reasons r
),
awarded_date AS (
    SELECT dr.date, dr.label, COALESCE(SUM(p.delta), 0) as value
    FROM date_reason_combinations dr
    LEFT JOIN point_log p
      ON TO_CHAR(p.created_at, 'YYYY-MM-DD') = dr.date
     AND p.reason = dr.label
     AND p.delta > 0
    GROUP BY dr.date, dr.label
)
SELECT d.date as date, d.label as label, SUM(s.value) as value
FROM awarded_date d
LEFT JOIN awarded_date s ON s.date <= d.date AND s.label = d.label
GROUP BY d.date, d.label
ORDER BY d.date DESC, d.label ASC
`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getEngagementStatistic(ctx context.Context, request *EngagementStatisticRequest, dataItem *EngagementStatisticDataItem) ([]EngagementStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyActiveUsers:
		return s.getDailyActiveUsers(ctx, request)
	case StatisticTypeDailyChallengesCompleted:
		return s.getDailyChallengesCompleted(ctx, request)
	case StatisticTypeDailyPointsAwarded:
		return s.getDailyPointsAwarded(ctx, request)
	case StatisticTypeDailyBadgesAwarded:
		return s.getDailyBadgesAwarded(ctx, request)
	case StatisticTypeDailyNewSubscribers:
		return s.getDailyNewSubscribers(ctx, request)
	case StatisticTypeTotalPremiumCount:
		return s.getTotalPremiumCount(ctx, request)
	case StatisticTypeTotalPointsAwarded:
		return s.getTotalPointsAwarded(ctx, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

func (s *Service) GetEngagementStatistic(ctx context.Context, request *EngagementStatisticRequest) (*EngagementStatisticResponse, error) {
	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []EngagementStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *EngagementStatisticDataItem) {
			defer wg.Done()
			// check filter applicability
			for _, filter := range request.Filters {
				ft := EngagementStatisticFilterType(filter.Field)
				if lo.Contains(filterTypes, ft) && !lo.Contains(validFilters[ft], di.ID) {
					resChan <- &lo.Entry[StatisticType, []EngagementStatisticResponseDataItem]{Key: di.ID, Value: nil}
					return
				}
			}
			res, err := s.getEngagementStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []EngagementStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	go func() { wg.Wait(); close(errChan); close(resChan) }()

	results := make(map[StatisticType][]EngagementStatisticResponseDataItem)
	for i := 0; i < len(request.DataItems); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &EngagementStatisticResponse{DataItems: results}, nil
}
