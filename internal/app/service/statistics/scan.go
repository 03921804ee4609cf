package statistics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/pkg/types"
)

type ScanUsersRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

// UserScanRow is the flattened admin view of one user across the account,
// statistics, streak and subscription tables.
type UserScanRow struct {
	UserID        string                 `json:"user_id"`
	Email         string                 `json:"email"`
	Banned        bool                   `json:"banned"`
	Points        int64                  `json:"points"`
	CurrentStreak int                    `json:"current_streak"`
	Subscribed    bool                   `json:"subscribed"`
	Tier          types.SubscriptionTier `json:"tier"`
	CreatedAt     time.Time              `json:"created_at"`
}

type ScanUsersResponse struct {
	Items []*UserScanRow `json:"items"`
	Total int64          `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ScanUsers implements paginated admin listing with filters. Filter fields
// address the joined columns, e.g. "banned", "points", "current_streak",
// "subscribed", "tier", "email".
func (s *Service) ScanUsers(ctx context.Context, req *ScanUsersRequest) (*ScanUsersResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Table("user_account").
		Select(`user_account.id as user_id, user_account.email, user_account.banned,
COALESCE(user_statistics.points, 0) as points,
COALESCE(user_streak.current_streak, 0) as current_streak,
COALESCE(subscription_record.subscribed, false) as subscribed,
COALESCE(subscription_record.tier, '') as tier,
user_account.created_at`).
		Joins("LEFT JOIN user_statistics ON user_statistics.user_id = user_account.id").
		Joins("LEFT JOIN user_streak ON user_streak.user_id = user_account.id").
		Joins("LEFT JOIN subscription_record ON subscription_record.user_id = user_account.id")
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var rows []*UserScanRow

	q := tx.Limit(req.Size)

	if req.From > 0 {
		q = q.Offset(req.From)
	}

	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ScanUsersResponse{Items: rows, Total: total}, nil
}
