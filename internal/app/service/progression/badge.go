package progression

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

// CheckAndAwardBadges grants every streak badge whose threshold is met and
// not yet held. Safe to call repeatedly with the same streak: the grant is
// an insert-or-ignore on the (user, badge) key, so replays award nothing.
// Returns only badges awarded by this call.
func (s *Service) CheckAndAwardBadges(ctx context.Context, userID string, streak int) ([]*models.Badge, error) {
	var awarded []*models.Badge
	for _, def := range eligibleBadges(streak) {
		var badge models.Badge
		if err := s.db.WithContext(ctx).Where("code = ?", def.Code).First(&badge).Error; err != nil {
			return awarded, fmt.Errorf("failed to load badge %s: %w", def.Code, err)
		}
		grant := &models.UserBadge{UserID: userID, BadgeCode: badge.Code, AwardedAt: s.now()}
		res := s.grantBadge(ctx, grant)
		if res.Error != nil {
			return awarded, fmt.Errorf("failed to grant badge %s: %w", def.Code, res.Error)
		}
		if res.RowsAffected == 0 {
			// Already held.
			continue
		}
		awarded = append(awarded, &badge)
		s.notifyBadge(ctx, userID, &badge)
	}
	return awarded, nil
}

// grantBadge inserts the grant keyed on (user_id, badge_code); a conflict
// means the badge is already held and affects zero rows.
func (s *Service) grantBadge(ctx context.Context, grant *models.UserBadge) *gorm.DB {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_code"}},
			DoNothing: true,
		}).
		Create(grant)
}

// eligibleBadges returns the badge definitions a streak length qualifies
// for, in ascending threshold order.
func eligibleBadges(streak int) []*types.BadgeDefinition {
	var defs []*types.BadgeDefinition
	for _, def := range types.StreakBadges {
		if streak >= def.StreakThreshold {
			defs = append(defs, def)
		}
	}
	return defs
}

// notifyBadge emits the first-award notification; errors only log.
func (s *Service) notifyBadge(ctx context.Context, userID string, badge *models.Badge) {
	note := &models.Notification{
		ID:      tool.GenerateUUIDV7(),
		UserID:  userID,
		Kind:    "badge_awarded",
		Message: fmt.Sprintf("You earned the %q badge!", badge.Title),
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to save badge notification: %v", err)
	}
}

// Notifications returns the newest notifications for a user.
func (s *Service) Notifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []*models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
