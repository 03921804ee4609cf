package progression

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/types"
)

var ErrUnknownChallenge = errors.New("unknown challenge")

// Service owns the streak, badge, and challenge-progress state and is the
// single call site for the advance → streak → award sequence. Engagement
// flows and the daily-challenge flow both route through CompleteChallengeStep
// instead of re-implementing the reconciliation.
type Service struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	ledger *ledger.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, led *ledger.Service) *Service {
	return &Service{db: db, log: log, ledger: led}
}

// StepResult is the outcome of one challenge step for the caller's UI.
type StepResult struct {
	Challenge     types.ChallengeCode `json:"challenge"`
	Progress      int                 `json:"progress"`
	Goal          int                 `json:"goal"`
	Completed     bool                `json:"completed"`
	JustCompleted bool                `json:"just_completed"`
	// Fields below are set only when JustCompleted.
	Streak            int               `json:"streak,omitempty"`
	PointsAwarded     int64             `json:"points_awarded,omitempty"`
	Bonus             int64             `json:"bonus,omitempty"`
	DailyLimitReached bool              `json:"daily_limit_reached,omitempty"`
	NewBadges         []types.BadgeCode `json:"new_badges,omitempty"`
}

// CompleteChallengeStep advances a challenge by one step and, when the step
// completes the challenge for the day, settles streak, points, and badges.
// The daily cap is a normal terminal state, not an error.
func (s *Service) CompleteChallengeStep(ctx context.Context, userID string, code types.ChallengeCode) (*StepResult, error) {
	def := types.ChallengeByCode(code)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChallenge, code)
	}

	adv, err := s.AdvanceChallenge(ctx, userID, code, def.Goal)
	if err != nil {
		return nil, err
	}
	res := &StepResult{
		Challenge:     code,
		Progress:      adv.Progress,
		Goal:          def.Goal,
		Completed:     adv.Completed,
		JustCompleted: adv.JustCompleted,
	}
	if !adv.JustCompleted {
		return res, nil
	}

	comp, err := s.RecordCompletion(ctx, userID, def.RewardPoints, s.premium(ctx, userID))
	if err != nil {
		return nil, err
	}
	res.Streak = comp.Streak
	res.DailyLimitReached = comp.DailyLimitReached

	if comp.Applied {
		res.Bonus = comp.Bonus
		res.PointsAwarded = def.RewardPoints + comp.Bonus
		if _, err := s.ledger.AddPoints(ctx, userID, res.PointsAwarded, "challenge_reward"); err != nil {
			return nil, err
		}
		if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterDailyChallengesCompleted); err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("challenge_counter_bump_failed", "err", err, "user_id", userID)
		}
	}

	awarded, err := s.CheckAndAwardBadges(ctx, userID, comp.Streak)
	if err != nil {
		// The streak and points already settled; report badge trouble
		// without failing the completed step.
		logctx.FromCtx(ctx, s.log).Errorw("badge_award_failed", "err", err, "user_id", userID)
	}
	for _, badge := range awarded {
		res.NewBadges = append(res.NewBadges, badge.Code)
	}
	return res, nil
}

// Streak returns the user's streak row after applying the lazy daily reset,
// creating it on first read.
func (s *Service) Streak(ctx context.Context, userID string) (*models.UserStreak, error) {
	streak, err := s.loadOrInitStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	resetPointsTodayIfStale(streak, s.now())
	return streak, nil
}

// TodayProgress lists today's per-challenge progress, including untouched
// challenges at zero.
func (s *Service) TodayProgress(ctx context.Context, userID string) ([]*StepResult, error) {
	day := s.now().Format(dayLayout)
	var rows []*models.ChallengeProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byCode := make(map[types.ChallengeCode]*models.ChallengeProgress, len(rows))
	for _, row := range rows {
		byCode[row.ChallengeCode] = row
	}
	out := make([]*StepResult, 0, len(types.Challenges))
	for _, def := range types.Challenges {
		item := &StepResult{Challenge: def.Code, Goal: def.Goal}
		if row, ok := byCode[def.Code]; ok {
			item.Progress = row.Progress
			item.Completed = row.Completed
		}
		out = append(out, item)
	}
	return out, nil
}

// Badges returns the user's earned badges.
func (s *Service) Badges(ctx context.Context, userID string) ([]*models.UserBadge, error) {
	var rows []*models.UserBadge
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) premium(ctx context.Context, userID string) bool {
	var record models.SubscriptionRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("subscription_lookup_failed", "err", err, "user_id", userID)
		}
		return false
	}
	return record.Premium()
}
