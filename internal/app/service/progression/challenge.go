package progression

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

// ChallengeResult reports one advance step.
type ChallengeResult struct {
	Progress      int
	Completed     bool
	JustCompleted bool
}

// AdvanceChallenge bumps today's progress row for (user, challenge) by one.
// Progress never regresses and Completed never reverts within a day; a new
// calendar day starts fresh implicitly through the per-day row key. The
// tracker does not award points; that stays with the caller.
func (s *Service) AdvanceChallenge(ctx context.Context, userID string, code types.ChallengeCode, goal int) (*ChallengeResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	if goal <= 0 {
		return nil, fmt.Errorf("invalid goal: %d", goal)
	}
	day := s.now().Format(dayLayout)

	fresh := &models.ChallengeProgress{
		ID:            tool.GenerateUUIDV7(),
		UserID:        userID,
		ChallengeCode: code,
		Day:           day,
		Goal:          goal,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_code"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to init challenge progress: %w", err)
	}

	var row models.ChallengeProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND challenge_code = ? AND day = ?", userID, code, day).
		First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to load challenge progress: %w", err)
	}

	if row.Completed {
		return &ChallengeResult{Progress: row.Progress, Completed: true, JustCompleted: false}, nil
	}

	row.Progress++
	row.Completed = row.Progress >= goal
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to save challenge progress: %w", err)
	}

	return &ChallengeResult{
		Progress:      row.Progress,
		Completed:     row.Completed,
		JustCompleted: row.Completed,
	}, nil
}
