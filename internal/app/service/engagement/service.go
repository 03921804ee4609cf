package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/types"
)

// ErrAlreadyFollowed marks a duplicate follow. Benign: the caller reports
// "already done" and no points move.
var ErrAlreadyFollowed = errors.New("profile already followed")

// Service implements the thin engagement actions. Each action validates,
// records its own fact, and then routes any point economy effects through
// the ledger and progression services.
type Service struct {
	db          *gorm.DB
	log         *zap.SugaredLogger
	ledger      *ledger.Service
	progression *progression.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, led *ledger.Service, prog *progression.Service) *Service {
	return &Service{db: db, log: log, ledger: led, progression: prog}
}

// SuggestedProfile is an entry in the follow-to-earn feed.
type SuggestedProfile struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Niche  string `json:"niche"`
}

// The suggestion pool is static; a production feed would come from the
// partner catalog service.
var suggestedProfiles = []*SuggestedProfile{
	{ID: "p-001", Handle: "@dancequeen", Niche: "dance"},
	{ID: "p-002", Handle: "@fitwithmax", Niche: "fitness"},
	{ID: "p-003", Handle: "@cookingcarla", Niche: "food"},
	{ID: "p-004", Handle: "@techtomten", Niche: "tech"},
	{ID: "p-005", Handle: "@travelwithana", Niche: "travel"},
	{ID: "p-006", Handle: "@diydanny", Niche: "diy"},
	{ID: "p-007", Handle: "@petsofparis", Niche: "pets"},
	{ID: "p-008", Handle: "@comedyken", Niche: "comedy"},
	{ID: "p-009", Handle: "@stylebysiena", Niche: "fashion"},
	{ID: "p-010", Handle: "@gamerguspy", Niche: "gaming"},
}

// FollowResult reports a successful follow.
type FollowResult struct {
	ProfileID     string                  `json:"profile_id"`
	PointsAwarded int64                   `json:"points_awarded"`
	NewBalance    int64                   `json:"new_balance"`
	Challenge     *progression.StepResult `json:"challenge,omitempty"`
}

// FollowProfile records the follow, awards the follow points, and advances
// the follow-users challenge. A repeated (user, profile) pair returns
// ErrAlreadyFollowed with no ledger effect.
func (s *Service) FollowProfile(ctx context.Context, userID, profileID string) (*FollowResult, error) {
	if profileID == "" {
		return nil, fmt.Errorf("empty profile id")
	}
	row := &models.FollowedProfile{UserID: userID, ProfileID: profileID}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to record follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyFollowed
	}

	balance, err := s.ledger.AddPoints(ctx, userID, types.FollowPoints, "follow_profile")
	if err != nil {
		return nil, err
	}
	if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterFollowersGained); err != nil {
		return nil, err
	}

	step, err := s.progression.CompleteChallengeStep(ctx, userID, types.ChallengeFollowUsers)
	if err != nil {
		return nil, err
	}
	return &FollowResult{
		ProfileID:     profileID,
		PointsAwarded: types.FollowPoints,
		NewBalance:    balance,
		Challenge:     step,
	}, nil
}

// Suggestions returns the feed minus profiles the user already followed.
func (s *Service) Suggestions(ctx context.Context, userID string) ([]*SuggestedProfile, error) {
	var followed []string
	err := s.db.WithContext(ctx).Model(&models.FollowedProfile{}).
		Where("user_id = ?", userID).
		Pluck("profile_id", &followed).Error
	if err != nil {
		return nil, err
	}
	return lo.Filter(suggestedProfiles, func(p *SuggestedProfile, _ int) bool {
		return !lo.Contains(followed, p.ID)
	}), nil
}
