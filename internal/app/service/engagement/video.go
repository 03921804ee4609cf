package engagement

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

var (
	// ErrInvalidVideoURL marks a submission that does not match the expected
	// platform URL shape. No state is touched.
	ErrInvalidVideoURL = errors.New("invalid video url")
	// ErrDuplicateVideo marks a video that was already submitted.
	ErrDuplicateVideo = errors.New("video already submitted")
)

// Accepted: https://www.tiktok.com/@handle/video/<digits>, with optional
// query string. The numeric id is the external video identifier.
var videoURLPattern = regexp.MustCompile(`^https://(?:www\.)?tiktok\.com/@[\w.\-]+/video/(\d+)(?:\?.*)?$`)

// ParseVideoURL extracts the external video id, or ErrInvalidVideoURL.
func ParseVideoURL(rawURL string) (string, error) {
	m := videoURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidVideoURL, rawURL)
	}
	return m[1], nil
}

// VideoResult reports an accepted submission.
type VideoResult struct {
	ID              string                  `json:"id"`
	ExternalVideoID string                  `json:"external_video_id"`
	PointsAwarded   int64                   `json:"points_awarded"`
	NewBalance      int64                   `json:"new_balance"`
	Challenge       *progression.StepResult `json:"challenge,omitempty"`
}

// SubmitVideo validates and stores a video submission and awards the video
// points. A URL whose video id already exists anywhere in the system is
// rejected as a duplicate before any state changes.
func (s *Service) SubmitVideo(ctx context.Context, userID, rawURL string) (*VideoResult, error) {
	videoID, err := ParseVideoURL(rawURL)
	if err != nil {
		return nil, err
	}

	row := &models.VideoSubmission{
		ID:              tool.GenerateUUIDV7(),
		UserID:          userID,
		URL:             rawURL,
		ExternalVideoID: videoID,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "external_video_id"}}, DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to save video submission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrDuplicateVideo
	}

	balance, err := s.ledger.AddPoints(ctx, userID, types.VideoPoints, "video_submission")
	if err != nil {
		return nil, err
	}
	if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterVideosShared); err != nil {
		return nil, err
	}

	step, err := s.progression.CompleteChallengeStep(ctx, userID, types.ChallengeShareVideo)
	if err != nil {
		return nil, err
	}

	return &VideoResult{
		ID:              row.ID,
		ExternalVideoID: videoID,
		PointsAwarded:   types.VideoPoints,
		NewBalance:      balance,
		Challenge:       step,
	}, nil
}
