package content

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/types"
)

// Service serves hashtag and idea suggestions from static pools and runs the
// toy profile analysis. None of these carry points directly; they bump usage
// counters and advance the idea/analysis challenges, which carry the reward.
type Service struct {
	ledger      *ledger.Service
	progression *progression.Service
	log         *zap.SugaredLogger
}

func NewService(led *ledger.Service, prog *progression.Service, log *zap.SugaredLogger) *Service {
	return &Service{ledger: led, progression: prog, log: log}
}

var hashtagPools = map[string][]string{
	"dance":   {"#dancechallenge", "#choreo", "#dancelife", "#newdance", "#dancetutorial", "#dancer", "#dancetrend", "#learnthedance"},
	"fitness": {"#fittok", "#gymmotivation", "#homeworkout", "#fitnessjourney", "#workoutroutine", "#healthylifestyle", "#trainhard", "#fitcheck"},
	"food":    {"#foodtok", "#easyrecipes", "#cookingathome", "#foodhacks", "#mealprep", "#tastyfood", "#homecooking", "#recipeoftheday"},
	"comedy":  {"#funny", "#comedyskit", "#relatable", "#humor", "#sketchcomedy", "#funnyvideos", "#makeyoulaugh", "#comedygold"},
	"beauty":  {"#beautytok", "#makeuptutorial", "#skincareroutine", "#grwm", "#beautyhacks", "#makeuplook", "#glowup", "#selfcare"},
}

var defaultHashtags = []string{"#fyp", "#foryou", "#viral", "#trending", "#foryoupage", "#explore"}

var ideaPool = []string{
	"Show a before/after transformation in your niche",
	"React to a trending sound with your own twist",
	"Share 3 mistakes beginners make and how to avoid them",
	"Film a day-in-the-life from your point of view",
	"Duet a popular creator and add your expert take",
	"Answer the most common question your followers ask",
	"Show your process in 15 seconds with fast cuts",
	"Do a myth-vs-fact breakdown of your topic",
	"Turn a customer or follower story into a mini narrative",
	"Post a behind-the-scenes fail and what you learned",
	"Recreate your first video and compare the difference",
	"Stitch a hot take you disagree with and explain why",
}

// Hashtags returns tags for a niche plus evergreen defaults (counter:
// ideas_generated).
func (s *Service) Hashtags(ctx context.Context, userID, niche string, count int) ([]string, error) {
	if count <= 0 || count > 20 {
		count = 8
	}
	pool, ok := hashtagPools[niche]
	if !ok {
		pool = defaultHashtags
	}
	picks := lo.Samples(pool, count)
	picks = append(picks, lo.Samples(defaultHashtags, 2)...)

	if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterIdeasGenerated); err != nil {
		return nil, err
	}
	return lo.Uniq(picks), nil
}

type IdeasResult struct {
	Ideas     []string                `json:"ideas"`
	Challenge *progression.StepResult `json:"challenge,omitempty"`
}

// Ideas returns content idea prompts (counter: ideas_generated) and advances
// the generate-ideas challenge by one step.
func (s *Service) Ideas(ctx context.Context, userID string, count int) (*IdeasResult, error) {
	if count <= 0 || count > len(ideaPool) {
		count = 5
	}
	if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterIdeasGenerated); err != nil {
		return nil, err
	}
	res := &IdeasResult{Ideas: lo.Samples(ideaPool, count)}
	step, err := s.progression.CompleteChallengeStep(ctx, userID, types.ChallengeGenerateIdeas)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to advance ideas challenge for %s: %v", userID, err)
	} else {
		res.Challenge = step
	}
	return res, nil
}

// ProfileAnalysis is the toy analysis result.
type ProfileAnalysis struct {
	Handle          string                  `json:"handle"`
	EngagementScore int                     `json:"engagement_score"`
	PostingAdvice   string                  `json:"posting_advice"`
	SuggestedNiches []string                `json:"suggested_niches"`
	Challenge       *progression.StepResult `json:"challenge,omitempty"`
}

var postingAdvice = []string{
	"Post between 6pm and 9pm on weekdays for your audience",
	"Your hook needs to land in the first 2 seconds",
	"Shorter captions with a single call to action perform better",
	"Reply to comments within the first hour to boost reach",
}

// Analyze produces a deterministic pseudo-analysis for a handle (counter:
// analyses_completed). The same handle always scores the same, which keeps
// the toy feature stable across visits.
func (s *Service) Analyze(ctx context.Context, userID, handle string) (*ProfileAnalysis, error) {
	if handle == "" {
		return nil, fmt.Errorf("empty handle")
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(handle))
	seed := h.Sum32()

	niches := lo.Keys(hashtagPools)
	analysis := &ProfileAnalysis{
		Handle:          handle,
		EngagementScore: int(seed%61) + 40,
		PostingAdvice:   postingAdvice[seed%uint32(len(postingAdvice))],
		SuggestedNiches: []string{niches[seed%uint32(len(niches))], niches[(seed>>8)%uint32(len(niches))]},
	}
	if err := s.ledger.IncrementCounter(ctx, userID, ledger.CounterAnalysesCompleted); err != nil {
		return nil, err
	}
	step, err := s.progression.CompleteChallengeStep(ctx, userID, types.ChallengeProfileAnalysis)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to advance analysis challenge for %s: %v", userID, err)
	} else {
		analysis.Challenge = step
	}
	return analysis, nil
}
