package types

type ChallengeCode string

const (
	ChallengeFollowUsers     ChallengeCode = "follow_30"
	ChallengeShareVideo      ChallengeCode = "share_video"
	ChallengeGenerateIdeas   ChallengeCode = "generate_ideas"
	ChallengeProfileAnalysis ChallengeCode = "profile_analysis"
)

// ChallengeDefinition describes a daily challenge. Goal is the number of
// advance steps required within one calendar day; RewardPoints is granted
// once per day when the goal is reached.
type ChallengeDefinition struct {
	Code         ChallengeCode `json:"code"`
	Title        string        `json:"title"`
	Goal         int           `json:"goal"`
	RewardPoints int64         `json:"reward_points"`
}

var Challenges = []*ChallengeDefinition{
	{Code: ChallengeFollowUsers, Title: "Follow 30 creators", Goal: 30, RewardPoints: 20},
	{Code: ChallengeShareVideo, Title: "Share a video", Goal: 1, RewardPoints: 20},
	{Code: ChallengeGenerateIdeas, Title: "Generate 5 content ideas", Goal: 5, RewardPoints: 10},
	{Code: ChallengeProfileAnalysis, Title: "Run a profile analysis", Goal: 1, RewardPoints: 15},
}

func ChallengeByCode(code ChallengeCode) *ChallengeDefinition {
	for _, c := range Challenges {
		if c.Code == code {
			return c
		}
	}
	return nil
}
