package dto

import "github.com/yigit/growthpath/internal/app/models"

// UserSummaryResponse is one row of the admin user list.
type UserSummaryResponse struct {
	ID                  string `json:"id"`
	Nickname            string `json:"nickname"`
	Grade               string `json:"grade,omitempty"`
	TotalPoints         int    `json:"totalPoints"`
	Level               int    `json:"level"`
	LevelName           string `json:"levelName"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	CreatedAt           string `json:"createdAt"`
}

// UserDetailResponse is everything stored about one student.
type UserDetailResponse struct {
	Profile        *models.Profile        `json:"profile"`
	Level          LevelInfoResponse      `json:"level"`
	Interests      []models.UserInterest  `json:"interests"`
	Strengths      []models.UserStrength  `json:"strengths"`
	Traits         []models.UserTrait     `json:"traits"`
	Goals          []models.UserGoal      `json:"goals"`
	Tasks          []UserTaskResponse     `json:"tasks"`
	CompletedTasks []int64                `json:"completedTasks"`
	Works          []WorkResponse         `json:"works"`
	Assessments    []models.Assessment    `json:"assessments"`
	Observations   []ObservationResponse  `json:"observations"`
	Mentors        []MentorStatusResponse `json:"mentors"`
}

// StatsResponse holds the admin dashboard counters.
type StatsResponse struct {
	Profiles          int64 `json:"profiles"`
	OnboardedProfiles int64 `json:"onboardedProfiles"`
	Works             int64 `json:"works"`
	PendingReviews    int64 `json:"pendingReviews"`
	CompletedTasks    int64 `json:"completedTasks"`
	Assessments       int64 `json:"assessments"`
	Observations      int64 `json:"observations"`
	PointsAwarded     int64 `json:"pointsAwarded"`
	MentorUnlocks     int64 `json:"mentorUnlocks"`
}

func FromProfileSummary(p *models.Profile, level LevelResponse) UserSummaryResponse {
	return UserSummaryResponse{
		ID:                  p.ID,
		Nickname:            p.Nickname,
		Grade:               p.Grade,
		TotalPoints:         p.TotalPoints,
		Level:               level.Level,
		LevelName:           level.Name,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           formatTime(p.CreatedAt),
	}
}
