package dto

import "github.com/yigit/growthpath/internal/app/models"

// OnboardingStatusResponse tells the client whether to show the questionnaire.
type OnboardingStatusResponse struct {
	Completed bool            `json:"completed"`
	Profile   *models.Profile `json:"profile"`
}

// OnboardingResultResponse summarizes what a submission stored.
type OnboardingResultResponse struct {
	AssessmentID int64 `json:"assessmentId"`
	Interests    int   `json:"interests"`
	Strengths    int   `json:"strengths"`
	Traits       int   `json:"traits"`
	Goals        int   `json:"goals"`
}
