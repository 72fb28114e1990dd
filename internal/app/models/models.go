package models

import (
	"time"

	"github.com/yigit/growthpath/internal/domain/works"
)

// Profile is one per user. The id comes from the identity provider.
type Profile struct {
	ID                  string    `db:"id" json:"id"`
	Nickname            string    `db:"nickname" json:"nickname"`
	AvatarURL           string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	Age                 int       `db:"age" json:"age,omitempty"`
	Grade               string    `db:"grade" json:"grade,omitempty"`
	Gender              string    `db:"gender" json:"gender,omitempty"`
	TotalPoints         int       `db:"total_points" json:"totalPoints"`
	OnboardingCompleted bool      `db:"onboarding_completed" json:"onboardingCompleted"`
	IsActive            bool      `db:"is_active" json:"isActive"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// UserTask links a user to a catalog task. At most one row per pair.
type UserTask struct {
	ID           int64              `db:"id" json:"id"`
	UserID       string             `db:"user_id" json:"userId"`
	TaskID       int64              `db:"task_id" json:"taskId"`
	Status       works.ReviewStatus `db:"status" json:"status"`
	SubmittedAt  *time.Time         `db:"submitted_at" json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time         `db:"reviewed_at" json:"reviewedAt,omitempty"`
	PointsEarned int                `db:"points_earned" json:"pointsEarned"`
	Feedback     string             `db:"feedback" json:"feedback,omitempty"`
}

// MentorUnlock records that a user unlocked a mentor. Rows are never removed.
type MentorUnlock struct {
	UserID     string    `db:"user_id" json:"userId"`
	MentorID   string    `db:"mentor_id" json:"mentorId"`
	UnlockedAt time.Time `db:"unlocked_at" json:"unlockedAt"`
}

// Observation is an admin note about a student.
type Observation struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	ObserverID    string    `db:"observer_id" json:"observerId"`
	Title         string    `db:"title" json:"title"`
	Category      string    `db:"category" json:"category"`
	Observation   string    `db:"observation" json:"observation"`
	SuggestedTags []string  `db:"suggested_tags" json:"suggestedTags"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
