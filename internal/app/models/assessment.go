package models

import (
	"encoding/json"
	"time"
)

// Assessment archives one questionnaire submission as received.
type Assessment struct {
	ID        int64           `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	Type      string          `db:"type" json:"type"`
	Source    string          `db:"source" json:"source"`
	Status    string          `db:"status" json:"status"`
	Data      json.RawMessage `db:"data" json:"data"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

type UserInterest struct {
	ID           int64  `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"userId"`
	AssessmentID int64  `db:"assessment_id" json:"assessmentId"`
	Category     string `db:"category" json:"category"`
	Specific     string `db:"specific_interest" json:"specific,omitempty"`
	Intensity    int    `db:"intensity" json:"intensity"`
	Source       string `db:"source" json:"source"`
}

type UserStrength struct {
	ID         int64   `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"userId"`
	Dimension  string  `db:"dimension" json:"dimension"`
	TagName    string  `db:"tag_name" json:"tagName"`
	Confidence float64 `db:"confidence" json:"confidence"`
	Source     string  `db:"source" json:"source"`
}

type UserTrait struct {
	ID           int64   `db:"id" json:"id"`
	UserID       string  `db:"user_id" json:"userId"`
	AssessmentID int64   `db:"assessment_id" json:"assessmentId"`
	TraitName    string  `db:"trait_name" json:"traitName"`
	Score        float64 `db:"score" json:"score"`
	Source       string  `db:"source" json:"source"`
}

type UserGoal struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	GoalType  string    `db:"goal_type" json:"goalType"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const (
	AssessmentStatusCompleted = "completed"
	GoalStatusActive          = "active"
)
