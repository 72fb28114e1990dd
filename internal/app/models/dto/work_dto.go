package dto

import (
	"time"

	"github.com/yigit/growthpath/internal/app/models"
)

// WorkResponse is one version of a work with its review outcome.
type WorkResponse struct {
	ID            int64    `json:"id" example:"12"`
	UserID        string   `json:"userId"`
	TaskID        int64    `json:"taskId" example:"1"`
	TaskTitle     string   `json:"taskTitle,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Reflection    string   `json:"reflection"`
	Link          string   `json:"link,omitempty"`
	Tags          []string `json:"tags"`
	Version       int      `json:"version" example:"2"`
	ParentWorkID  *int64   `json:"parentWorkId,omitempty"`
	RootID        int64    `json:"rootId" example:"10"`
	ReviewStatus  string   `json:"reviewStatus" example:"pending"`
	PointsAwarded int      `json:"pointsAwarded"`
	Feedback      string   `json:"feedback,omitempty"`
	ReviewedAt    string   `json:"reviewedAt,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// WorkDetailResponse is a work together with its whole version chain.
type WorkDetailResponse struct {
	Work       WorkResponse   `json:"work"`
	History    []WorkResponse `json:"history"`
	TaskStatus string         `json:"taskStatus,omitempty"`
}

// WorkOwnerResponse is the part of a profile shown next to a work under review.
type WorkOwnerResponse struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Age      int    `json:"age,omitempty"`
	Grade    string `json:"grade,omitempty"`
}

// AdminWorkDetailResponse is a work as a reviewer sees it. UserTask is nil
// when the owner has no row for the work's task.
type AdminWorkDetailResponse struct {
	Work     WorkResponse      `json:"work"`
	Owner    WorkOwnerResponse `json:"owner"`
	UserTask *UserTaskResponse `json:"userTask,omitempty"`
	History  []WorkResponse    `json:"history"`
}

// NewVersionRequest resubmits a work. Every field replaces the previous value.
type NewVersionRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Reflection  string   `json:"reflection" binding:"max=5000"`
	Link        string   `json:"link" binding:"omitempty,url,max=500"`
	Tags        []string `json:"tags" binding:"max=10,dive,max=40"`
}

// ApproveWorkRequest is the admin review decision.
type ApproveWorkRequest struct {
	Points   int    `json:"points" example:"100"`
	Feedback string `json:"feedback" binding:"max=2000"`
}

// ApproveWorkResponse reports what an approval changed.
type ApproveWorkResponse struct {
	WorkID      int64            `json:"workId"`
	UserID      string           `json:"userId"`
	TaskID      int64            `json:"taskId"`
	Points      int              `json:"points"`
	Awarded     bool             `json:"awarded"`
	TotalPoints int              `json:"totalPoints"`
	NewUnlocks  []MentorResponse `json:"newUnlocks"`
}

// FromWork converts a work row. taskTitle may be empty.
func FromWork(w *models.Work, taskTitle string) WorkResponse {
	review := w.Review()
	resp := WorkResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		TaskID:        w.TaskID,
		TaskTitle:     taskTitle,
		Title:         w.Title,
		Description:   w.Description,
		Reflection:    w.Reflection,
		Link:          w.Link,
		Tags:          w.VisibleTags(),
		Version:       w.Version,
		ParentWorkID:  w.ParentWorkID,
		RootID:        w.RootID(),
		ReviewStatus:  string(review.Status),
		PointsAwarded: review.Points,
		Feedback:      review.Feedback,
		CreatedAt:     formatTime(w.CreatedAt),
	}
	if w.ReviewedAt != nil {
		resp.ReviewedAt = formatTime(*w.ReviewedAt)
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
