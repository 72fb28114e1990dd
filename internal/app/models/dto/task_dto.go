package dto

import (
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/domain/progression"
)

// TaskResponse is a catalog task, optionally with the caller's status.
type TaskResponse struct {
	ID           int64    `json:"id" example:"1"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Type         string   `json:"type" example:"hands-on"`
	Points       int      `json:"points" example:"100"`
	Difficulty   int      `json:"difficulty" example:"1"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status,omitempty" example:"pending"`
}

// SubmitTaskRequest creates the first version of a work for a task.
type SubmitTaskRequest struct {
	TaskID      int64    `json:"taskId" binding:"required,gt=0"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Reflection  string   `json:"reflection" binding:"max=5000"`
	Link        string   `json:"link" binding:"omitempty,url,max=500"`
	Tags        []string `json:"tags" binding:"max=10,dive,max=40"`
}

// SubmitTaskResponse returns the pending user task and the root work.
type SubmitTaskResponse struct {
	UserTask UserTaskResponse `json:"userTask"`
	Work     WorkResponse     `json:"work"`
}

type UserTaskResponse struct {
	TaskID       int64  `json:"taskId"`
	Status       string `json:"status"`
	PointsEarned int    `json:"pointsEarned"`
	Feedback     string `json:"feedback,omitempty"`
	SubmittedAt  string `json:"submittedAt,omitempty"`
	ReviewedAt   string `json:"reviewedAt,omitempty"`
}

func FromTask(t progression.Task) TaskResponse {
	reqs := t.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Icon:         t.Icon,
		Type:         string(t.Type),
		Points:       t.Points,
		Difficulty:   t.Difficulty,
		Requirements: reqs,
	}
}

func FromUserTask(ut *models.UserTask) UserTaskResponse {
	resp := UserTaskResponse{
		TaskID:       ut.TaskID,
		Status:       string(ut.Status),
		PointsEarned: ut.PointsEarned,
		Feedback:     ut.Feedback,
	}
	if ut.SubmittedAt != nil {
		resp.SubmittedAt = formatTime(*ut.SubmittedAt)
	}
	if ut.ReviewedAt != nil {
		resp.ReviewedAt = formatTime(*ut.ReviewedAt)
	}
	return resp
}
