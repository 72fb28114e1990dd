package dto

import "github.com/yigit/growthpath/internal/app/models"

// CreateObservationRequest is an admin note about a student.
type CreateObservationRequest struct {
	StudentID     string   `json:"student_id" binding:"required,uuid"`
	Title         string   `json:"title" binding:"required,max=200"`
	Category      string   `json:"category" binding:"max=50"`
	Observation   string   `json:"observation" binding:"required,max=5000"`
	SuggestedTags []string `json:"suggested_tags" binding:"max=20,dive,max=40"`
}

type ObservationResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	StudentName   string   `json:"studentName,omitempty"`
	ObserverID    string   `json:"observerId"`
	Title         string   `json:"title"`
	Category      string   `json:"category,omitempty"`
	Observation   string   `json:"observation"`
	SuggestedTags []string `json:"suggestedTags"`
	CreatedAt     string   `json:"createdAt"`
}

func FromObservation(o *models.Observation, studentName string) ObservationResponse {
	tags := o.SuggestedTags
	if tags == nil {
		tags = []string{}
	}
	return ObservationResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		StudentName:   studentName,
		ObserverID:    o.ObserverID,
		Title:         o.Title,
		Category:      o.Category,
		Observation:   o.Observation,
		SuggestedTags: tags,
		CreatedAt:     formatTime(o.CreatedAt),
	}
}
