package models

import (
	"time"

	"github.com/yigit/growthpath/internal/domain/works"
)

// Work is one version of a submitted artifact.
type Work struct {
	ID           int64    `db:"id" json:"id"`
	UserID       string   `db:"user_id" json:"userId"`
	TaskID       int64    `db:"task_id" json:"taskId"`
	Title        string   `db:"title" json:"title"`
	Description  string   `db:"description" json:"description"`
	Reflection   string   `db:"reflection" json:"reflection"`
	Link         string   `db:"link" json:"link,omitempty"`
	Tags         []string `db:"tags" json:"tags"`
	Version      int      `db:"version" json:"version"`
	ParentWorkID *int64   `db:"parent_work_id" json:"parentWorkId,omitempty"`

	ReviewStatus  works.ReviewStatus `db:"review_status" json:"reviewStatus"`
	PointsAwarded int                `db:"points_awarded" json:"pointsAwarded"`
	Feedback      string             `db:"feedback" json:"feedback,omitempty"`
	ReviewedAt    *time.Time         `db:"reviewed_at" json:"reviewedAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (w Work) WorkID() int64      { return w.ID }
func (w Work) ParentID() *int64   { return w.ParentWorkID }
func (w Work) VersionNumber() int { return w.Version }

// RootID is the id of the chain this work belongs to.
func (w Work) RootID() int64 {
	return works.RootID(w.ID, w.ParentWorkID)
}

// Review returns the recorded review. Rows written before the review
// columns existed carry it in their tags instead.
func (w Work) Review() works.Review {
	if w.ReviewStatus == works.ReviewCompleted {
		return works.Review{Status: w.ReviewStatus, Points: w.PointsAwarded, Feedback: w.Feedback}
	}
	if legacy, ok := works.ParseLegacyTags(w.Tags); ok {
		return legacy
	}
	return works.Review{Status: works.ReviewPending}
}

// VisibleTags drops legacy metadata tags.
func (w Work) VisibleTags() []string {
	return works.StripMetaTags(w.Tags)
}
