package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/growthpath/internal/domain/works"
)

func TestWorkReviewPrefersColumns(t *testing.T) {
	w := Work{
		ID:            3,
		ReviewStatus:  works.ReviewCompleted,
		PointsAwarded: 80,
		Feedback:      "nice",
		Tags:          []string{"points:10", "status:completed"},
	}
	assert.Equal(t, works.Review{Status: works.ReviewCompleted, Points: 80, Feedback: "nice"}, w.Review())
}

func TestWorkReviewLegacyFallback(t *testing.T) {
	w := Work{ID: 3, ReviewStatus: works.ReviewPending, Tags: []string{"lego", "feedback:good", "points:50", "status:completed"}}
	assert.Equal(t, works.Review{Status: works.ReviewCompleted, Points: 50, Feedback: "good"}, w.Review())
	assert.Equal(t, []string{"lego"}, w.VisibleTags())

	plain := Work{ID: 4, Tags: []string{"lego"}}
	assert.Equal(t, works.ReviewPending, plain.Review().Status)
}

func TestWorkRootID(t *testing.T) {
	root := int64(10)
	assert.Equal(t, int64(10), Work{ID: 10}.RootID())
	assert.Equal(t, int64(10), Work{ID: 12, ParentWorkID: &root}.RootID())
}
