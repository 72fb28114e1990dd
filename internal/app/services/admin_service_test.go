package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b := newUserID(), newUserID()

	_, err := f.onboarding.Submit(ctx, a, samplePayload())
	require.NoError(t, err)
	subA := f.submit(t, a, 1, "A")
	f.submit(t, b, 2, "B")
	_, err = f.review.ApproveWork(ctx, subA.Work.ID, 300, "")
	require.NoError(t, err)

	st, err := f.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.StatsResponse{
		Profiles:          2,
		OnboardedProfiles: 1,
		Works:             2,
		PendingReviews:    1,
		CompletedTasks:    1,
		Assessments:       1,
		Observations:      0,
		PointsAwarded:     300,
		MentorUnlocks:     1,
	}, *st)
}

func TestGetUserDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	_, err := f.onboarding.Submit(ctx, user, samplePayload())
	require.NoError(t, err)
	sub := f.submit(t, user, 1, "Model")
	_, err = f.review.ApproveWork(ctx, sub.Work.ID, 100, "nice")
	require.NoError(t, err)

	d, err := f.admin.GetUserDetail(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, d.Profile.ID)
	assert.Len(t, d.Interests, 2)
	assert.Len(t, d.Strengths, 2)
	assert.Len(t, d.Traits, 1)
	assert.Len(t, d.Goals, 1)
	assert.Len(t, d.Assessments, 1)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, "completed", d.Tasks[0].Status)
	assert.Equal(t, []int64{1}, d.CompletedTasks)
	require.Len(t, d.Works, 1)
	assert.Equal(t, 100, d.Works[0].PointsAwarded)
	assert.Empty(t, d.Observations)
	assert.Len(t, d.Mentors, 5)

	_, err = f.admin.GetUserDetail(ctx, newUserID())
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestListUsers_Paginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.store.Profiles().EnsureProfile(ctx, newUserID())
		require.NoError(t, err)
	}

	page, err := f.admin.ListUsers(ctx, 1, 2)
	require.NoError(t, err)
	items, ok := page.Items.([]dto.UserSummaryResponse)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 1, items[0].Level)

	last, err := f.admin.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items.([]dto.UserSummaryResponse), 1)
}
