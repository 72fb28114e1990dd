package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func TestApproveWork_AwardsPointsAndUnlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 1, "Bridge model")

	resp, err := f.review.ApproveWork(ctx, sub.Work.ID, 300, "great job")
	require.NoError(t, err)

	assert.Equal(t, 300, resp.Points)
	assert.True(t, resp.Awarded)
	assert.Equal(t, 300, resp.TotalPoints)
	require.Len(t, resp.NewUnlocks, 1)
	assert.Equal(t, "magellan", resp.NewUnlocks[0].ID)

	ut, err := f.store.UserTasks().GetUserTask(ctx, user, 1)
	require.NoError(t, err)
	assert.Equal(t, works.ReviewCompleted, ut.Status)
	assert.Equal(t, 300, ut.PointsEarned)
	assert.NotNil(t, ut.ReviewedAt)

	w, err := f.store.Works().GetWork(ctx, sub.Work.ID)
	require.NoError(t, err)
	assert.Equal(t, works.Review{Status: works.ReviewCompleted, Points: 300, Feedback: "great job"}, w.Review())

	unlocks, err := f.store.Unlocks().ListUnlocks(ctx, user)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "magellan", unlocks[0].MentorID)
}

func TestApproveWork_SecondApprovalIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 2, "Interview")

	_, err := f.review.ApproveWork(ctx, sub.Work.ID, 80, "first")
	require.NoError(t, err)

	_, err = f.review.ApproveWork(ctx, sub.Work.ID, 80, "second")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)

	profile, err := f.store.Profiles().GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 80, profile.TotalPoints)

	w, err := f.store.Works().GetWork(ctx, sub.Work.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", w.Review().Feedback)
}

func TestApproveWork_LaterVersionIsReviewedWithoutAward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 3, "Reading log")

	_, err := f.review.ApproveWork(ctx, sub.Work.ID, 50, "")
	require.NoError(t, err)

	v2, err := f.works.SubmitNewVersion(ctx, user, sub.Work.ID, newVersionRequest("Reading log v2"))
	require.NoError(t, err)

	pending, err := f.review.ListWorks(ctx, works.ReviewPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, v2.ID, pending[0].ID)

	resp, err := f.review.ApproveWork(ctx, v2.ID, 70, "better ending")
	require.NoError(t, err)
	assert.False(t, resp.Awarded)
	assert.Equal(t, 70, resp.Points)
	assert.Equal(t, 50, resp.TotalPoints)
	assert.Empty(t, resp.NewUnlocks)

	w, err := f.store.Works().GetWork(ctx, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, works.Review{Status: works.ReviewCompleted, Points: 70, Feedback: "better ending"}, w.Review())

	profile, err := f.store.Profiles().GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 50, profile.TotalPoints)

	ut, err := f.store.UserTasks().GetUserTask(ctx, user, 3)
	require.NoError(t, err)
	assert.Equal(t, 50, ut.PointsEarned)

	pending, err = f.review.ListWorks(ctx, works.ReviewPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	stats, err := f.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.PendingReviews)

	_, err = f.review.ApproveWork(ctx, v2.ID, 70, "again")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
}

func TestApproveWork_CreatesMissingUserTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	_, err := f.store.Profiles().EnsureProfile(ctx, user)
	require.NoError(t, err)
	w := &models.Work{UserID: user, TaskID: 5, Title: "Imported", Version: 1}
	require.NoError(t, f.store.Works().CreateWork(ctx, w))

	resp, err := f.review.ApproveWork(ctx, w.ID, 100, "")
	require.NoError(t, err)
	assert.Equal(t, 100, resp.TotalPoints)

	ut, err := f.store.UserTasks().GetUserTask(ctx, user, 5)
	require.NoError(t, err)
	assert.Equal(t, works.ReviewCompleted, ut.Status)
	require.NotNil(t, ut.SubmittedAt)
	require.NotNil(t, ut.ReviewedAt)
	assert.True(t, ut.SubmittedAt.Equal(*ut.ReviewedAt))
}

func TestApproveWork_RejectsNonPositivePoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 1, "Model")

	for _, points := range []int{0, -10} {
		_, err := f.review.ApproveWork(ctx, sub.Work.ID, points, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPoints)
	}

	ut, err := f.store.UserTasks().GetUserTask(ctx, user, 1)
	require.NoError(t, err)
	assert.Equal(t, works.ReviewPending, ut.Status)
}

func TestApproveWork_UnknownWork(t *testing.T) {
	f := newFixture(t)
	_, err := f.review.ApproveWork(context.Background(), 999, 10, "")
	assert.ErrorIs(t, err, apperrors.ErrWorkNotFound)
}

func TestApproveWork_ConcurrentApprovalsAwardOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 4, "Robot")

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.review.ApproveWork(ctx, sub.Work.ID, 120, "")
			switch {
			case err == nil:
				successes.Add(1)
			case apperrors.Is(err, apperrors.ErrAlreadyApproved):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(7), conflicts.Load())

	profile, err := f.store.Profiles().GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 120, profile.TotalPoints)
}

func TestApproveWork_InvalidatesProgressCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 1, "Model")

	before, err := f.progress.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, before.TotalPoints)

	_, err = f.review.ApproveWork(ctx, sub.Work.ID, 100, "")
	require.NoError(t, err)

	after, err := f.progress.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 100, after.TotalPoints)
	assert.Equal(t, []int64{1}, after.CompletedTasks)
}

func TestListWorks_FiltersByDerivedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	a := f.submit(t, user, 1, "A")
	f.submit(t, user, 2, "B")

	_, err := f.review.ApproveWork(ctx, a.Work.ID, 10, "")
	require.NoError(t, err)

	all, err := f.review.ListWorks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.review.ListWorks(ctx, works.ReviewPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].Title)

	_, err = f.review.ListWorks(ctx, "rejected")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestReviewGetWork_ShowsOwnerTaskAndChain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	_, err := f.onboarding.Submit(ctx, user, samplePayload())
	require.NoError(t, err)
	sub := f.submit(t, user, 2, "Interview")
	v2, err := f.works.SubmitNewVersion(ctx, user, sub.Work.ID, newVersionRequest("Interview v2"))
	require.NoError(t, err)

	detail, err := f.review.GetWork(ctx, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, detail.Work.ID)
	assert.Equal(t, dto.WorkOwnerResponse{ID: user, Nickname: "Mia", Age: 11, Grade: "grade_5"}, detail.Owner)
	require.NotNil(t, detail.UserTask)
	assert.Equal(t, string(works.ReviewPending), detail.UserTask.Status)
	require.Len(t, detail.History, 2)
	assert.Equal(t, []int{1, 2}, []int{detail.History[0].Version, detail.History[1].Version})

	_, err = f.review.GetWork(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrWorkNotFound)
}

func TestReviewGetWork_LegacyWorkWithoutUserTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	_, err := f.store.Profiles().EnsureProfile(ctx, user)
	require.NoError(t, err)
	w := &models.Work{UserID: user, TaskID: 5, Title: "Imported", Version: 1}
	require.NoError(t, f.store.Works().CreateWork(ctx, w))

	detail, err := f.review.GetWork(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.UserTask)
	assert.Len(t, detail.History, 1)
}
