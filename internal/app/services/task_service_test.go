package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func TestListTasks_CarriesUserStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	f.submit(t, user, 2, "Interview")

	tasks, err := f.tasks.ListTasks(ctx, user)
	require.NoError(t, err)
	require.Len(t, tasks, len(f.rules.Tasks.Tasks()))
	for _, task := range tasks {
		if task.ID == 2 {
			assert.Equal(t, "pending", task.Status)
		} else {
			assert.Empty(t, task.Status, "task %d", task.ID)
		}
	}
}

func TestGetTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.GetTask(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "hands-on", task.Type)
	assert.Equal(t, 100, task.Points)

	_, err = f.tasks.GetTask(ctx, "", 404)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestSubmitTask_CreatesPendingTaskAndRootWork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	resp, err := f.tasks.SubmitTask(ctx, user, &dto.SubmitTaskRequest{
		TaskID: 1,
		Title:  "Paper bridge",
		Link:   "https://example.com/bridge",
		Tags:   []string{"engineering", " engineering ", "feedback:sneaky", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.UserTask.Status)
	assert.NotEmpty(t, resp.UserTask.SubmittedAt)
	assert.Equal(t, 1, resp.Work.Version)
	assert.Nil(t, resp.Work.ParentWorkID)
	assert.Equal(t, resp.Work.ID, resp.Work.RootID)
	assert.Equal(t, []string{"engineering"}, resp.Work.Tags)

	profile, err := f.store.Profiles().GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.TotalPoints)
}

func TestSubmitTask_UnknownTask(t *testing.T) {
	f := newFixture(t)
	_, err := f.tasks.SubmitTask(context.Background(), newUserID(), &dto.SubmitTaskRequest{TaskID: 99, Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestSubmitTask_ClosedAfterApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	sub := f.submit(t, user, 3, "Reading")

	_, err := f.review.ApproveWork(ctx, sub.Work.ID, 50, "")
	require.NoError(t, err)

	_, err = f.tasks.SubmitTask(ctx, user, &dto.SubmitTaskRequest{TaskID: 3, Title: "again"})
	assert.ErrorIs(t, err, apperrors.ErrTaskAlreadyClosed)
}
