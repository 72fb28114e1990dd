package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func newVersionRequest(title string) *dto.NewVersionRequest {
	return &dto.NewVersionRequest{Title: title, Tags: []string{"v", "status:approved", "points:999"}}
}

func TestSubmitNewVersion_AlwaysPointsAtRoot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	root := f.submit(t, user, 5, "Poster")

	v2, err := f.works.SubmitNewVersion(ctx, user, root.Work.ID, newVersionRequest("Poster v2"))
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)
	require.NotNil(t, v2.ParentWorkID)
	assert.Equal(t, root.Work.ID, *v2.ParentWorkID)

	v3, err := f.works.SubmitNewVersion(ctx, user, v2.ID, newVersionRequest("Poster v3"))
	require.NoError(t, err)
	assert.Equal(t, 3, v3.Version)
	require.NotNil(t, v3.ParentWorkID)
	assert.Equal(t, root.Work.ID, *v3.ParentWorkID)
	assert.Equal(t, root.Work.ID, v3.RootID)
	assert.Equal(t, []string{"v"}, v3.Tags)
	assert.Equal(t, "pending", v3.ReviewStatus)
}

func TestSubmitNewVersion_RejectsOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := newUserID()
	root := f.submit(t, owner, 5, "Poster")

	_, err := f.works.SubmitNewVersion(ctx, newUserID(), root.Work.ID, newVersionRequest("stolen"))
	assert.ErrorIs(t, err, apperrors.ErrNotWorkOwner)

	history, err := f.works.ListVersionHistory(ctx, owner, root.Work.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSubmitNewVersion_UnknownWork(t *testing.T) {
	f := newFixture(t)
	_, err := f.works.SubmitNewVersion(context.Background(), newUserID(), 42, newVersionRequest("x"))
	assert.ErrorIs(t, err, apperrors.ErrWorkNotFound)
}

func TestListLatest_OneEntryPerChain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	a := f.submit(t, user, 5, "A")
	b := f.submit(t, user, 6, "B")

	_, err := f.works.SubmitNewVersion(ctx, user, a.Work.ID, newVersionRequest("A v2"))
	require.NoError(t, err)
	_, err = f.works.SubmitNewVersion(ctx, user, a.Work.ID, newVersionRequest("A v3"))
	require.NoError(t, err)

	latest, err := f.works.ListLatest(ctx, user)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	byRoot := map[int64]dto.WorkResponse{}
	for _, w := range latest {
		byRoot[w.RootID] = w
	}
	assert.Equal(t, 3, byRoot[a.Work.ID].Version)
	assert.Equal(t, "A v3", byRoot[a.Work.ID].Title)
	assert.Equal(t, 1, byRoot[b.Work.ID].Version)

	other, err := f.works.ListLatest(ctx, newUserID())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListVersionHistory_FromAnyVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	root := f.submit(t, user, 7, "Story")
	v2, err := f.works.SubmitNewVersion(ctx, user, root.Work.ID, newVersionRequest("Story v2"))
	require.NoError(t, err)

	history, err := f.works.ListVersionHistory(ctx, user, v2.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Version)
	assert.Equal(t, 2, history[1].Version)
}

func TestGetWork_IncludesHistoryAndTaskStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	root := f.submit(t, user, 8, "Essay")
	_, err := f.works.SubmitNewVersion(ctx, user, root.Work.ID, newVersionRequest("Essay v2"))
	require.NoError(t, err)

	detail, err := f.works.GetWork(ctx, user, root.Work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Essay", detail.Work.Title)
	assert.NotEmpty(t, detail.Work.TaskTitle)
	assert.Len(t, detail.History, 2)
	assert.Equal(t, "pending", detail.TaskStatus)

	_, err = f.works.GetWork(ctx, newUserID(), root.Work.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotWorkOwner)
}
