package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func TestObservations_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := newUserID()
	admin := newUserID()

	_, err := f.onboarding.Submit(ctx, student, samplePayload())
	require.NoError(t, err)

	created, err := f.observation.Create(ctx, admin, &dto.CreateObservationRequest{
		StudentID:     student,
		Title:         "Leads group work",
		Observation:   "Organised the science fair table.",
		SuggestedTags: []string{"leadership"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, admin, created.ObserverID)
	assert.Equal(t, "Mia", created.StudentName)
	assert.Empty(t, created.Category)

	all, err := f.observation.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Mia", all[0].StudentName)

	mine, err := f.observation.ListForUser(ctx, student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, []string{"leadership"}, mine[0].SuggestedTags)
}

func TestObservations_UnknownStudent(t *testing.T) {
	f := newFixture(t)
	_, err := f.observation.Create(context.Background(), newUserID(), &dto.CreateObservationRequest{
		StudentID:   newUserID(),
		Title:       "x",
		Observation: "y",
	})
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestObservations_OwnFeedNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := newUserID()
	admin := newUserID()

	_, err := f.onboarding.Submit(ctx, student, samplePayload())
	require.NoError(t, err)
	for _, title := range []string{"first", "second"} {
		_, err := f.observation.Create(ctx, admin, &dto.CreateObservationRequest{
			StudentID:   student,
			Title:       title,
			Observation: "noted",
		})
		require.NoError(t, err)
	}

	own, err := f.observation.ListOwn(ctx, student)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, []string{"second", "first"}, []string{own[0].Title, own[1].Title})
}

func TestObservations_OwnFeedCreatesProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := newUserID()

	own, err := f.observation.ListOwn(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, own)

	_, err = f.store.Profiles().GetProfile(ctx, student)
	assert.NoError(t, err)
}
