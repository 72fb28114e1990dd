package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

func samplePayload() *onboarding.Payload {
	return &onboarding.Payload{
		BasicInfo:   onboarding.BasicInfo{Nickname: "Mia", Age: 11, Grade: "grade_5", Gender: "female"},
		Interests:   onboarding.Interests{Categories: []string{"science", "arts"}, Specific: "bugs"},
		Strengths:   onboarding.Strengths{Self: []string{"observation", "patience"}},
		Personality: onboarding.Personality{Traits: []string{"curious"}},
		Goals:       onboarding.Goals{Dream: "", Learn: "coding", ThisYear: "  "},
	}
}

func TestOnboardingStatus_CreatesProfileLazily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	st, err := f.onboarding.Status(ctx, user)
	require.NoError(t, err)
	assert.False(t, st.Completed)
	require.NotNil(t, st.Profile)
	assert.Equal(t, user, st.Profile.ID)
}

func TestOnboardingSubmit_WritesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	res, err := f.onboarding.Submit(ctx, user, samplePayload())
	require.NoError(t, err)
	assert.NotZero(t, res.AssessmentID)
	assert.Equal(t, 2, res.Interests)
	assert.Equal(t, 2, res.Strengths)
	assert.Equal(t, 1, res.Traits)
	assert.Equal(t, 1, res.Goals)

	profile, err := f.store.Profiles().GetProfile(ctx, user)
	require.NoError(t, err)
	assert.True(t, profile.OnboardingCompleted)
	assert.Equal(t, "Mia", profile.Nickname)
	assert.Equal(t, 11, profile.Age)

	interests, err := f.store.Assessments().ListInterests(ctx, user)
	require.NoError(t, err)
	require.Len(t, interests, 2)
	assert.Equal(t, res.AssessmentID, interests[0].AssessmentID)
	assert.Equal(t, 3, interests[0].Intensity)

	goals, err := f.store.Assessments().ListGoals(ctx, user)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "skill", goals[0].GoalType)
	assert.Equal(t, "coding", goals[0].Content)

	st, err := f.onboarding.Status(ctx, user)
	require.NoError(t, err)
	assert.True(t, st.Completed)
}

func TestOnboardingSubmit_ValidationFailsBeforeWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()

	p := samplePayload()
	p.BasicInfo.Gender = "unknown"
	_, err := f.onboarding.Submit(ctx, user, p)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = f.store.Profiles().GetProfile(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

type failingGoals struct{ store.AssessmentStore }

func (failingGoals) AddGoals(context.Context, []models.UserGoal) error {
	return errors.New("disk full")
}

type faultyStore struct{ store.Store }

func (f faultyStore) Assessments() store.AssessmentStore {
	return failingGoals{f.Store.Assessments()}
}

func (f faultyStore) WithTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.WithTransaction(ctx, func(tx store.Store) error {
		return fn(faultyStore{tx})
	})
}

func TestOnboardingSubmit_RollsBackOnPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := newUserID()
	svc := NewOnboardingService(faultyStore{f.store}, f.progress, zerolog.Nop())

	_, err := svc.Submit(ctx, user, samplePayload())
	require.Error(t, err)

	_, err = f.store.Profiles().GetProfile(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	n, err := f.store.Assessments().CountAssessments(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	interests, err := f.store.Assessments().ListInterests(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, interests)
}
