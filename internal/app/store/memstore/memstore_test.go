package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

const userA = "7b0d3b7e-3c0f-4a8e-9b5d-6a1f2f7f0a01"

func fixedClock() func() time.Time {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	n := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithClock(fixedClock()))
	_, err := s.Profiles().EnsureProfile(context.Background(), userA)
	require.NoError(t, err)
	return s
}

func TestWithTransaction_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTransaction(ctx, func(tx store.Store) error {
		_, err := tx.Profiles().AddPoints(ctx, userA, 100)
		require.NoError(t, err)
		_, err = tx.UserTasks().InsertCompleted(ctx, userA, 1, 100, "", time.Now())
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	prof, err := s.Profiles().GetProfile(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, 0, prof.TotalPoints)
	_, err = s.UserTasks().GetUserTask(ctx, userA, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestWithTransaction_CommitPublishes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.WithTransaction(ctx, func(tx store.Store) error {
		_, err := tx.Profiles().AddPoints(ctx, userA, 40)
		if err != nil {
			return err
		}
		// outside readers still see the old snapshot
		prof, err := s.Profiles().GetProfile(ctx, userA)
		require.NoError(t, err)
		assert.Equal(t, 0, prof.TotalPoints)
		return nil
	})
	require.NoError(t, err)

	prof, err := s.Profiles().GetProfile(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, 40, prof.TotalPoints)
}

func TestUserTasks_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ut := s.UserTasks()

	ok, err := ut.CompleteIfPending(ctx, userA, 2, 80, "", time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "no row yet")

	created, err := ut.CreatePending(ctx, userA, 2, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	created, err = ut.CreatePending(ctx, userA, 2, time.Now())
	require.NoError(t, err)
	assert.False(t, created)

	ok, err = ut.CompleteIfPending(ctx, userA, 2, 80, "good", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ut.CompleteIfPending(ctx, userA, 2, 80, "again", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	inserted, err := ut.InsertCompleted(ctx, userA, 2, 80, "", time.Now())
	require.NoError(t, err)
	assert.False(t, inserted)

	ids, err := ut.CompletedTaskIDs(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)

	sum, err := ut.SumPointsEarned(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(80), sum)
}

func TestWorks_ChainRules(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ws := s.Works()

	root := &models.Work{UserID: userA, TaskID: 1, Title: "ants", Version: 1, Tags: []string{"bugs"}}
	require.NoError(t, ws.CreateWork(ctx, root))
	assert.Equal(t, works.ReviewPending, root.ReviewStatus)

	v2 := &models.Work{UserID: userA, TaskID: 1, Title: "ants v2", Version: 2, ParentWorkID: &root.ID}
	require.NoError(t, ws.CreateWork(ctx, v2))

	dup := &models.Work{UserID: userA, TaskID: 1, Version: 2, ParentWorkID: &root.ID}
	assert.ErrorIs(t, ws.CreateWork(ctx, dup), apperrors.ErrConflict)

	nested := &models.Work{UserID: userA, TaskID: 1, Version: 3, ParentWorkID: &v2.ID}
	assert.ErrorIs(t, ws.CreateWork(ctx, nested), apperrors.ErrValidationFailed)

	chain, err := ws.ListChain(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, []int{1, 2}, []int{chain[0].Version, chain[1].Version})

	_, err = ws.GetWork(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrWorkNotFound)
}

func TestWorks_RecordReviewStripsLegacyTags(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	w := &models.Work{UserID: userA, TaskID: 1, Title: "x", Version: 1, Tags: []string{"lego", "points:5", "status:completed"}}
	require.NoError(t, s.Works().CreateWork(ctx, w))

	require.NoError(t, s.Works().RecordReview(ctx, w.ID, works.Review{Status: works.ReviewCompleted, Points: 90, Feedback: "ok"}, time.Now()))

	got, err := s.Works().GetWork(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"lego"}, got.Tags)
	assert.Equal(t, works.Review{Status: works.ReviewCompleted, Points: 90, Feedback: "ok"}, got.Review())

	pending, err := s.Works().CountWorks(ctx, works.ReviewPending)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestProfiles_ListAndPoints(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, id := range []string{"u2", "u3"} {
		_, err := s.Profiles().EnsureProfile(ctx, id)
		require.NoError(t, err)
	}

	page, total, err := s.Profiles().ListProfiles(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "u2", page[0].ID)

	_, err = s.Profiles().AddPoints(ctx, userA, -5)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = s.Profiles().AddPoints(ctx, "missing", 5)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestUnlocks_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ok, err := s.Unlocks().AddUnlock(ctx, models.MentorUnlock{UserID: userA, MentorID: "star"})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Unlocks().AddUnlock(ctx, models.MentorUnlock{UserID: userA, MentorID: "star"})
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := s.Unlocks().ListUnlocks(ctx, userA)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithTransaction(ctx, func(tx store.Store) error {
				_, err := tx.Profiles().AddPoints(ctx, userA, 5)
				return err
			})
		}()
	}
	wg.Wait()

	prof, err := s.Profiles().GetProfile(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, 100, prof.TotalPoints)
}
