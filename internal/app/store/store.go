// Package store declares the persistence contracts the services depend on.
// The postgres implementation lives in repositories, the in-memory one in
// store/memstore.
package store

import (
	"context"
	"time"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/domain/works"
)

// ProfileStore persists profiles. Lookups of a missing id return
// apperrors.ErrProfileNotFound.
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	// EnsureProfile returns the profile, creating an empty one if missing.
	EnsureProfile(ctx context.Context, id string) (*models.Profile, error)
	ApplyOnboarding(ctx context.Context, id string, upd onboarding.ProfileUpdate) error
	// AddPoints increments the total and returns the new value.
	AddPoints(ctx context.Context, id string, delta int) (int, error)
	ListProfiles(ctx context.Context, offset uint64, limit int) ([]models.Profile, int64, error)
	CountProfiles(ctx context.Context, onboardedOnly bool) (int64, error)
}

// UserTaskStore persists the (user, task) review state.
type UserTaskStore interface {
	GetUserTask(ctx context.Context, userID string, taskID int64) (*models.UserTask, error)
	ListUserTasks(ctx context.Context, userID string) ([]models.UserTask, error)
	CompletedTaskIDs(ctx context.Context, userID string) ([]int64, error)
	// CreatePending inserts a pending row unless one exists.
	CreatePending(ctx context.Context, userID string, taskID int64, at time.Time) (bool, error)
	// CompleteIfPending moves a pending row to completed. It reports false
	// when no pending row exists.
	CompleteIfPending(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error)
	// InsertCompleted creates a completed row unless one exists.
	InsertCompleted(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error)
	CountByStatus(ctx context.Context, status works.ReviewStatus) (int64, error)
	SumPointsEarned(ctx context.Context) (int64, error)
}

// WorkStore persists works. Missing ids return apperrors.ErrWorkNotFound.
type WorkStore interface {
	CreateWork(ctx context.Context, w *models.Work) error
	GetWork(ctx context.Context, id int64) (*models.Work, error)
	ListWorksByUser(ctx context.Context, userID string) ([]models.Work, error)
	// ListChain returns the root and every work whose parent is the root,
	// ordered by version.
	ListChain(ctx context.Context, rootID int64) ([]models.Work, error)
	RecordReview(ctx context.Context, workID int64, review works.Review, at time.Time) error
	ListAllWorks(ctx context.Context) ([]models.Work, error)
	CountWorks(ctx context.Context, status works.ReviewStatus) (int64, error)
}

// AssessmentStore persists onboarding output.
type AssessmentStore interface {
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	AddInterests(ctx context.Context, rows []models.UserInterest) error
	AddStrengths(ctx context.Context, rows []models.UserStrength) error
	AddTraits(ctx context.Context, rows []models.UserTrait) error
	AddGoals(ctx context.Context, rows []models.UserGoal) error
	ListAssessments(ctx context.Context, userID string) ([]models.Assessment, error)
	ListInterests(ctx context.Context, userID string) ([]models.UserInterest, error)
	ListStrengths(ctx context.Context, userID string) ([]models.UserStrength, error)
	ListTraits(ctx context.Context, userID string) ([]models.UserTrait, error)
	ListGoals(ctx context.Context, userID string) ([]models.UserGoal, error)
	CountAssessments(ctx context.Context) (int64, error)
}

// ObservationStore persists admin notes.
type ObservationStore interface {
	CreateObservation(ctx context.Context, o *models.Observation) error
	ListObservations(ctx context.Context) ([]models.Observation, error)
	ListObservationsByUser(ctx context.Context, userID string) ([]models.Observation, error)
	CountObservations(ctx context.Context) (int64, error)
}

// UnlockStore persists mentor unlocks.
type UnlockStore interface {
	ListUnlocks(ctx context.Context, userID string) ([]models.MentorUnlock, error)
	// AddUnlock is idempotent and reports whether a row was inserted.
	AddUnlock(ctx context.Context, u models.MentorUnlock) (bool, error)
	CountUnlocks(ctx context.Context) (int64, error)
}

// Store groups the stores and runs multi-step writes atomically.
type Store interface {
	Profiles() ProfileStore
	UserTasks() UserTaskStore
	Works() WorkStore
	Assessments() AssessmentStore
	Observations() ObservationStore
	Unlocks() UnlockStore

	// WithTransaction runs fn against a Store bound to one transaction. A
	// returned error rolls everything back.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
