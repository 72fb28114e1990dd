package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store/memstore"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/pkg/cache"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	store       *memstore.Store
	cache       *cache.Memory
	rules       progression.Rules
	progress    ProgressService
	onboarding  OnboardingService
	tasks       TaskService
	works       WorkService
	review      ReviewService
	observation ObservationService
	admin       AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	rules := progression.DefaultRules()
	c := cache.NewMemory()
	lgr := zerolog.Nop()

	progress := NewProgressService(st, rules, c, time.Minute, lgr)
	return &fixture{
		store:       st,
		cache:       c,
		rules:       rules,
		progress:    progress,
		onboarding:  NewOnboardingService(st, progress, lgr),
		tasks:       NewTaskService(st, rules.Tasks, lgr),
		works:       NewWorkService(st, rules.Tasks, lgr),
		review:      NewReviewService(st, rules, progress, lgr),
		observation: NewObservationService(st, lgr),
		admin:       NewAdminService(st, rules, lgr),
	}
}

func newUserID() string {
	return uuid.NewString()
}

// submit creates the root work of taskID for userID.
func (f *fixture) submit(t *testing.T, userID string, taskID int64, title string) *dto.SubmitTaskResponse {
	t.Helper()
	resp, err := f.tasks.SubmitTask(context.Background(), userID, &dto.SubmitTaskRequest{
		TaskID: taskID,
		Title:  title,
		Tags:   []string{"draft"},
	})
	require.NoError(t, err)
	return resp
}
