package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

// TaskService serves the task catalog and first submissions.
type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]dto.TaskResponse, error)
	GetTask(ctx context.Context, userID string, taskID int64) (*dto.TaskResponse, error)
	SubmitTask(ctx context.Context, userID string, req *dto.SubmitTaskRequest) (*dto.SubmitTaskResponse, error)
}

type taskServiceImpl struct {
	store  store.Store
	tasks  *progression.TaskCatalog
	logger zerolog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(st store.Store, tasks *progression.TaskCatalog, logger zerolog.Logger) TaskService {
	return &taskServiceImpl{
		store:  st,
		tasks:  tasks,
		logger: logger.With().Str("service", "task").Logger(),
		now:    time.Now,
	}
}

// ListTasks returns the catalog with the caller's status on each task.
func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	statuses, err := s.statuses(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks := s.tasks.Tasks()
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp := dto.FromTask(t)
		resp.Status = statuses[t.ID]
		out = append(out, resp)
	}
	return out, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID string, taskID int64) (*dto.TaskResponse, error) {
	t, ok := s.tasks.Get(taskID)
	if !ok {
		return nil, fmt.Errorf("task %d: %w", taskID, apperrors.ErrTaskNotFound)
	}
	resp := dto.FromTask(t)
	if userID != "" {
		ut, err := s.store.UserTasks().GetUserTask(ctx, userID, taskID)
		switch {
		case err == nil:
			resp.Status = string(ut.Status)
		case !errors.Is(err, apperrors.ErrResourceNotFound):
			return nil, fmt.Errorf("error getting task status: %w", err)
		}
	}
	return &resp, nil
}

// SubmitTask opens the task for the user and stores the first version of
// the work. A task that was already approved cannot be submitted again.
func (s *taskServiceImpl) SubmitTask(ctx context.Context, userID string, req *dto.SubmitTaskRequest) (*dto.SubmitTaskResponse, error) {
	task, ok := s.tasks.Get(req.TaskID)
	if !ok {
		return nil, fmt.Errorf("task %d: %w", req.TaskID, apperrors.ErrTaskNotFound)
	}

	now := s.now()
	var resp dto.SubmitTaskResponse
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		if _, err := tx.Profiles().EnsureProfile(ctx, userID); err != nil {
			return err
		}

		existing, err := tx.UserTasks().GetUserTask(ctx, userID, task.ID)
		switch {
		case err == nil && existing.Status == works.ReviewCompleted:
			return fmt.Errorf("task %d: %w", task.ID, apperrors.ErrTaskAlreadyClosed)
		case err != nil && !errors.Is(err, apperrors.ErrResourceNotFound):
			return err
		}
		if _, err := tx.UserTasks().CreatePending(ctx, userID, task.ID, now); err != nil {
			return err
		}

		work := &models.Work{
			UserID:      userID,
			TaskID:      task.ID,
			Title:       req.Title,
			Description: req.Description,
			Reflection:  req.Reflection,
			Link:        req.Link,
			Tags:        works.StripMetaTags(req.Tags),
			Version:     1,
		}
		if err := tx.Works().CreateWork(ctx, work); err != nil {
			return err
		}

		ut, err := tx.UserTasks().GetUserTask(ctx, userID, task.ID)
		if err != nil {
			return err
		}
		resp.UserTask = dto.FromUserTask(ut)
		resp.Work = dto.FromWork(work, task.Title)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error submitting task: %w", err)
	}

	s.logger.Info().Str("userID", userID).Int64("taskID", task.ID).Int64("workID", resp.Work.ID).Msg("Task submitted")
	return &resp, nil
}

func (s *taskServiceImpl) statuses(ctx context.Context, userID string) (map[int64]string, error) {
	out := map[int64]string{}
	if userID == "" {
		return out, nil
	}
	uts, err := s.store.UserTasks().ListUserTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user tasks: %w", err)
	}
	for _, ut := range uts {
		out[ut.TaskID] = string(ut.Status)
	}
	return out, nil
}
