package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

// WorkService manages a student's works and their versions.
type WorkService interface {
	// ListLatest returns the newest version of each of the user's works.
	ListLatest(ctx context.Context, userID string) ([]dto.WorkResponse, error)
	GetWork(ctx context.Context, userID string, workID int64) (*dto.WorkDetailResponse, error)
	SubmitNewVersion(ctx context.Context, userID string, workID int64, req *dto.NewVersionRequest) (*dto.WorkResponse, error)
	ListVersionHistory(ctx context.Context, userID string, workID int64) ([]dto.WorkResponse, error)
}

type workServiceImpl struct {
	store  store.Store
	tasks  *progression.TaskCatalog
	logger zerolog.Logger
}

// NewWorkService creates a new WorkService
func NewWorkService(st store.Store, tasks *progression.TaskCatalog, logger zerolog.Logger) WorkService {
	return &workServiceImpl{
		store:  st,
		tasks:  tasks,
		logger: logger.With().Str("service", "work").Logger(),
	}
}

func (s *workServiceImpl) ListLatest(ctx context.Context, userID string) ([]dto.WorkResponse, error) {
	all, err := s.store.Works().ListWorksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing works: %w", err)
	}
	return s.toResponses(works.LatestPerRoot(all)), nil
}

func (s *workServiceImpl) GetWork(ctx context.Context, userID string, workID int64) (*dto.WorkDetailResponse, error) {
	work, err := s.ownedWork(ctx, s.store, userID, workID)
	if err != nil {
		return nil, err
	}
	chain, err := s.store.Works().ListChain(ctx, work.RootID())
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}

	resp := &dto.WorkDetailResponse{
		Work:    dto.FromWork(work, s.taskTitle(work.TaskID)),
		History: s.toResponses(works.History(chain, work.RootID())),
	}
	ut, err := s.store.UserTasks().GetUserTask(ctx, work.UserID, work.TaskID)
	switch {
	case err == nil:
		resp.TaskStatus = string(ut.Status)
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, fmt.Errorf("error getting task status: %w", err)
	}
	return resp, nil
}

// SubmitNewVersion adds a version to the chain of workID. workID may be the
// root or any later version; the new row always points at the root.
func (s *workServiceImpl) SubmitNewVersion(ctx context.Context, userID string, workID int64, req *dto.NewVersionRequest) (*dto.WorkResponse, error) {
	var created models.Work
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		ref, err := tx.Works().GetWork(ctx, workID)
		if err != nil {
			return err
		}
		root, err := s.ownedWork(ctx, tx, userID, ref.RootID())
		if err != nil {
			return err
		}
		chain, err := tx.Works().ListChain(ctx, root.ID)
		if err != nil {
			return err
		}
		next, err := works.NextVersion(chain)
		if err != nil {
			return fmt.Errorf("work %d: %w", root.ID, apperrors.ErrWorkNotFound)
		}

		rootID := root.ID
		created = models.Work{
			UserID:       root.UserID,
			TaskID:       root.TaskID,
			Title:        req.Title,
			Description:  req.Description,
			Reflection:   req.Reflection,
			Link:         req.Link,
			Tags:         works.StripMetaTags(req.Tags),
			Version:      next,
			ParentWorkID: &rootID,
		}
		return tx.Works().CreateWork(ctx, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("error submitting new version: %w", err)
	}

	s.logger.Info().Str("userID", userID).Int64("rootID", *created.ParentWorkID).Int("version", created.Version).Msg("Work version submitted")
	resp := dto.FromWork(&created, s.taskTitle(created.TaskID))
	return &resp, nil
}

func (s *workServiceImpl) ListVersionHistory(ctx context.Context, userID string, workID int64) ([]dto.WorkResponse, error) {
	work, err := s.ownedWork(ctx, s.store, userID, workID)
	if err != nil {
		return nil, err
	}
	chain, err := s.store.Works().ListChain(ctx, work.RootID())
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}
	return s.toResponses(works.History(chain, work.RootID())), nil
}

func (s *workServiceImpl) ownedWork(ctx context.Context, st store.Store, userID string, workID int64) (*models.Work, error) {
	work, err := st.Works().GetWork(ctx, workID)
	if err != nil {
		return nil, err
	}
	if work.UserID != userID {
		return nil, fmt.Errorf("work %d: %w", workID, apperrors.ErrNotWorkOwner)
	}
	return work, nil
}

func (s *workServiceImpl) taskTitle(taskID int64) string {
	if t, ok := s.tasks.Get(taskID); ok {
		return t.Title
	}
	return ""
}

func (s *workServiceImpl) toResponses(list []models.Work) []dto.WorkResponse {
	out := make([]dto.WorkResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromWork(&list[i], s.taskTitle(list[i].TaskID)))
	}
	return out
}
