package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// ReviewService is the admin side of works.
type ReviewService interface {
	// ApproveWork records a completed review on the work. Points are awarded
	// only the first time the work's task is completed.
	ApproveWork(ctx context.Context, workID int64, points int, feedback string) (*dto.ApproveWorkResponse, error)
	// ListWorks returns every work, newest first. status filters on the
	// derived review status when not empty.
	ListWorks(ctx context.Context, status works.ReviewStatus) ([]dto.WorkResponse, error)
	// GetWork returns a work with its owner, task state and version chain.
	GetWork(ctx context.Context, workID int64) (*dto.AdminWorkDetailResponse, error)
}

type reviewServiceImpl struct {
	store    store.Store
	rules    progression.Rules
	progress ProgressService
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(st store.Store, rules progression.Rules, progress ProgressService, logger zerolog.Logger) ReviewService {
	return &reviewServiceImpl{
		store:    st,
		rules:    rules,
		progress: progress,
		logger:   logger.With().Str("service", "review").Logger(),
		now:      time.Now,
	}
}

// ApproveWork runs in one transaction: the user task moves from pending to
// completed (or is created completed), the review is recorded on the work,
// points are added and newly reachable mentors are unlocked. Points are only
// added when this call performed the transition. A work that already carries
// a completed review fails with ErrAlreadyApproved and changes nothing. A later
// version of a task that is already completed gets its review recorded
// without awarding points again.
func (s *reviewServiceImpl) ApproveWork(ctx context.Context, workID int64, points int, feedback string) (*dto.ApproveWorkResponse, error) {
	ctx, span := tracing.Start(ctx, "review.approve", attribute.Int64("work.id", workID), attribute.Int("points", points))
	defer span.End()

	if points <= 0 {
		return nil, apperrors.ErrInvalidPoints
	}

	now := s.now()
	var (
		work    *models.Work
		total   int
		awarded bool
		newly   []progression.Mentor
	)
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		var err error
		work, err = tx.Works().GetWork(ctx, workID)
		if err != nil {
			return err
		}
		if work.Review().Status == works.ReviewCompleted {
			return fmt.Errorf("work %d: %w", work.ID, apperrors.ErrAlreadyApproved)
		}

		awarded, err = tx.UserTasks().CompleteIfPending(ctx, work.UserID, work.TaskID, points, feedback, now)
		if err != nil {
			return err
		}
		if !awarded {
			if awarded, err = tx.UserTasks().InsertCompleted(ctx, work.UserID, work.TaskID, points, feedback, now); err != nil {
				return err
			}
		}
		if !awarded {
			// A concurrent approval of this same work may have won the
			// transition; re-read so it is reported as a conflict.
			current, err := tx.Works().GetWork(ctx, workID)
			if err != nil {
				return err
			}
			if current.Review().Status == works.ReviewCompleted {
				return fmt.Errorf("work %d: %w", work.ID, apperrors.ErrAlreadyApproved)
			}
		}

		review := works.Review{Status: works.ReviewCompleted, Points: points, Feedback: feedback}
		if err := tx.Works().RecordReview(ctx, work.ID, review, now); err != nil {
			return err
		}

		if !awarded {
			profile, err := tx.Profiles().EnsureProfile(ctx, work.UserID)
			if err != nil {
				return err
			}
			total = profile.TotalPoints
			return nil
		}
		if total, err = tx.Profiles().AddPoints(ctx, work.UserID, points); err != nil {
			return err
		}
		newly, _, err = syncUnlocks(ctx, tx, s.rules, work.UserID, now)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("workID", workID).Msg("Work approval failed")
		return nil, fmt.Errorf("error approving work: %w", err)
	}

	s.progress.Invalidate(ctx, work.UserID)
	s.logger.Info().
		Int64("workID", work.ID).
		Str("userID", work.UserID).
		Int64("taskID", work.TaskID).
		Int("points", points).
		Bool("awarded", awarded).
		Int("totalPoints", total).
		Int("newUnlocks", len(newly)).
		Msg("Work approved")

	return &dto.ApproveWorkResponse{
		WorkID:      work.ID,
		UserID:      work.UserID,
		TaskID:      work.TaskID,
		Points:      points,
		Awarded:     awarded,
		TotalPoints: total,
		NewUnlocks:  dto.FromMentors(newly),
	}, nil
}

func (s *reviewServiceImpl) ListWorks(ctx context.Context, status works.ReviewStatus) ([]dto.WorkResponse, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown review status %q", status))
	}
	all, err := s.store.Works().ListAllWorks(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing works: %w", err)
	}
	out := make([]dto.WorkResponse, 0, len(all))
	for i := range all {
		if status != "" && all[i].Review().Status != status {
			continue
		}
		out = append(out, dto.FromWork(&all[i], s.taskTitle(all[i].TaskID)))
	}
	return out, nil
}

func (s *reviewServiceImpl) GetWork(ctx context.Context, workID int64) (*dto.AdminWorkDetailResponse, error) {
	work, err := s.store.Works().GetWork(ctx, workID)
	if err != nil {
		return nil, err
	}
	owner, err := s.store.Profiles().GetProfile(ctx, work.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting work owner: %w", err)
	}
	chain, err := s.store.Works().ListChain(ctx, work.RootID())
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}

	resp := &dto.AdminWorkDetailResponse{
		Work: dto.FromWork(work, s.taskTitle(work.TaskID)),
		Owner: dto.WorkOwnerResponse{
			ID:       owner.ID,
			Nickname: owner.Nickname,
			Age:      owner.Age,
			Grade:    owner.Grade,
		},
		History: make([]dto.WorkResponse, 0, len(chain)),
	}
	for _, w := range works.History(chain, work.RootID()) {
		resp.History = append(resp.History, dto.FromWork(&w, s.taskTitle(w.TaskID)))
	}

	ut, err := s.store.UserTasks().GetUserTask(ctx, work.UserID, work.TaskID)
	switch {
	case err == nil:
		task := dto.FromUserTask(ut)
		resp.UserTask = &task
	case !apperrors.IsNotFound(err):
		return nil, fmt.Errorf("error getting task status: %w", err)
	}
	return resp, nil
}

func (s *reviewServiceImpl) taskTitle(taskID int64) string {
	if t, ok := s.rules.Tasks.Get(taskID); ok {
		return t.Title
	}
	return ""
}
