package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

// AdminService backs the admin dashboard.
type AdminService interface {
	ListUsers(ctx context.Context, page, size int) (*dto.PaginatedResponse, error)
	GetUserDetail(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type adminServiceImpl struct {
	store  store.Store
	rules  progression.Rules
	logger zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(st store.Store, rules progression.Rules, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		store:  st,
		rules:  rules,
		logger: logger.With().Str("service", "admin").Logger(),
	}
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	profiles, total, err := s.store.Profiles().ListProfiles(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}

	items := make([]dto.UserSummaryResponse, 0, len(profiles))
	for i := range profiles {
		level := s.rules.Levels.Resolve(profiles[i].TotalPoints).Current
		items = append(items, dto.FromProfileSummary(&profiles[i], dto.FromLevel(level)))
	}
	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetUserDetail loads every record of a student concurrently.
func (s *adminServiceImpl) GetUserDetail(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	profile, err := s.store.Profiles().GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		interests    []models.UserInterest
		strengths    []models.UserStrength
		traits       []models.UserTrait
		goals        []models.UserGoal
		userTasks    []models.UserTask
		completed    []int64
		workRows     []models.Work
		assessments  []models.Assessment
		observations []models.Observation
		unlocks      []models.MentorUnlock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { interests, err = s.store.Assessments().ListInterests(gctx, userID); return })
	g.Go(func() (err error) { strengths, err = s.store.Assessments().ListStrengths(gctx, userID); return })
	g.Go(func() (err error) { traits, err = s.store.Assessments().ListTraits(gctx, userID); return })
	g.Go(func() (err error) { goals, err = s.store.Assessments().ListGoals(gctx, userID); return })
	g.Go(func() (err error) { userTasks, err = s.store.UserTasks().ListUserTasks(gctx, userID); return })
	g.Go(func() (err error) { completed, err = s.store.UserTasks().CompletedTaskIDs(gctx, userID); return })
	g.Go(func() (err error) { workRows, err = s.store.Works().ListWorksByUser(gctx, userID); return })
	g.Go(func() (err error) { assessments, err = s.store.Assessments().ListAssessments(gctx, userID); return })
	g.Go(func() (err error) {
		observations, err = s.store.Observations().ListObservationsByUser(gctx, userID)
		return
	})
	g.Go(func() (err error) { unlocks, err = s.store.Unlocks().ListUnlocks(gctx, userID); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error loading user detail: %w", err)
	}

	summary := s.rules.Summarize(profile.TotalPoints, completed, unlockedMentorIDs(unlocks))
	progress := dto.FromSummary(userID, completed, summary)

	resp := &dto.UserDetailResponse{
		Profile:        profile,
		Level:          progress.Level,
		Interests:      nonNil(interests),
		Strengths:      nonNil(strengths),
		Traits:         nonNil(traits),
		Goals:          nonNil(goals),
		Tasks:          make([]dto.UserTaskResponse, 0, len(userTasks)),
		CompletedTasks: progress.CompletedTasks,
		Works:          make([]dto.WorkResponse, 0, len(workRows)),
		Assessments:    nonNil(assessments),
		Observations:   make([]dto.ObservationResponse, 0, len(observations)),
		Mentors:        progress.Mentors,
	}
	for i := range userTasks {
		resp.Tasks = append(resp.Tasks, dto.FromUserTask(&userTasks[i]))
	}
	for i := range workRows {
		title := ""
		if t, ok := s.rules.Tasks.Get(workRows[i].TaskID); ok {
			title = t.Title
		}
		resp.Works = append(resp.Works, dto.FromWork(&workRows[i], title))
	}
	for i := range observations {
		resp.Observations = append(resp.Observations, dto.FromObservation(&observations[i], profile.Nickname))
	}
	return resp, nil
}

// Stats counts rows across the store concurrently.
func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var st dto.StatsResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { st.Profiles, err = s.store.Profiles().CountProfiles(gctx, false); return })
	g.Go(func() (err error) { st.OnboardedProfiles, err = s.store.Profiles().CountProfiles(gctx, true); return })
	g.Go(func() (err error) { st.Works, err = s.store.Works().CountWorks(gctx, ""); return })
	g.Go(func() (err error) {
		st.PendingReviews, err = s.store.Works().CountWorks(gctx, works.ReviewPending)
		return
	})
	g.Go(func() (err error) {
		st.CompletedTasks, err = s.store.UserTasks().CountByStatus(gctx, works.ReviewCompleted)
		return
	})
	g.Go(func() (err error) { st.Assessments, err = s.store.Assessments().CountAssessments(gctx); return })
	g.Go(func() (err error) { st.Observations, err = s.store.Observations().CountObservations(gctx); return })
	g.Go(func() (err error) { st.PointsAwarded, err = s.store.UserTasks().SumPointsEarned(gctx); return })
	g.Go(func() (err error) { st.MentorUnlocks, err = s.store.Unlocks().CountUnlocks(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error loading stats: %w", err)
	}
	return &st, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
