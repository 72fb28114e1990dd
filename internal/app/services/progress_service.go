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
	"github.com/yigit/growthpath/internal/pkg/cache"
	"github.com/yigit/growthpath/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// ProgressService computes levels and mentor unlocks for a user.
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*dto.ProgressResponse, error)
	// SyncUnlocks records every mentor whose condition is now met.
	SyncUnlocks(ctx context.Context, userID string) (*dto.UnlockSyncResponse, error)
	Invalidate(ctx context.Context, userID string)
	Levels() []dto.LevelResponse
	Mentors() []dto.MentorResponse
}

type progressServiceImpl struct {
	store  store.Store
	rules  progression.Rules
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(st store.Store, rules progression.Rules, c cache.Cache, ttl time.Duration, logger zerolog.Logger) ProgressService {
	if c == nil {
		c = cache.Noop{}
	}
	return &progressServiceImpl{
		store:  st,
		rules:  rules,
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("service", "progress").Logger(),
		now:    time.Now,
	}
}

func (s *progressServiceImpl) GetProgress(ctx context.Context, userID string) (*dto.ProgressResponse, error) {
	ctx, span := tracing.Start(ctx, "progress.get", attribute.String("user.id", userID))
	defer span.End()

	var cached dto.ProgressResponse
	err := s.cache.Get(ctx, cache.ProgressKey(userID), &cached)
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("Progress cache read failed")
	}

	profile, err := s.store.Profiles().EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	completed, err := s.store.UserTasks().CompletedTaskIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading completed tasks: %w", err)
	}
	unlocks, err := s.store.Unlocks().ListUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading mentor unlocks: %w", err)
	}

	summary := s.rules.Summarize(profile.TotalPoints, completed, unlockedMentorIDs(unlocks))
	resp := dto.FromSummary(userID, completed, summary)

	if err := s.cache.Set(ctx, cache.ProgressKey(userID), resp, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("Progress cache write failed")
	}
	return resp, nil
}

func (s *progressServiceImpl) SyncUnlocks(ctx context.Context, userID string) (*dto.UnlockSyncResponse, error) {
	var (
		newly []progression.Mentor
		total int
	)
	err := s.store.WithTransaction(ctx, func(tx store.Store) error {
		if _, err := tx.Profiles().EnsureProfile(ctx, userID); err != nil {
			return err
		}
		var err error
		newly, total, err = syncUnlocks(ctx, tx, s.rules, userID, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error syncing unlocks: %w", err)
	}
	if len(newly) > 0 {
		s.Invalidate(ctx, userID)
		s.logger.Info().Str("userID", userID).Int("count", len(newly)).Msg("Mentors unlocked")
	}
	return &dto.UnlockSyncResponse{NewlyUnlocked: dto.FromMentors(newly), UnlockedCount: total}, nil
}

func (s *progressServiceImpl) Invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, cache.ProgressKey(userID)); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("Progress cache invalidation failed")
	}
}

func (s *progressServiceImpl) Levels() []dto.LevelResponse {
	return dto.FromLevels(s.rules.Levels.Levels())
}

func (s *progressServiceImpl) Mentors() []dto.MentorResponse {
	return dto.FromMentors(s.rules.Mentors.Mentors())
}

// syncUnlocks persists the mentors that became unlockable for userID and
// returns them with the resulting unlocked count. It must run inside tx so
// the unlock rows commit with whatever changed the user's progress.
func syncUnlocks(ctx context.Context, tx store.Store, rules progression.Rules, userID string, at time.Time) ([]progression.Mentor, int, error) {
	profile, err := tx.Profiles().GetProfile(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	completed, err := tx.UserTasks().CompletedTaskIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	unlocks, err := tx.Unlocks().ListUnlocks(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	summary := rules.Summarize(profile.TotalPoints, completed, unlockedMentorIDs(unlocks))
	total := len(unlocks)
	newly := make([]progression.Mentor, 0, len(summary.NewUnlocks))
	for _, m := range summary.NewUnlocks {
		inserted, err := tx.Unlocks().AddUnlock(ctx, models.MentorUnlock{UserID: userID, MentorID: m.ID, UnlockedAt: at})
		if err != nil {
			return nil, 0, fmt.Errorf("unlock %s: %w", m.ID, err)
		}
		if inserted {
			newly = append(newly, m)
			total++
		}
	}
	return newly, total, nil
}

func unlockedMentorIDs(unlocks []models.MentorUnlock) []string {
	ids := make([]string, 0, len(unlocks))
	for _, u := range unlocks {
		ids = append(ids, u.MentorID)
	}
	return ids
}
