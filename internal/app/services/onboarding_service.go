package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// OnboardingService stores the onboarding questionnaire.
type OnboardingService interface {
	Status(ctx context.Context, userID string) (*dto.OnboardingStatusResponse, error)
	Submit(ctx context.Context, userID string, payload *onboarding.Payload) (*dto.OnboardingResultResponse, error)
}

type onboardingServiceImpl struct {
	store    store.Store
	progress ProgressService
	logger   zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(st store.Store, progress ProgressService, logger zerolog.Logger) OnboardingService {
	return &onboardingServiceImpl{
		store:    st,
		progress: progress,
		logger:   logger.With().Str("service", "onboarding").Logger(),
	}
}

// Status reports whether the user finished onboarding. The profile is
// created on first visit.
func (s *onboardingServiceImpl) Status(ctx context.Context, userID string) (*dto.OnboardingStatusResponse, error) {
	profile, err := s.store.Profiles().EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return &dto.OnboardingStatusResponse{Completed: profile.OnboardingCompleted, Profile: profile}, nil
}

// Submit validates the payload and writes the profile update, the archived
// assessment and every derived record in one transaction.
func (s *onboardingServiceImpl) Submit(ctx context.Context, userID string, payload *onboarding.Payload) (*dto.OnboardingResultResponse, error) {
	ctx, span := tracing.Start(ctx, "onboarding.submit", attribute.String("user.id", userID))
	defer span.End()

	if payload == nil {
		return nil, apperrors.NewBadRequestError("onboarding payload is required")
	}
	if err := payload.Validate(); err != nil {
		return nil, errors.Join(apperrors.ErrValidationFailed, err)
	}
	rec, err := onboarding.Ingest(payload)
	if err != nil {
		return nil, errors.Join(apperrors.ErrValidationFailed, err)
	}

	result := &dto.OnboardingResultResponse{
		Interests: len(rec.Interests),
		Strengths: len(rec.Strengths),
		Traits:    len(rec.Traits),
		Goals:     len(rec.Goals),
	}
	err = s.store.WithTransaction(ctx, func(tx store.Store) error {
		if _, err := tx.Profiles().EnsureProfile(ctx, userID); err != nil {
			return err
		}
		if err := tx.Profiles().ApplyOnboarding(ctx, userID, rec.Profile); err != nil {
			return err
		}

		assessment := &models.Assessment{
			UserID: userID,
			Type:   rec.Assessment.Type,
			Source: rec.Assessment.Source,
			Status: models.AssessmentStatusCompleted,
			Data:   rec.Assessment.Data,
		}
		if err := tx.Assessments().CreateAssessment(ctx, assessment); err != nil {
			return err
		}
		result.AssessmentID = assessment.ID

		return s.writeRecords(ctx, tx, userID, assessment.ID, rec)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Onboarding submission rolled back")
		return nil, fmt.Errorf("error saving onboarding: %w", err)
	}

	s.progress.Invalidate(ctx, userID)
	s.logger.Info().Str("userID", userID).Int64("assessmentID", result.AssessmentID).Msg("Onboarding completed")
	return result, nil
}

func (s *onboardingServiceImpl) writeRecords(ctx context.Context, tx store.Store, userID string, assessmentID int64, rec onboarding.Records) error {
	interests := make([]models.UserInterest, 0, len(rec.Interests))
	for _, r := range rec.Interests {
		interests = append(interests, models.UserInterest{
			UserID:       userID,
			AssessmentID: assessmentID,
			Category:     r.Category,
			Specific:     r.Specific,
			Intensity:    r.Intensity,
			Source:       r.Source,
		})
	}
	if err := tx.Assessments().AddInterests(ctx, interests); err != nil {
		return err
	}

	strengths := make([]models.UserStrength, 0, len(rec.Strengths))
	for _, r := range rec.Strengths {
		strengths = append(strengths, models.UserStrength{
			UserID:     userID,
			Dimension:  r.Dimension,
			TagName:    r.TagName,
			Confidence: r.Confidence,
			Source:     r.Source,
		})
	}
	if err := tx.Assessments().AddStrengths(ctx, strengths); err != nil {
		return err
	}

	traits := make([]models.UserTrait, 0, len(rec.Traits))
	for _, r := range rec.Traits {
		traits = append(traits, models.UserTrait{
			UserID:       userID,
			AssessmentID: assessmentID,
			TraitName:    r.TraitName,
			Score:        r.Score,
			Source:       r.Source,
		})
	}
	if err := tx.Assessments().AddTraits(ctx, traits); err != nil {
		return err
	}

	goals := make([]models.UserGoal, 0, len(rec.Goals))
	for _, r := range rec.Goals {
		goals = append(goals, models.UserGoal{
			UserID:   userID,
			GoalType: string(r.Type),
			Content:  r.Content,
			Status:   models.GoalStatusActive,
		})
	}
	return tx.Assessments().AddGoals(ctx, goals)
}
