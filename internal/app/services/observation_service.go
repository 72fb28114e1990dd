package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

// ObservationService manages admin notes about students.
type ObservationService interface {
	Create(ctx context.Context, observerID string, req *dto.CreateObservationRequest) (*dto.ObservationResponse, error)
	ListAll(ctx context.Context) ([]dto.ObservationResponse, error)
	ListForUser(ctx context.Context, userID string) ([]dto.ObservationResponse, error)
	// ListOwn is the student's own feed, newest first.
	ListOwn(ctx context.Context, userID string) ([]dto.ObservationResponse, error)
}

type observationServiceImpl struct {
	store  store.Store
	logger zerolog.Logger
}

// NewObservationService creates a new ObservationService
func NewObservationService(st store.Store, logger zerolog.Logger) ObservationService {
	return &observationServiceImpl{
		store:  st,
		logger: logger.With().Str("service", "observation").Logger(),
	}
}

func (s *observationServiceImpl) Create(ctx context.Context, observerID string, req *dto.CreateObservationRequest) (*dto.ObservationResponse, error) {
	if observerID == "" {
		return nil, apperrors.NewForbiddenError("observer identity is required")
	}
	student, err := s.store.Profiles().GetProfile(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	obs := &models.Observation{
		UserID:        student.ID,
		ObserverID:    observerID,
		Title:         req.Title,
		Category:      req.Category,
		Observation:   req.Observation,
		SuggestedTags: req.SuggestedTags,
	}
	if err := s.store.Observations().CreateObservation(ctx, obs); err != nil {
		return nil, fmt.Errorf("error creating observation: %w", err)
	}

	s.logger.Info().Str("observationID", obs.ID).Str("userID", obs.UserID).Str("observerID", observerID).Msg("Observation recorded")
	resp := dto.FromObservation(obs, student.Nickname)
	return &resp, nil
}

func (s *observationServiceImpl) ListAll(ctx context.Context) ([]dto.ObservationResponse, error) {
	list, err := s.store.Observations().ListObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing observations: %w", err)
	}
	names := map[string]string{}
	out := make([]dto.ObservationResponse, 0, len(list))
	for i := range list {
		name, ok := names[list[i].UserID]
		if !ok {
			if p, err := s.store.Profiles().GetProfile(ctx, list[i].UserID); err == nil {
				name = p.Nickname
			}
			names[list[i].UserID] = name
		}
		out = append(out, dto.FromObservation(&list[i], name))
	}
	return out, nil
}

func (s *observationServiceImpl) ListForUser(ctx context.Context, userID string) ([]dto.ObservationResponse, error) {
	student, err := s.store.Profiles().GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.listFor(ctx, student)
}

func (s *observationServiceImpl) ListOwn(ctx context.Context, userID string) ([]dto.ObservationResponse, error) {
	student, err := s.store.Profiles().EnsureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return s.listFor(ctx, student)
}

func (s *observationServiceImpl) listFor(ctx context.Context, student *models.Profile) ([]dto.ObservationResponse, error) {
	list, err := s.store.Observations().ListObservationsByUser(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing observations: %w", err)
	}
	out := make([]dto.ObservationResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromObservation(&list[i], student.Nickname))
	}
	return out, nil
}
