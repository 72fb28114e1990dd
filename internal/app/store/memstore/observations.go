package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

type observationStore struct{ s *Store }

func (o observationStore) CreateObservation(ctx context.Context, obs *models.Observation) error {
	return o.s.update(func(d *data) error {
		if _, ok := d.profiles[obs.UserID]; !ok {
			return fmt.Errorf("profile %s: %w", obs.UserID, apperrors.ErrProfileNotFound)
		}
		stored := *obs
		if stored.ID == "" {
			stored.ID = uuid.NewString()
		}
		stored.SuggestedTags = append([]string{}, obs.SuggestedTags...)
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = o.s.now()
		}
		d.observations = append(d.observations, stored)
		*obs = stored
		return nil
	})
}

func (o observationStore) ListObservations(ctx context.Context) ([]models.Observation, error) {
	return o.filter(func(models.Observation) bool { return true })
}

func (o observationStore) ListObservationsByUser(ctx context.Context, userID string) ([]models.Observation, error) {
	return o.filter(func(obs models.Observation) bool { return obs.UserID == userID })
}

func (o observationStore) CountObservations(ctx context.Context) (int64, error) {
	list, err := o.filter(func(models.Observation) bool { return true })
	return int64(len(list)), err
}

// filter returns matches newest first. Insertion order breaks ties.
func (o observationStore) filter(keep func(models.Observation) bool) ([]models.Observation, error) {
	var out []models.Observation
	err := o.s.view(func(d *data) error {
		for i := len(d.observations) - 1; i >= 0; i-- {
			if keep(d.observations[i]) {
				out = append(out, d.observations[i])
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}
