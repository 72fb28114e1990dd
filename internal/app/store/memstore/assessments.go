package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

type assessmentStore struct{ s *Store }

func (a assessmentStore) CreateAssessment(ctx context.Context, as *models.Assessment) error {
	return a.s.update(func(d *data) error {
		if _, ok := d.profiles[as.UserID]; !ok {
			return fmt.Errorf("profile %s: %w", as.UserID, apperrors.ErrProfileNotFound)
		}
		stored := *as
		stored.ID = d.nextID("assessments")
		stored.Data = append([]byte(nil), as.Data...)
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = a.s.now()
		}
		d.assessments = append(d.assessments, stored)
		*as = stored
		return nil
	})
}

func (a assessmentStore) AddInterests(ctx context.Context, rows []models.UserInterest) error {
	return a.s.update(func(d *data) error {
		for _, r := range rows {
			r.ID = d.nextID("user_interests")
			d.interests = append(d.interests, r)
		}
		return nil
	})
}

func (a assessmentStore) AddStrengths(ctx context.Context, rows []models.UserStrength) error {
	return a.s.update(func(d *data) error {
		for _, r := range rows {
			r.ID = d.nextID("user_strengths")
			d.strengths = append(d.strengths, r)
		}
		return nil
	})
}

func (a assessmentStore) AddTraits(ctx context.Context, rows []models.UserTrait) error {
	return a.s.update(func(d *data) error {
		for _, r := range rows {
			r.ID = d.nextID("user_traits")
			d.traits = append(d.traits, r)
		}
		return nil
	})
}

func (a assessmentStore) AddGoals(ctx context.Context, rows []models.UserGoal) error {
	return a.s.update(func(d *data) error {
		for _, r := range rows {
			r.ID = d.nextID("user_goals")
			if r.CreatedAt.IsZero() {
				r.CreatedAt = a.s.now()
			}
			d.goals = append(d.goals, r)
		}
		return nil
	})
}

func (a assessmentStore) ListAssessments(ctx context.Context, userID string) ([]models.Assessment, error) {
	var out []models.Assessment
	err := a.s.view(func(d *data) error {
		for _, r := range d.assessments {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func (a assessmentStore) ListInterests(ctx context.Context, userID string) ([]models.UserInterest, error) {
	var out []models.UserInterest
	err := a.s.view(func(d *data) error {
		for _, r := range d.interests {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (a assessmentStore) ListStrengths(ctx context.Context, userID string) ([]models.UserStrength, error) {
	var out []models.UserStrength
	err := a.s.view(func(d *data) error {
		for _, r := range d.strengths {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (a assessmentStore) ListTraits(ctx context.Context, userID string) ([]models.UserTrait, error) {
	var out []models.UserTrait
	err := a.s.view(func(d *data) error {
		for _, r := range d.traits {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (a assessmentStore) ListGoals(ctx context.Context, userID string) ([]models.UserGoal, error) {
	var out []models.UserGoal
	err := a.s.view(func(d *data) error {
		for _, r := range d.goals {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (a assessmentStore) CountAssessments(ctx context.Context) (int64, error) {
	var n int64
	err := a.s.view(func(d *data) error {
		n = int64(len(d.assessments))
		return nil
	})
	return n, err
}
