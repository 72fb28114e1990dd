package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

type profileStore struct{ s *Store }

func (p profileStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var out models.Profile
	err := p.s.view(func(d *data) error {
		prof, ok := d.profiles[id]
		if !ok {
			return fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
		}
		out = prof
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p profileStore) EnsureProfile(ctx context.Context, id string) (*models.Profile, error) {
	var out models.Profile
	err := p.s.update(func(d *data) error {
		prof, ok := d.profiles[id]
		if !ok {
			now := p.s.now()
			prof = models.Profile{ID: id, IsActive: true, CreatedAt: now, UpdatedAt: now}
			d.profiles[id] = prof
		}
		out = prof
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p profileStore) ApplyOnboarding(ctx context.Context, id string, upd onboarding.ProfileUpdate) error {
	return p.s.update(func(d *data) error {
		prof, ok := d.profiles[id]
		if !ok {
			return fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
		}
		if upd.Nickname != "" {
			prof.Nickname = upd.Nickname
		}
		prof.Age = upd.Age
		prof.Grade = upd.Grade
		prof.Gender = upd.Gender
		prof.OnboardingCompleted = upd.OnboardingCompleted
		prof.UpdatedAt = p.s.now()
		d.profiles[id] = prof
		return nil
	})
}

func (p profileStore) AddPoints(ctx context.Context, id string, delta int) (int, error) {
	var total int
	err := p.s.update(func(d *data) error {
		prof, ok := d.profiles[id]
		if !ok {
			return fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
		}
		if prof.TotalPoints+delta < 0 {
			return fmt.Errorf("%w: total points cannot go negative", apperrors.ErrValidationFailed)
		}
		prof.TotalPoints += delta
		prof.UpdatedAt = p.s.now()
		d.profiles[id] = prof
		total = prof.TotalPoints
		return nil
	})
	return total, err
}

func (p profileStore) ListProfiles(ctx context.Context, offset uint64, limit int) ([]models.Profile, int64, error) {
	var (
		page  []models.Profile
		total int64
	)
	err := p.s.view(func(d *data) error {
		all := make([]models.Profile, 0, len(d.profiles))
		for _, prof := range d.profiles {
			all = append(all, prof)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].ID < all[j].ID
		})
		total = int64(len(all))
		start := int(offset)
		if start > len(all) {
			start = len(all)
		}
		end := start + limit
		if end > len(all) {
			end = len(all)
		}
		page = all[start:end]
		return nil
	})
	return page, total, err
}

func (p profileStore) CountProfiles(ctx context.Context, onboardedOnly bool) (int64, error) {
	var n int64
	err := p.s.view(func(d *data) error {
		for _, prof := range d.profiles {
			if !onboardedOnly || prof.OnboardingCompleted {
				n++
			}
		}
		return nil
	})
	return n, err
}
