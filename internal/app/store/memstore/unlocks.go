package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

type unlockStore struct{ s *Store }

func (u unlockStore) ListUnlocks(ctx context.Context, userID string) ([]models.MentorUnlock, error) {
	var out []models.MentorUnlock
	err := u.s.view(func(d *data) error {
		for k, row := range d.unlocks {
			if k.userID == userID {
				out = append(out, row)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UnlockedAt.Equal(out[j].UnlockedAt) {
			return out[i].UnlockedAt.Before(out[j].UnlockedAt)
		}
		return out[i].MentorID < out[j].MentorID
	})
	return out, err
}

func (u unlockStore) AddUnlock(ctx context.Context, row models.MentorUnlock) (bool, error) {
	inserted := false
	err := u.s.update(func(d *data) error {
		key := unlockKey{row.UserID, row.MentorID}
		if _, ok := d.unlocks[key]; ok {
			return nil
		}
		if _, ok := d.profiles[row.UserID]; !ok {
			return fmt.Errorf("profile %s: %w", row.UserID, apperrors.ErrProfileNotFound)
		}
		if row.UnlockedAt.IsZero() {
			row.UnlockedAt = u.s.now()
		}
		d.unlocks[key] = row
		inserted = true
		return nil
	})
	return inserted, err
}

func (u unlockStore) CountUnlocks(ctx context.Context) (int64, error) {
	var n int64
	err := u.s.view(func(d *data) error {
		n = int64(len(d.unlocks))
		return nil
	})
	return n, err
}
