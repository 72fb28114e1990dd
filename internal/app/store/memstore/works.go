package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
)

type workStore struct{ s *Store }

func (w workStore) CreateWork(ctx context.Context, work *models.Work) error {
	return w.s.update(func(d *data) error {
		if _, ok := d.profiles[work.UserID]; !ok {
			return fmt.Errorf("profile %s: %w", work.UserID, apperrors.ErrProfileNotFound)
		}
		if work.Version < 1 {
			return fmt.Errorf("%w: version must be positive", apperrors.ErrValidationFailed)
		}
		if work.ParentWorkID != nil {
			parent, ok := d.works[*work.ParentWorkID]
			if !ok {
				return fmt.Errorf("parent work %d: %w", *work.ParentWorkID, apperrors.ErrWorkNotFound)
			}
			if parent.ParentWorkID != nil {
				return fmt.Errorf("%w: parent %d is not a root work", apperrors.ErrValidationFailed, parent.ID)
			}
			for _, other := range d.works {
				if other.RootID() == parent.ID && other.Version == work.Version {
					return fmt.Errorf("%w: version %d of work %d already exists", apperrors.ErrConflict, work.Version, parent.ID)
				}
			}
		}

		stored := *work
		stored.ID = d.nextID("works")
		stored.Tags = append([]string{}, work.Tags...)
		if stored.ReviewStatus == "" {
			stored.ReviewStatus = works.ReviewPending
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = w.s.now()
		}
		d.works[stored.ID] = stored
		*work = stored
		return nil
	})
}

func (w workStore) GetWork(ctx context.Context, id int64) (*models.Work, error) {
	var out models.Work
	err := w.s.view(func(d *data) error {
		work, ok := d.works[id]
		if !ok {
			return fmt.Errorf("work %d: %w", id, apperrors.ErrWorkNotFound)
		}
		out = work
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (w workStore) ListWorksByUser(ctx context.Context, userID string) ([]models.Work, error) {
	return w.filter(func(work models.Work) bool { return work.UserID == userID }, newestFirst)
}

func (w workStore) ListChain(ctx context.Context, rootID int64) ([]models.Work, error) {
	return w.filter(func(work models.Work) bool { return work.RootID() == rootID }, byVersion)
}

func (w workStore) RecordReview(ctx context.Context, workID int64, review works.Review, at time.Time) error {
	return w.s.update(func(d *data) error {
		work, ok := d.works[workID]
		if !ok {
			return fmt.Errorf("work %d: %w", workID, apperrors.ErrWorkNotFound)
		}
		reviewed := at
		work.ReviewStatus = review.Status
		work.PointsAwarded = review.Points
		work.Feedback = review.Feedback
		work.ReviewedAt = &reviewed
		work.Tags = works.StripMetaTags(work.Tags)
		d.works[workID] = work
		return nil
	})
}

func (w workStore) ListAllWorks(ctx context.Context) ([]models.Work, error) {
	return w.filter(func(models.Work) bool { return true }, newestFirst)
}

func (w workStore) CountWorks(ctx context.Context, status works.ReviewStatus) (int64, error) {
	list, err := w.filter(func(work models.Work) bool {
		return status == "" || work.ReviewStatus == status
	}, nil)
	return int64(len(list)), err
}

func (w workStore) filter(keep func(models.Work) bool, less func(a, b models.Work) bool) ([]models.Work, error) {
	var out []models.Work
	err := w.s.view(func(d *data) error {
		for _, work := range d.works {
			if keep(work) {
				out = append(out, work)
			}
		}
		return nil
	})
	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, err
}

func newestFirst(a, b models.Work) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func byVersion(a, b models.Work) bool {
	return a.Version < b.Version
}
