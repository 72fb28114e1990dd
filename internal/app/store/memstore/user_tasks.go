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

type userTaskStore struct{ s *Store }

func (u userTaskStore) GetUserTask(ctx context.Context, userID string, taskID int64) (*models.UserTask, error) {
	var out models.UserTask
	err := u.s.view(func(d *data) error {
		ut, ok := d.userTasks[userTaskKey{userID, taskID}]
		if !ok {
			return fmt.Errorf("user task %s/%d: %w", userID, taskID, apperrors.ErrResourceNotFound)
		}
		out = ut
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (u userTaskStore) ListUserTasks(ctx context.Context, userID string) ([]models.UserTask, error) {
	var out []models.UserTask
	err := u.s.view(func(d *data) error {
		for k, ut := range d.userTasks {
			if k.userID == userID {
				out = append(out, ut)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func (u userTaskStore) CompletedTaskIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := u.s.view(func(d *data) error {
		for k, ut := range d.userTasks {
			if k.userID == userID && ut.Status == works.ReviewCompleted {
				ids = append(ids, k.taskID)
			}
		}
		return nil
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, err
}

func (u userTaskStore) CreatePending(ctx context.Context, userID string, taskID int64, at time.Time) (bool, error) {
	created := false
	err := u.s.update(func(d *data) error {
		key := userTaskKey{userID, taskID}
		if _, ok := d.userTasks[key]; ok {
			return nil
		}
		if _, ok := d.profiles[userID]; !ok {
			return fmt.Errorf("profile %s: %w", userID, apperrors.ErrProfileNotFound)
		}
		submitted := at
		d.userTasks[key] = models.UserTask{
			ID:          d.nextID("user_tasks"),
			UserID:      userID,
			TaskID:      taskID,
			Status:      works.ReviewPending,
			SubmittedAt: &submitted,
		}
		created = true
		return nil
	})
	return created, err
}

func (u userTaskStore) CompleteIfPending(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error) {
	done := false
	err := u.s.update(func(d *data) error {
		key := userTaskKey{userID, taskID}
		ut, ok := d.userTasks[key]
		if !ok || ut.Status != works.ReviewPending {
			return nil
		}
		reviewed := at
		ut.Status = works.ReviewCompleted
		ut.ReviewedAt = &reviewed
		ut.PointsEarned = points
		ut.Feedback = feedback
		d.userTasks[key] = ut
		done = true
		return nil
	})
	return done, err
}

func (u userTaskStore) InsertCompleted(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error) {
	created := false
	err := u.s.update(func(d *data) error {
		key := userTaskKey{userID, taskID}
		if _, ok := d.userTasks[key]; ok {
			return nil
		}
		if _, ok := d.profiles[userID]; !ok {
			return fmt.Errorf("profile %s: %w", userID, apperrors.ErrProfileNotFound)
		}
		submitted, reviewed := at, at
		d.userTasks[key] = models.UserTask{
			ID:           d.nextID("user_tasks"),
			UserID:       userID,
			TaskID:       taskID,
			Status:       works.ReviewCompleted,
			SubmittedAt:  &submitted,
			ReviewedAt:   &reviewed,
			PointsEarned: points,
			Feedback:     feedback,
		}
		created = true
		return nil
	})
	return created, err
}

func (u userTaskStore) CountByStatus(ctx context.Context, status works.ReviewStatus) (int64, error) {
	var n int64
	err := u.s.view(func(d *data) error {
		for _, ut := range d.userTasks {
			if ut.Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (u userTaskStore) SumPointsEarned(ctx context.Context) (int64, error) {
	var sum int64
	err := u.s.view(func(d *data) error {
		for _, ut := range d.userTasks {
			sum += int64(ut.PointsEarned)
		}
		return nil
	})
	return sum, err
}
