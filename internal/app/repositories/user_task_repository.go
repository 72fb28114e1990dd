package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/dberrors"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

var userTaskColumns = []string{
	"id", "user_id", "task_id", "status", "submitted_at", "reviewed_at", "points_earned", "feedback",
}

// UserTaskRepository handles the user_tasks table.
type UserTaskRepository struct {
	DB db.DBTX
}

func NewUserTaskRepository(conn db.DBTX) *UserTaskRepository {
	return &UserTaskRepository{DB: conn}
}

func scanUserTask(row pgx.Row) (*models.UserTask, error) {
	var ut models.UserTask
	err := row.Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Status, &ut.SubmittedAt, &ut.ReviewedAt,
		&ut.PointsEarned, &ut.Feedback)
	if err != nil {
		return nil, err
	}
	return &ut, nil
}

func (r *UserTaskRepository) GetUserTask(ctx context.Context, userID string, taskID int64) (*models.UserTask, error) {
	sql, args, err := psql.Select(userTaskColumns...).From("user_tasks").
		Where(squirrel.Eq{"user_id": userID, "task_id": taskID}).ToSql()
	if err != nil {
		return nil, err
	}
	ut, err := scanUserTask(r.DB.QueryRow(ctx, sql, args...))
	if dberrors.IsNoRows(err) {
		return nil, fmt.Errorf("user task %s/%d: %w", userID, taskID, apperrors.ErrResourceNotFound)
	}
	return ut, err
}

func (r *UserTaskRepository) ListUserTasks(ctx context.Context, userID string) ([]models.UserTask, error) {
	sql, args, err := psql.Select(userTaskColumns...).From("user_tasks").
		Where(squirrel.Eq{"user_id": userID}).OrderBy("id DESC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error listing user tasks")
		return nil, err
	}
	return collect(rows, scanUserTask)
}

func (r *UserTaskRepository) CompletedTaskIDs(ctx context.Context, userID string) ([]int64, error) {
	sql, args, err := psql.Select("task_id").From("user_tasks").
		Where(squirrel.Eq{"user_id": userID, "status": works.ReviewCompleted}).
		OrderBy("task_id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// CreatePending inserts a pending row; an existing row wins.
func (r *UserTaskRepository) CreatePending(ctx context.Context, userID string, taskID int64, at time.Time) (bool, error) {
	sql, args, err := psql.Insert("user_tasks").
		Columns("user_id", "task_id", "status", "submitted_at").
		Values(userID, taskID, works.ReviewPending, at).
		Suffix("ON CONFLICT (user_id, task_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}
	return r.execAffected(ctx, sql, args, userID)
}

// CompleteIfPending is the compare-and-swap for approval: only a row that is
// still pending transitions.
func (r *UserTaskRepository) CompleteIfPending(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error) {
	sql, args, err := psql.Update("user_tasks").
		Set("status", works.ReviewCompleted).
		Set("reviewed_at", at).
		Set("points_earned", points).
		Set("feedback", feedback).
		Where(squirrel.Eq{"user_id": userID, "task_id": taskID, "status": works.ReviewPending}).
		ToSql()
	if err != nil {
		return false, err
	}
	return r.execAffected(ctx, sql, args, userID)
}

func (r *UserTaskRepository) InsertCompleted(ctx context.Context, userID string, taskID int64, points int, feedback string, at time.Time) (bool, error) {
	sql, args, err := psql.Insert("user_tasks").
		Columns("user_id", "task_id", "status", "submitted_at", "reviewed_at", "points_earned", "feedback").
		Values(userID, taskID, works.ReviewCompleted, at, at, points, feedback).
		Suffix("ON CONFLICT (user_id, task_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}
	return r.execAffected(ctx, sql, args, userID)
}

func (r *UserTaskRepository) CountByStatus(ctx context.Context, status works.ReviewStatus) (int64, error) {
	return count(ctx, r.DB, psql.Select("count(*)").From("user_tasks").Where(squirrel.Eq{"status": status}))
}

func (r *UserTaskRepository) SumPointsEarned(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, psql.Select("COALESCE(SUM(points_earned), 0)").From("user_tasks"))
}

func (r *UserTaskRepository) execAffected(ctx context.Context, sql string, args []interface{}, userID string) (bool, error) {
	tag, err := r.DB.Exec(ctx, sql, args...)
	if dberrors.IsForeignKeyError(err, "") {
		return false, fmt.Errorf("profile %s: %w", userID, apperrors.ErrProfileNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error writing user task")
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
