package repositories

import (
	"context"

	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/domain/progression"
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

// TaskRepository mirrors the task catalog into the tasks table so that
// user_tasks and works can reference it.
type TaskRepository struct {
	DB db.DBTX
}

func NewTaskRepository(conn db.DBTX) *TaskRepository {
	return &TaskRepository{DB: conn}
}

// UpsertTasks inserts or refreshes every catalog entry.
func (r *TaskRepository) UpsertTasks(ctx context.Context, tasks []progression.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	q := psql.Insert("tasks").
		Columns("id", "title", "description", "icon", "type", "difficulty", "points", "requirements", "is_active")
	for _, t := range tasks {
		q = q.Values(t.ID, t.Title, t.Description, t.Icon, t.Type, t.Difficulty, t.Points, helpers.NonNilStrings(t.Requirements), true)
	}
	sql, args, err := q.Suffix(`ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		icon = EXCLUDED.icon,
		type = EXCLUDED.type,
		difficulty = EXCLUDED.difficulty,
		points = EXCLUDED.points,
		requirements = EXCLUDED.requirements,
		is_active = EXCLUDED.is_active`).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int("count", len(tasks)).Msg("Error upserting tasks")
		return err
	}
	return nil
}
