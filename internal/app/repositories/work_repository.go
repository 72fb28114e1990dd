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
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

var workColumns = []string{
	"id", "user_id", "task_id", "title", "description", "reflection", "link", "tags",
	"version", "parent_work_id", "review_status", "points_awarded", "feedback", "reviewed_at", "created_at",
}

// WorkRepository handles database operations for works and their versions.
type WorkRepository struct {
	DB db.DBTX
}

func NewWorkRepository(conn db.DBTX) *WorkRepository {
	return &WorkRepository{DB: conn}
}

func scanWork(row pgx.Row) (*models.Work, error) {
	var w models.Work
	err := row.Scan(&w.ID, &w.UserID, &w.TaskID, &w.Title, &w.Description, &w.Reflection, &w.Link, &w.Tags,
		&w.Version, &w.ParentWorkID, &w.ReviewStatus, &w.PointsAwarded, &w.Feedback, &w.ReviewedAt, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWork inserts a work and fills in the generated id and timestamps.
func (r *WorkRepository) CreateWork(ctx context.Context, w *models.Work) error {
	if w.Version < 1 {
		return fmt.Errorf("%w: version must be positive", apperrors.ErrValidationFailed)
	}
	if w.ParentWorkID != nil {
		parent, err := r.GetWork(ctx, *w.ParentWorkID)
		if err != nil {
			return err
		}
		if parent.ParentWorkID != nil {
			return fmt.Errorf("%w: parent %d is not a root work", apperrors.ErrValidationFailed, parent.ID)
		}
	}

	status := w.ReviewStatus
	if status == "" {
		status = works.ReviewPending
	}
	sql, args, err := psql.Insert("works").
		Columns("user_id", "task_id", "title", "description", "reflection", "link", "tags",
			"version", "parent_work_id", "review_status").
		Values(w.UserID, w.TaskID, w.Title, w.Description, w.Reflection, w.Link, helpers.NonNilStrings(w.Tags),
			w.Version, w.ParentWorkID, status).
		Suffix("RETURNING id, review_status, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.DB.QueryRow(ctx, sql, args...).Scan(&w.ID, &w.ReviewStatus, &w.CreatedAt)
	switch {
	case dberrors.IsDuplicateConstraintError(err, "works_chain_version_key"):
		return fmt.Errorf("%w: version %d already exists", apperrors.ErrConflict, w.Version)
	case dberrors.IsForeignKeyError(err, "works_user_id_fkey"):
		return fmt.Errorf("profile %s: %w", w.UserID, apperrors.ErrProfileNotFound)
	case dberrors.IsForeignKeyError(err, "works_parent_work_id_fkey"):
		return fmt.Errorf("parent work: %w", apperrors.ErrWorkNotFound)
	case err != nil:
		logger.Error().Err(err).Str("userID", w.UserID).Int64("taskID", w.TaskID).Msg("Error creating work")
		return err
	}
	w.Tags = helpers.NonNilStrings(w.Tags)
	return nil
}

func (r *WorkRepository) GetWork(ctx context.Context, id int64) (*models.Work, error) {
	sql, args, err := psql.Select(workColumns...).From("works").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	w, err := scanWork(r.DB.QueryRow(ctx, sql, args...))
	if dberrors.IsNoRows(err) {
		return nil, fmt.Errorf("work %d: %w", id, apperrors.ErrWorkNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Int64("workID", id).Msg("Error getting work")
		return nil, err
	}
	return w, nil
}

func (r *WorkRepository) ListWorksByUser(ctx context.Context, userID string) ([]models.Work, error) {
	return r.list(ctx, psql.Select(workColumns...).From("works").
		Where(squirrel.Eq{"user_id": userID}).OrderBy("created_at DESC", "id DESC"))
}

func (r *WorkRepository) ListChain(ctx context.Context, rootID int64) ([]models.Work, error) {
	return r.list(ctx, psql.Select(workColumns...).From("works").
		Where(squirrel.Or{squirrel.Eq{"id": rootID}, squirrel.Eq{"parent_work_id": rootID}}).
		OrderBy("version", "id"))
}

// RecordReview writes the review columns and drops any legacy metadata tags.
func (r *WorkRepository) RecordReview(ctx context.Context, workID int64, review works.Review, at time.Time) error {
	sql, args, err := psql.Select("tags").From("works").Where(squirrel.Eq{"id": workID}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return err
	}
	var tags []string
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&tags)
	if dberrors.IsNoRows(err) {
		return fmt.Errorf("work %d: %w", workID, apperrors.ErrWorkNotFound)
	}
	if err != nil {
		return err
	}

	sql, args, err = psql.Update("works").
		Set("review_status", review.Status).
		Set("points_awarded", review.Points).
		Set("feedback", review.Feedback).
		Set("reviewed_at", at).
		Set("tags", helpers.NonNilStrings(works.StripMetaTags(tags))).
		Where(squirrel.Eq{"id": workID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("workID", workID).Msg("Error recording review")
		return err
	}
	return nil
}

func (r *WorkRepository) ListAllWorks(ctx context.Context) ([]models.Work, error) {
	return r.list(ctx, psql.Select(workColumns...).From("works").OrderBy("created_at DESC", "id DESC"))
}

func (r *WorkRepository) CountWorks(ctx context.Context, status works.ReviewStatus) (int64, error) {
	q := psql.Select("count(*)").From("works")
	if status != "" {
		q = q.Where(squirrel.Eq{"review_status": status})
	}
	return count(ctx, r.DB, q)
}

func (r *WorkRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]models.Work, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing works")
		return nil, err
	}
	return collect(rows, scanWork)
}
