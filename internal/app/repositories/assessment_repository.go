package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/dberrors"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

// AssessmentRepository stores onboarding submissions and the records
// derived from them.
type AssessmentRepository struct {
	DB db.DBTX
}

func NewAssessmentRepository(conn db.DBTX) *AssessmentRepository {
	return &AssessmentRepository{DB: conn}
}

func (r *AssessmentRepository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	if a.Status == "" {
		a.Status = models.AssessmentStatusCompleted
	}
	sql, args, err := psql.Insert("assessments").
		Columns("user_id", "type", "source", "status", "data").
		Values(a.UserID, a.Type, a.Source, a.Status, a.Data).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt)
	if dberrors.IsForeignKeyError(err, "") {
		return fmt.Errorf("profile %s: %w", a.UserID, apperrors.ErrProfileNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", a.UserID).Msg("Error creating assessment")
	}
	return err
}

func (r *AssessmentRepository) AddInterests(ctx context.Context, rows []models.UserInterest) error {
	if len(rows) == 0 {
		return nil
	}
	q := psql.Insert("user_interests").
		Columns("user_id", "assessment_id", "category", "specific_interest", "intensity", "source")
	for _, row := range rows {
		q = q.Values(row.UserID, row.AssessmentID, row.Category, row.Specific, row.Intensity, row.Source)
	}
	return r.exec(ctx, q, "interests")
}

func (r *AssessmentRepository) AddStrengths(ctx context.Context, rows []models.UserStrength) error {
	if len(rows) == 0 {
		return nil
	}
	q := psql.Insert("user_strengths").Columns("user_id", "dimension", "tag_name", "confidence", "source")
	for _, row := range rows {
		q = q.Values(row.UserID, row.Dimension, row.TagName, row.Confidence, row.Source)
	}
	return r.exec(ctx, q, "strengths")
}

func (r *AssessmentRepository) AddTraits(ctx context.Context, rows []models.UserTrait) error {
	if len(rows) == 0 {
		return nil
	}
	q := psql.Insert("user_traits").Columns("user_id", "assessment_id", "trait_name", "score", "source")
	for _, row := range rows {
		q = q.Values(row.UserID, row.AssessmentID, row.TraitName, row.Score, row.Source)
	}
	return r.exec(ctx, q, "traits")
}

func (r *AssessmentRepository) AddGoals(ctx context.Context, rows []models.UserGoal) error {
	if len(rows) == 0 {
		return nil
	}
	q := psql.Insert("user_goals").Columns("user_id", "goal_type", "content", "status")
	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = models.GoalStatusActive
		}
		q = q.Values(row.UserID, row.GoalType, row.Content, status)
	}
	return r.exec(ctx, q, "goals")
}

func (r *AssessmentRepository) ListAssessments(ctx context.Context, userID string) ([]models.Assessment, error) {
	q := psql.Select("id", "user_id", "type", "source", "status", "data", "created_at").
		From("assessments").Where(squirrel.Eq{"user_id": userID}).OrderBy("created_at DESC", "id DESC")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.Assessment, error) {
		var a models.Assessment
		err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Source, &a.Status, &a.Data, &a.CreatedAt)
		return &a, err
	})
}

func (r *AssessmentRepository) ListInterests(ctx context.Context, userID string) ([]models.UserInterest, error) {
	q := psql.Select("id", "user_id", "assessment_id", "category", "specific_interest", "intensity", "source").
		From("user_interests").Where(squirrel.Eq{"user_id": userID}).OrderBy("id")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.UserInterest, error) {
		var i models.UserInterest
		err := row.Scan(&i.ID, &i.UserID, &i.AssessmentID, &i.Category, &i.Specific, &i.Intensity, &i.Source)
		return &i, err
	})
}

func (r *AssessmentRepository) ListStrengths(ctx context.Context, userID string) ([]models.UserStrength, error) {
	q := psql.Select("id", "user_id", "dimension", "tag_name", "confidence", "source").
		From("user_strengths").Where(squirrel.Eq{"user_id": userID}).OrderBy("id")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.UserStrength, error) {
		var s models.UserStrength
		err := row.Scan(&s.ID, &s.UserID, &s.Dimension, &s.TagName, &s.Confidence, &s.Source)
		return &s, err
	})
}

func (r *AssessmentRepository) ListTraits(ctx context.Context, userID string) ([]models.UserTrait, error) {
	q := psql.Select("id", "user_id", "assessment_id", "trait_name", "score", "source").
		From("user_traits").Where(squirrel.Eq{"user_id": userID}).OrderBy("id")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.UserTrait, error) {
		var t models.UserTrait
		err := row.Scan(&t.ID, &t.UserID, &t.AssessmentID, &t.TraitName, &t.Score, &t.Source)
		return &t, err
	})
}

func (r *AssessmentRepository) ListGoals(ctx context.Context, userID string) ([]models.UserGoal, error) {
	q := psql.Select("id", "user_id", "goal_type", "content", "status", "created_at").
		From("user_goals").Where(squirrel.Eq{"user_id": userID}).OrderBy("id")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.UserGoal, error) {
		var g models.UserGoal
		err := row.Scan(&g.ID, &g.UserID, &g.GoalType, &g.Content, &g.Status, &g.CreatedAt)
		return &g, err
	})
}

func (r *AssessmentRepository) CountAssessments(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, psql.Select("count(*)").From("assessments"))
}

func (r *AssessmentRepository) exec(ctx context.Context, q squirrel.InsertBuilder, what string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			return fmt.Errorf("insert %s: %w", what, apperrors.ErrProfileNotFound)
		}
		logger.Error().Err(err).Str("table", what).Msg("Error inserting onboarding records")
		return err
	}
	return nil
}
