package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/dberrors"
	"github.com/yigit/growthpath/internal/pkg/helpers"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

var observationColumns = []string{
	"id", "user_id", "observer_id", "title", "category", "observation", "suggested_tags", "created_at",
}

type ObservationRepository struct {
	DB db.DBTX
}

func NewObservationRepository(conn db.DBTX) *ObservationRepository {
	return &ObservationRepository{DB: conn}
}

func scanObservation(row pgx.Row) (*models.Observation, error) {
	var o models.Observation
	err := row.Scan(&o.ID, &o.UserID, &o.ObserverID, &o.Title, &o.Category, &o.Observation, &o.SuggestedTags, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObservationRepository) CreateObservation(ctx context.Context, o *models.Observation) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.SuggestedTags = helpers.NonNilStrings(o.SuggestedTags)
	sql, args, err := psql.Insert("observations").
		Columns("id", "user_id", "observer_id", "title", "category", "observation", "suggested_tags").
		Values(o.ID, o.UserID, o.ObserverID, o.Title, o.Category, o.Observation, o.SuggestedTags).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return err
	}
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&o.CreatedAt)
	if dberrors.IsForeignKeyError(err, "") {
		return fmt.Errorf("profile %s: %w", o.UserID, apperrors.ErrProfileNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", o.UserID).Msg("Error creating observation")
	}
	return err
}

func (r *ObservationRepository) ListObservations(ctx context.Context) ([]models.Observation, error) {
	return query(ctx, r.DB, psql.Select(observationColumns...).From("observations").
		OrderBy("created_at DESC", "id"), scanObservation)
}

func (r *ObservationRepository) ListObservationsByUser(ctx context.Context, userID string) ([]models.Observation, error) {
	return query(ctx, r.DB, psql.Select(observationColumns...).From("observations").
		Where(squirrel.Eq{"user_id": userID}).OrderBy("created_at DESC", "id"), scanObservation)
}

func (r *ObservationRepository) CountObservations(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, psql.Select("count(*)").From("observations"))
}
