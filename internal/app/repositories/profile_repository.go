package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/db"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/dberrors"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

var profileColumns = []string{
	"id", "nickname", "avatar_url", "age", "grade", "gender", "total_points",
	"onboarding_completed", "is_active", "created_at", "updated_at",
}

// ProfileRepository handles database operations for profiles.
type ProfileRepository struct {
	DB db.DBTX
}

func NewProfileRepository(conn db.DBTX) *ProfileRepository {
	return &ProfileRepository{DB: conn}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Nickname, &p.AvatarURL, &p.Age, &p.Grade, &p.Gender, &p.TotalPoints,
		&p.OnboardingCompleted, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile retrieves a profile by user id.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	sql, args, err := psql.Select(profileColumns...).From("profiles").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProfile(r.DB.QueryRow(ctx, sql, args...))
	if dberrors.IsNoRows(err) {
		return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error getting profile")
		return nil, err
	}
	return p, nil
}

// EnsureProfile creates an empty profile on first use.
func (r *ProfileRepository) EnsureProfile(ctx context.Context, id string) (*models.Profile, error) {
	sql, args, err := psql.Insert("profiles").Columns("id").Values(id).
		Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error ensuring profile")
		return nil, err
	}
	return r.GetProfile(ctx, id)
}

// ApplyOnboarding stores the questionnaire demographics. An empty nickname
// keeps the current one.
func (r *ProfileRepository) ApplyOnboarding(ctx context.Context, id string, upd onboarding.ProfileUpdate) error {
	sql, args, err := psql.Update("profiles").
		Set("nickname", squirrel.Expr("COALESCE(NULLIF(?, ''), nickname)", upd.Nickname)).
		Set("age", upd.Age).
		Set("grade", upd.Grade).
		Set("gender", upd.Gender).
		Set("onboarding_completed", upd.OnboardingCompleted).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error applying onboarding to profile")
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
	}
	return nil
}

// AddPoints increments total_points in place and returns the new total.
func (r *ProfileRepository) AddPoints(ctx context.Context, id string, delta int) (int, error) {
	sql, args, err := psql.Update("profiles").
		Set("total_points", squirrel.Expr("total_points + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING total_points").
		ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&total)
	switch {
	case dberrors.IsNoRows(err):
		return 0, fmt.Errorf("profile %s: %w", id, apperrors.ErrProfileNotFound)
	case dberrors.IsCheckViolation(err):
		return 0, fmt.Errorf("%w: total points cannot go negative", apperrors.ErrValidationFailed)
	case err != nil:
		logger.Error().Err(err).Str("userID", id).Int("delta", delta).Msg("Error adding points")
		return 0, err
	}
	return total, nil
}

// ListProfiles returns one page ordered newest first, plus the total count.
func (r *ProfileRepository) ListProfiles(ctx context.Context, offset uint64, limit int) ([]models.Profile, int64, error) {
	total, err := r.CountProfiles(ctx, false)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []models.Profile{}, 0, nil
	}

	sql, args, err := psql.Select(profileColumns...).From("profiles").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing profiles")
		return nil, 0, err
	}
	list, err := collect(rows, scanProfile)
	return list, total, err
}

func (r *ProfileRepository) CountProfiles(ctx context.Context, onboardedOnly bool) (int64, error) {
	q := psql.Select("count(*)").From("profiles")
	if onboardedOnly {
		q = q.Where(squirrel.Eq{"onboarding_completed": true})
	}
	return count(ctx, r.DB, q)
}
