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

type UnlockRepository struct {
	DB db.DBTX
}

func NewUnlockRepository(conn db.DBTX) *UnlockRepository {
	return &UnlockRepository{DB: conn}
}

func (r *UnlockRepository) ListUnlocks(ctx context.Context, userID string) ([]models.MentorUnlock, error) {
	q := psql.Select("user_id", "mentor_id", "unlocked_at").From("council_unlocks").
		Where(squirrel.Eq{"user_id": userID}).OrderBy("unlocked_at", "mentor_id")
	return query(ctx, r.DB, q, func(row pgx.Row) (*models.MentorUnlock, error) {
		var u models.MentorUnlock
		err := row.Scan(&u.UserID, &u.MentorID, &u.UnlockedAt)
		return &u, err
	})
}

func (r *UnlockRepository) AddUnlock(ctx context.Context, u models.MentorUnlock) (bool, error) {
	sql, args, err := psql.Insert("council_unlocks").
		Columns("user_id", "mentor_id", "unlocked_at").
		Values(u.UserID, u.MentorID, u.UnlockedAt).
		Suffix("ON CONFLICT (user_id, mentor_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if dberrors.IsForeignKeyError(err, "") {
		return false, fmt.Errorf("profile %s: %w", u.UserID, apperrors.ErrProfileNotFound)
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", u.UserID).Str("mentorID", u.MentorID).Msg("Error recording unlock")
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UnlockRepository) CountUnlocks(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, psql.Select("count(*)").From("council_unlocks"))
}
