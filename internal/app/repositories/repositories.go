package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/growthpath/internal/app/store"
	"github.com/yigit/growthpath/internal/db"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories is the postgres implementation of store.Store.
type Repositories struct {
	pg   *db.PostgresDB
	conn db.DBTX
}

var _ store.Store = (*Repositories)(nil)

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{pg: pg, conn: pg.Pool}
}

func (r *Repositories) Profiles() store.ProfileStore         { return NewProfileRepository(r.conn) }
func (r *Repositories) UserTasks() store.UserTaskStore       { return NewUserTaskRepository(r.conn) }
func (r *Repositories) Works() store.WorkStore               { return NewWorkRepository(r.conn) }
func (r *Repositories) Assessments() store.AssessmentStore   { return NewAssessmentRepository(r.conn) }
func (r *Repositories) Observations() store.ObservationStore { return NewObservationRepository(r.conn) }
func (r *Repositories) Unlocks() store.UnlockStore           { return NewUnlockRepository(r.conn) }

// Tasks is only used by seeding; the service layer reads the in-process catalog.
func (r *Repositories) Tasks() *TaskRepository { return NewTaskRepository(r.conn) }

// WithTransaction runs fn inside one database transaction. Calls made on a
// transactional Repositories join the running transaction.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	if r.pg == nil {
		return fn(r)
	}
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(&Repositories{conn: tx})
	})
}

func (r *Repositories) Ping(ctx context.Context) error {
	if r.pg == nil {
		return nil
	}
	return r.pg.Ping(ctx)
}

// collect scans all rows with scan and closes them.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func count(ctx context.Context, conn db.DBTX, q squirrel.SelectBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = conn.QueryRow(ctx, sql, args...).Scan(&n)
	return n, err
}

func query[T any](ctx context.Context, conn db.DBTX, q squirrel.SelectBuilder, scan func(pgx.Row) (*T, error)) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}
