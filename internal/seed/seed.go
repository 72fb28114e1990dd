// Package seed loads reference data into the database.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/growthpath/internal/domain/progression"
)

// TaskWriter persists catalog tasks.
type TaskWriter interface {
	UpsertTasks(ctx context.Context, tasks []progression.Task) error
}

// Tasks mirrors the task catalog into the tasks table. Running it again
// refreshes titles, points and requirements in place.
func Tasks(ctx context.Context, w TaskWriter, catalog *progression.TaskCatalog, lgr zerolog.Logger) error {
	tasks := catalog.Tasks()
	lgr.Info().Int("count", len(tasks)).Msg("Seeding task catalog...")
	if err := w.UpsertTasks(ctx, tasks); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	lgr.Info().Msg("Task catalog seeded")
	return nil
}
