package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/domain/progression"
)

type recordingWriter struct {
	got []progression.Task
	err error
}

func (w *recordingWriter) UpsertTasks(_ context.Context, tasks []progression.Task) error {
	w.got = append(w.got, tasks...)
	return w.err
}

func TestTasks_WritesWholeCatalog(t *testing.T) {
	catalog := progression.MustTaskCatalog(progression.DefaultTasks())
	w := &recordingWriter{}

	require.NoError(t, Tasks(context.Background(), w, catalog, zerolog.Nop()))
	assert.Equal(t, catalog.Tasks(), w.got)
}

func TestTasks_WrapsWriterError(t *testing.T) {
	boom := errors.New("boom")
	w := &recordingWriter{err: boom}

	err := Tasks(context.Background(), w, progression.MustTaskCatalog(progression.DefaultTasks()), zerolog.Nop())
	assert.ErrorIs(t, err, boom)
}
