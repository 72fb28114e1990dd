package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/config"
)

type snapshot struct {
	Points int      `json:"points"`
	Tags   []string `json:"tags"`
}

func TestMemory_RoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", snapshot{Points: 5, Tags: []string{"a"}}, time.Minute))

	var got snapshot
	require.NoError(t, m.Get(ctx, "k", &got))
	assert.Equal(t, snapshot{Points: 5, Tags: []string{"a"}}, got)

	require.NoError(t, m.Delete(ctx, "k", "missing"))
	assert.ErrorIs(t, m.Get(ctx, "k", &got), ErrMiss)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	assert.ErrorIs(t, m.Get(ctx, "k", &v), ErrMiss)
	assert.Equal(t, 0, m.Len())
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestNew_DisabledIsNoop(t *testing.T) {
	c := New(context.Background(), config.RedisConfig{Enabled: false})
	assert.IsType(t, Noop{}, c)
}

func TestNew_UnreachableRedisDegrades(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := New(ctx, config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"})
	assert.IsType(t, Noop{}, c)
}

func TestProgressKey(t *testing.T) {
	assert.Equal(t, "progress:abc", ProgressKey("abc"))
}
