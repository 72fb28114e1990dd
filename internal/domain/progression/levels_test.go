package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLevels(t *testing.T) *LevelTable {
	t.Helper()
	table, err := NewLevelTable([]Level{
		{Level: 1, Name: "Lv1", MinPoints: 0},
		{Level: 2, Name: "Lv2", MinPoints: 300},
		{Level: 3, Name: "Lv3", MinPoints: 800},
	})
	require.NoError(t, err)
	return table
}

func TestNewLevelTable_Validation(t *testing.T) {
	_, err := NewLevelTable(nil)
	assert.ErrorIs(t, err, ErrEmptyLevelTable)

	_, err = NewLevelTable([]Level{{Level: 1, MinPoints: 10}})
	assert.ErrorIs(t, err, ErrLevelTableNotAnchored)

	_, err = NewLevelTable([]Level{{Level: 1, MinPoints: 0}, {Level: 2, MinPoints: 0}})
	assert.ErrorIs(t, err, ErrLevelTableNotSorted)

	_, err = NewLevelTable([]Level{{Level: 1, MinPoints: 0}, {Level: 2, MinPoints: 500}, {Level: 3, MinPoints: 400}})
	assert.ErrorIs(t, err, ErrLevelTableNotSorted)
}

func TestResolve_JustBelowThreshold(t *testing.T) {
	info := threeLevels(t).Resolve(299)

	assert.Equal(t, "Lv1", info.Current.Name)
	require.NotNil(t, info.Next)
	assert.Equal(t, "Lv2", info.Next.Name)
	assert.Equal(t, 1, info.PointsToNext)
}

func TestResolve_ExactlyOnThreshold(t *testing.T) {
	info := threeLevels(t).Resolve(300)

	assert.Equal(t, "Lv2", info.Current.Name)
	require.NotNil(t, info.Next)
	assert.Equal(t, "Lv3", info.Next.Name)
	assert.Equal(t, 500, info.PointsToNext)
	assert.Equal(t, 0.0, info.ProgressPct)
}

func TestResolve_TopLevel(t *testing.T) {
	info := threeLevels(t).Resolve(10_000)

	assert.Equal(t, 3, info.Current.Level)
	assert.Nil(t, info.Next)
	assert.Equal(t, 100.0, info.ProgressPct)
	assert.Equal(t, 0, info.PointsToNext)
}

func TestResolve_Midway(t *testing.T) {
	info := threeLevels(t).Resolve(550)
	assert.InDelta(t, 50.0, info.ProgressPct, 0.0001)
}

func TestResolve_NegativeDoesNotPanic(t *testing.T) {
	info := threeLevels(t).Resolve(-20)
	assert.Equal(t, 1, info.Current.Level)
	assert.Equal(t, 300, info.PointsToNext)
}

func TestResolve_Properties(t *testing.T) {
	table := MustLevelTable(DefaultLevels())
	for p := 0; p <= 15000; p += 7 {
		info := table.Resolve(p)
		require.LessOrEqual(t, info.Current.MinPoints, p, "points %d", p)
		if info.Next != nil {
			require.Less(t, p, info.Next.MinPoints, "points %d", p)
			require.Equal(t, info.Next.MinPoints-p, info.PointsToNext)
		}
		require.GreaterOrEqual(t, info.ProgressPct, 0.0)
		require.LessOrEqual(t, info.ProgressPct, 100.0)
	}
}

func TestLevels_ReturnsCopy(t *testing.T) {
	table := threeLevels(t)
	levels := table.Levels()
	levels[0].Name = "mutated"
	assert.Equal(t, "Lv1", table.Resolve(0).Current.Name)
}
