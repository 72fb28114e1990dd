package progression

import (
	"errors"
	"fmt"
)

// Level is one tier of the points ladder.
type Level struct {
	Level     int    `json:"level" yaml:"level"`
	Name      string `json:"name" yaml:"name"`
	MinPoints int    `json:"minPoints" yaml:"min_points"`
	Icon      string `json:"icon" yaml:"icon"`
}

// LevelInfo is the resolved position of a point total on the ladder.
type LevelInfo struct {
	Current      Level   `json:"current"`
	Next         *Level  `json:"next"`
	ProgressPct  float64 `json:"progressPct"`
	PointsToNext int     `json:"pointsToNext"`
}

var (
	ErrEmptyLevelTable       = errors.New("level table is empty")
	ErrLevelTableNotAnchored = errors.New("first level must start at 0 points")
	ErrLevelTableNotSorted   = errors.New("level thresholds must be strictly increasing")
)

// LevelTable is an immutable, validated ladder of levels ordered by MinPoints.
type LevelTable struct {
	levels []Level
}

// NewLevelTable validates and copies the given levels.
func NewLevelTable(levels []Level) (*LevelTable, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyLevelTable
	}
	if levels[0].MinPoints != 0 {
		return nil, ErrLevelTableNotAnchored
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].MinPoints <= levels[i-1].MinPoints {
			return nil, fmt.Errorf("%w: level %d (%d) after level %d (%d)", ErrLevelTableNotSorted,
				levels[i].Level, levels[i].MinPoints, levels[i-1].Level, levels[i-1].MinPoints)
		}
	}

	cp := make([]Level, len(levels))
	copy(cp, levels)
	return &LevelTable{levels: cp}, nil
}

// MustLevelTable is NewLevelTable for static tables known to be valid.
func MustLevelTable(levels []Level) *LevelTable {
	t, err := NewLevelTable(levels)
	if err != nil {
		panic(err)
	}
	return t
}

// Levels returns a copy of the ladder.
func (t *LevelTable) Levels() []Level {
	cp := make([]Level, len(t.levels))
	copy(cp, t.levels)
	return cp
}

// Resolve places points on the ladder. Points must be non-negative; negative
// totals are treated as zero.
func (t *LevelTable) Resolve(points int) LevelInfo {
	if points < 0 {
		points = 0
	}
	current := t.levels[0]
	for i := len(t.levels) - 1; i >= 0; i-- {
		if t.levels[i].MinPoints <= points {
			current = t.levels[i]
			break
		}
	}

	var next *Level
	for i := range t.levels {
		if t.levels[i].MinPoints > points {
			lvl := t.levels[i]
			next = &lvl
			break
		}
	}

	info := LevelInfo{Current: current, Next: next, ProgressPct: 100}
	if next != nil {
		span := float64(next.MinPoints - current.MinPoints)
		info.ProgressPct = clamp(100*float64(points-current.MinPoints)/span, 0, 100)
		info.PointsToNext = next.MinPoints - points
	}
	return info
}

// LevelFor is a shorthand for Resolve(points).Current.Level.
func (t *LevelTable) LevelFor(points int) int {
	return t.Resolve(points).Current.Level
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
