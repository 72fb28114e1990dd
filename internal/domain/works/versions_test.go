package works

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWork struct {
	id      int64
	parent  *int64
	version int
}

func (w fakeWork) WorkID() int64      { return w.id }
func (w fakeWork) ParentID() *int64   { return w.parent }
func (w fakeWork) VersionNumber() int { return w.version }

func ptr(v int64) *int64 { return &v }

func ids(ws []fakeWork) []int64 {
	out := make([]int64, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.id)
	}
	return out
}

func TestRootID(t *testing.T) {
	assert.Equal(t, int64(7), RootID(7, nil))
	assert.Equal(t, int64(3), RootID(7, ptr(3)))
}

func TestNextVersion_ChainGrowsFromAnyMember(t *testing.T) {
	root := fakeWork{id: 10, version: 1}
	chain := []fakeWork{root}

	v, err := NextVersion(chain)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	second := fakeWork{id: 11, parent: ptr(RootOf(root)), version: v}
	chain = append(chain, second)

	// resubmitting off the second version still hangs the new row on the root
	assert.Equal(t, int64(10), RootOf(second))
	v, err = NextVersion(chain)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	third := fakeWork{id: 12, parent: ptr(RootOf(second)), version: v}
	chain = append(chain, third)

	latest := LatestPerRoot(chain)
	require.Len(t, latest, 1)
	assert.Equal(t, int64(12), latest[0].id)
	assert.Equal(t, ptr(10), latest[0].parent)
}

func TestNextVersion_Empty(t *testing.T) {
	_, err := NextVersion([]fakeWork(nil))
	assert.ErrorIs(t, err, ErrEmptyChain)
}

func TestLatestPerRoot_OneEntryPerChain(t *testing.T) {
	items := []fakeWork{
		{id: 5, parent: ptr(1), version: 3},
		{id: 2, version: 1},
		{id: 4, parent: ptr(1), version: 2},
		{id: 1, version: 1},
		{id: 6, parent: ptr(2), version: 2},
		{id: 9, version: 1},
	}

	got := LatestPerRoot(items)
	if diff := cmp.Diff([]int64{5, 6, 9}, ids(got)); diff != "" {
		t.Fatalf("latest ids mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_OrderedWithoutDuplicates(t *testing.T) {
	items := []fakeWork{
		{id: 5, parent: ptr(1), version: 3},
		{id: 1, version: 1},
		{id: 8, version: 1},
		{id: 4, parent: ptr(1), version: 2},
		{id: 4, parent: ptr(1), version: 2},
	}

	got := History(items, 1)
	assert.Equal(t, []int64{1, 4, 5}, ids(got))
	assert.Empty(t, History(items, 99))
}
