// Package works holds the version-chain rules for submitted works.
//
// A chain is two levels deep: the root work has no parent and every later
// version points straight at the root, never at an intermediate version.
package works

import (
	"errors"
	"sort"
)

var ErrEmptyChain = errors.New("works: empty version chain")

// Versioned is what the chain helpers need from a stored work.
type Versioned interface {
	WorkID() int64
	ParentID() *int64
	VersionNumber() int
}

// RootID returns the id of the chain a work belongs to.
func RootID(id int64, parentID *int64) int64 {
	if parentID != nil {
		return *parentID
	}
	return id
}

// RootOf is RootID for a stored work.
func RootOf(w Versioned) int64 {
	return RootID(w.WorkID(), w.ParentID())
}

// NextVersion returns max(version)+1 over the chain. An empty chain yields
// ErrEmptyChain since a new version always needs an existing root.
func NextVersion[T Versioned](chain []T) (int, error) {
	if len(chain) == 0 {
		return 0, ErrEmptyChain
	}
	maxVersion := 0
	for _, w := range chain {
		if v := w.VersionNumber(); v > maxVersion {
			maxVersion = v
		}
	}
	return maxVersion + 1, nil
}

// LatestPerRoot keeps the highest version of every chain. Output order
// follows the first appearance of each chain in items.
func LatestPerRoot[T Versioned](items []T) []T {
	best := make(map[int64]int, len(items))
	var order []int64
	for i, w := range items {
		root := RootOf(w)
		j, seen := best[root]
		if !seen {
			order = append(order, root)
			best[root] = i
			continue
		}
		if w.VersionNumber() > items[j].VersionNumber() {
			best[root] = i
		}
	}

	out := make([]T, 0, len(order))
	for _, root := range order {
		out = append(out, items[best[root]])
	}
	return out
}

// History filters items down to one chain, ordered by version ascending,
// with duplicate ids removed.
func History[T Versioned](items []T, rootID int64) []T {
	seen := make(map[int64]struct{}, len(items))
	var out []T
	for _, w := range items {
		if RootOf(w) != rootID {
			continue
		}
		if _, dup := seen[w.WorkID()]; dup {
			continue
		}
		seen[w.WorkID()] = struct{}{}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VersionNumber() < out[j].VersionNumber()
	})
	return out
}
