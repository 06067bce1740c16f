// Package reconcile computes the structural operations that turn one ordered,
// keyed row sequence into another.
package reconcile

import "sort"

// Fingerprint is a cheap content token. The zero value means the row has no
// fingerprint and Options.Equal decides instead.
type Fingerprint uint64

const NoFingerprint Fingerprint = 0

// Row is one entry of a row sequence. Key identifies the logical row across
// sequences.
type Row[K comparable] struct {
	Key         K
	Fingerprint Fingerprint
}

// Move relocates a surviving row. From is an index of the old sequence, To of the
// new one. Changed is set when the row's content changed as well.
type Move struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Changed bool `json:"changed,omitempty"`
}

// ChangeSet lists the operations between two sequences. Deletes are old indices
// in descending order, Inserts new indices in ascending order and Updates new
// indices of rows that stayed in place but changed content.
//
// When FullReload is set the itemized lists are empty and the consumer should
// rebuild from scratch. Origins is always filled: Origins[j] is the old index of
// new row j, or -1 when it was inserted.
type ChangeSet struct {
	Deletes    []int  `json:"deletes"`
	Inserts    []int  `json:"inserts"`
	Moves      []Move `json:"moves"`
	Updates    []int  `json:"updates"`
	FullReload bool   `json:"fullReload"`
	Origins    []int  `json:"-"`
}

// IsEmpty reports a change set without any operation.
func (c *ChangeSet) IsEmpty() bool {
	return !c.FullReload && len(c.Deletes) == 0 && len(c.Inserts) == 0 &&
		len(c.Moves) == 0 && len(c.Updates) == 0
}

// IsStructural reports whether rows were added, removed or reordered.
func (c *ChangeSet) IsStructural() bool {
	return c.FullReload || len(c.Deletes) > 0 || len(c.Inserts) > 0 || len(c.Moves) > 0
}

// DefaultFullReloadRatio is the share of max(len(old), len(new)) that deletes
// plus inserts may reach before an itemized diff is replaced by a full reload.
const DefaultFullReloadRatio = 0.5

type Options struct {
	// FullReloadRatio overrides DefaultFullReloadRatio when positive. A negative
	// value disables full reloads.
	FullReloadRatio float64

	// Equal compares the content of old row oldIndex with new row newIndex when
	// one of them has no fingerprint. Without it such rows count as unchanged.
	Equal func(oldIndex, newIndex int) bool
}

// Diff compares old and new with DefaultFullReloadRatio.
func Diff[K comparable](old, new []Row[K]) ChangeSet {
	return DiffWith(old, new, Options{})
}

// DiffWith compares old and new. A key repeated within one side is matched by
// its first occurrence only: later copies in old are deleted, later copies in
// new are inserted.
func DiffWith[K comparable](old, new []Row[K], options Options) ChangeSet {

	positions := make(map[K]int, len(old))
	for i, row := range old {
		if _, exists := positions[row.Key]; !exists {
			positions[row.Key] = i
		}
	}

	cs := ChangeSet{
		Origins: make([]int, len(new)),
	}

	visited := make([]bool, len(old))
	for j, row := range new {
		i, exists := positions[row.Key]
		if !exists || visited[i] {
			cs.Origins[j] = -1
			cs.Inserts = append(cs.Inserts, j)
			continue
		}
		visited[i] = true
		cs.Origins[j] = i
	}

	for i := len(old) - 1; i >= 0; i-- {
		if !visited[i] {
			cs.Deletes = append(cs.Deletes, i)
		}
	}

	if exceedsRatio(len(cs.Deletes)+len(cs.Inserts), max(len(old), len(new)), options.FullReloadRatio) {
		cs.Deletes = nil
		cs.Inserts = nil
		cs.FullReload = true
		return cs
	}

	stable := stableRows(cs.Origins)
	for j, i := range cs.Origins {
		if i < 0 {
			continue
		}
		changed := contentChanged(old, new, i, j, options.Equal)
		if !stable[j] {
			cs.Moves = append(cs.Moves, Move{From: i, To: j, Changed: changed})
			continue
		}
		if changed {
			cs.Updates = append(cs.Updates, j)
		}
	}

	return cs
}

func exceedsRatio(changes, size int, ratio float64) bool {
	if ratio < 0 || changes == 0 {
		return false
	}
	if ratio == 0 {
		ratio = DefaultFullReloadRatio
	}
	return float64(changes) > ratio*float64(size)
}

func contentChanged[K comparable](old, new []Row[K], i, j int, equal func(int, int) bool) bool {
	a, b := old[i].Fingerprint, new[j].Fingerprint
	if a != NoFingerprint && b != NoFingerprint {
		return a != b
	}
	if equal == nil {
		return false
	}
	return !equal(i, j)
}

// stableRows marks the matched rows that keep their relative order: the longest
// increasing run of old indices. Every other matched row is a move.
func stableRows(origins []int) []bool {
	// tails[k] is the position in origins of the smallest tail of an increasing
	// run of length k+1; parent links rebuild the run.
	tails := make([]int, 0, len(origins))
	parent := make([]int, len(origins))

	for j, i := range origins {
		parent[j] = -1
		if i < 0 {
			continue
		}
		k := sort.Search(len(tails), func(k int) bool {
			return origins[tails[k]] >= i
		})
		if k > 0 {
			parent[j] = tails[k-1]
		}
		if k == len(tails) {
			tails = append(tails, j)
		} else {
			tails[k] = j
		}
	}

	stable := make([]bool, len(origins))
	if len(tails) == 0 {
		return stable
	}
	for j := tails[len(tails)-1]; j >= 0; j = parent[j] {
		stable[j] = true
	}
	return stable
}

// Survivors inverts Origins for an old sequence of oldCount rows: the result maps
// every old index to its new index, or -1 when the row was deleted.
func (c *ChangeSet) Survivors(oldCount int) []int {
	survivors := make([]int, oldCount)
	for i := range survivors {
		survivors[i] = -1
	}
	for j, i := range c.Origins {
		if i >= 0 && i < oldCount {
			survivors[i] = j
		}
	}
	return survivors
}
