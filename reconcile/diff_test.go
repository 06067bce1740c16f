package reconcile

import (
	"strconv"
	"testing"

	"github.com/fulldump/biff"
)

func rows(keys ...string) []Row[string] {
	result := make([]Row[string], len(keys))
	for i, k := range keys {
		result[i] = Row[string]{Key: k, Fingerprint: 1}
	}
	return result
}

func numbered(from, to int) []Row[int] {
	result := make([]Row[int], 0, to-from)
	for i := from; i < to; i++ {
		result = append(result, Row[int]{Key: i, Fingerprint: Fingerprint(i + 1)})
	}
	return result
}

func TestDiff_Itemized(t *testing.T) {

	biff.Alternative("Rows A B C", func(a *biff.A) {

		old := rows("A", "B", "C")

		a.Alternative("Diff with itself is empty", func(a *biff.A) {
			cs := Diff(old, old)
			biff.AssertTrue(cs.IsEmpty())
			biff.AssertFalse(cs.IsStructural())
			biff.AssertEqual(cs.Origins, []int{0, 1, 2})
		})

		a.Alternative("Insert X between A and B", func(a *biff.A) {
			cs := Diff(old, rows("A", "X", "B", "C"))
			biff.AssertFalse(cs.FullReload)
			biff.AssertEqual(cs.Inserts, []int{1})
			biff.AssertEqual(cs.Deletes, []int(nil))
			biff.AssertEqual(cs.Moves, []Move(nil))
			biff.AssertEqual(cs.Origins, []int{0, -1, 1, 2})
		})

		a.Alternative("Delete B", func(a *biff.A) {
			cs := Diff(old, rows("A", "C"))
			biff.AssertEqual(cs.Deletes, []int{1})
			biff.AssertEqual(cs.Inserts, []int(nil))
			biff.AssertEqual(cs.Survivors(3), []int{0, -1, 1})
		})

		a.Alternative("Deletes are descending", func(a *biff.A) {
			cs := DiffWith(old, rows("B"), Options{FullReloadRatio: -1})
			biff.AssertEqual(cs.Deletes, []int{2, 0})
		})

		a.Alternative("Inserts are ascending", func(a *biff.A) {
			cs := DiffWith(old, rows("X", "A", "B", "Y", "C", "Z"), Options{FullReloadRatio: -1})
			biff.AssertEqual(cs.Inserts, []int{0, 3, 5})
		})
	})
}

func TestDiff_Moves(t *testing.T) {

	biff.Alternative("Last row moves to the front", func(a *biff.A) {
		cs := Diff(rows("A", "B", "C", "D"), rows("D", "A", "B", "C"))
		biff.AssertEqual(cs.Moves, []Move{{From: 3, To: 0}})
		biff.AssertEqual(cs.Updates, []int(nil))
		biff.AssertTrue(cs.IsStructural())
	})

	biff.Alternative("Swap", func(a *biff.A) {
		cs := Diff(rows("A", "B"), rows("B", "A"))
		biff.AssertEqual(cs.Moves, []Move{{From: 1, To: 0}})
	})

	biff.Alternative("Moved and changed", func(a *biff.A) {
		old := []Row[string]{{"a", 1}, {"b", 2}, {"c", 3}}
		new := []Row[string]{{"c", 4}, {"a", 1}, {"b", 2}}
		cs := Diff(old, new)
		biff.AssertEqual(cs.Moves, []Move{{From: 2, To: 0, Changed: true}})
		biff.AssertEqual(cs.Updates, []int(nil))
	})
}

func TestDiff_Updates(t *testing.T) {

	biff.Alternative("Fingerprint changed", func(a *biff.A) {
		old := []Row[string]{{"a", 1}, {"b", 2}}
		new := []Row[string]{{"a", 1}, {"b", 3}}
		cs := Diff(old, new)
		biff.AssertEqual(cs.Updates, []int{1})
		biff.AssertFalse(cs.IsStructural())
	})

	biff.Alternative("Rows without fingerprint", func(a *biff.A) {
		old := []Row[string]{{Key: "a"}, {Key: "b"}}

		a.Alternative("No comparer means unchanged", func(a *biff.A) {
			cs := Diff(old, old)
			biff.AssertTrue(cs.IsEmpty())
		})

		a.Alternative("Comparer decides", func(a *biff.A) {
			cs := DiffWith(old, old, Options{
				Equal: func(oldIndex, newIndex int) bool {
					return oldIndex != 1
				},
			})
			biff.AssertEqual(cs.Updates, []int{1})
		})
	})
}

func TestDiff_Duplicates(t *testing.T) {

	biff.Alternative("Duplicate in new is an insert", func(a *biff.A) {
		cs := Diff(rows("a", "b"), rows("a", "a", "b"))
		biff.AssertEqual(cs.Inserts, []int{1})
		biff.AssertEqual(cs.Origins, []int{0, -1, 1})
	})

	biff.Alternative("Duplicate in old is a delete", func(a *biff.A) {
		cs := Diff(rows("a", "a", "b"), rows("a", "b"))
		biff.AssertEqual(cs.Deletes, []int{1})
		biff.AssertEqual(cs.Origins, []int{0, 2})
	})
}

func TestDiff_FullReload(t *testing.T) {

	biff.Alternative("1000 rows sharing 400 keys", func(a *biff.A) {
		old := numbered(0, 1000)
		new := numbered(600, 1600)

		a.Alternative("Default ratio", func(a *biff.A) {
			cs := Diff(old, new)
			biff.AssertTrue(cs.FullReload)
			biff.AssertEqual(cs.Deletes, []int(nil))
			biff.AssertEqual(cs.Inserts, []int(nil))
			biff.AssertEqual(len(cs.Origins), 1000)
			biff.AssertEqual(cs.Origins[0], 600)
			biff.AssertEqual(cs.Origins[999], -1)
		})

		a.Alternative("Disabled", func(a *biff.A) {
			cs := DiffWith(old, new, Options{FullReloadRatio: -1})
			biff.AssertFalse(cs.FullReload)
			biff.AssertEqual(len(cs.Deletes), 600)
			biff.AssertEqual(len(cs.Inserts), 600)
		})
	})

	biff.Alternative("Half the rows replaced stays itemized", func(a *biff.A) {
		old := numbered(0, 10)
		new := append(numbered(0, 8), Row[int]{Key: 100, Fingerprint: 1}, Row[int]{Key: 101, Fingerprint: 1})
		cs := Diff(old, new)
		biff.AssertFalse(cs.FullReload)
		biff.AssertEqual(cs.Deletes, []int{9, 8})
		biff.AssertEqual(cs.Inserts, []int{8, 9})
	})

	biff.Alternative("Initial load", func(a *biff.A) {
		cs := Diff(nil, rows("a", "b", "c"))
		biff.AssertTrue(cs.FullReload)
		biff.AssertEqual(cs.Origins, []int{-1, -1, -1})
	})

	biff.Alternative("Both empty", func(a *biff.A) {
		cs := Diff[string](nil, nil)
		biff.AssertTrue(cs.IsEmpty())
	})
}

func BenchmarkDiff(b *testing.B) {
	old := make([]Row[string], 100_000)
	for i := range old {
		old[i] = Row[string]{Key: strconv.Itoa(i), Fingerprint: 1}
	}
	new := append([]Row[string]{{Key: "head", Fingerprint: 1}}, old...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Diff(old, new)
	}
}
