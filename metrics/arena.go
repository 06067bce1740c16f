package metrics

import "github.com/google/btree"

// AppendRow adds an unmeasured row of the given height at the end.
func (s *Store) AppendRow(height float64) {
	height = sanitizeHeight(height)
	n := len(s.rows)
	s.rows = append(s.rows, RowMetric{Height: height})
	if s.stale < 0 {
		bottom := s.offsets[n]
		s.offsets = append(s.offsets, bottom+s.HeightForRow(n)+s.options.InterRowSpacing)
		return
	}
	s.resizeOffsets()
}

// TruncateToCount drops every row from n on, together with their dirty flags.
func (s *Store) TruncateToCount(n int) {
	n = clampCount(n)
	if n >= len(s.rows) {
		return
	}

	for i := n; i < len(s.rows); i++ {
		if s.rows[i].Measured {
			s.measuredCount--
		}
	}
	dropFrom(s.dirty, n)
	dropFrom(s.measured, n)

	s.rows = s.rows[:n]
	s.resizeOffsets()
	if s.stale >= n {
		s.stale = -1
	}
}

// InsertRows opens count unmeasured rows of height at position at.
func (s *Store) InsertRows(at, count int, height float64) {
	n := len(s.rows)
	if count <= 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > n {
		at = n
	}
	height = sanitizeHeight(height)

	s.rows = append(s.rows, make([]RowMetric, count)...)
	copy(s.rows[at+count:], s.rows[at:n])
	for i := at; i < at+count; i++ {
		s.rows[i] = RowMetric{Height: height}
	}

	shiftFrom(s.dirty, at, count)
	shiftFrom(s.measured, at, count)

	s.resizeOffsets()
	s.markStale(at)
}

// RemoveRows deletes count rows starting at at.
func (s *Store) RemoveRows(at, count int) {
	n := len(s.rows)
	if at < 0 || at >= n || count <= 0 {
		return
	}
	if at+count > n {
		count = n - at
	}

	for i := at; i < at+count; i++ {
		if s.rows[i].Measured {
			s.measuredCount--
		}
	}
	dropRange(s.dirty, at, at+count)
	dropRange(s.measured, at, at+count)
	shiftFrom(s.dirty, at+count, -count)
	shiftFrom(s.measured, at+count, -count)

	copy(s.rows[at:], s.rows[at+count:])
	s.rows = s.rows[:n-count]

	s.resizeOffsets()
	s.markStale(at)
}

// MoveRow takes the row at from out of the arena and puts it back at to.
func (s *Store) MoveRow(from, to int) {
	n := len(s.rows)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}

	moved := s.rows[from]
	if from < to {
		copy(s.rows[from:to], s.rows[from+1:to+1])
	} else {
		copy(s.rows[to+1:from+1], s.rows[to:from])
	}
	s.rows[to] = moved

	mapping := func(i int) int {
		switch {
		case i == from:
			return to
		case from < to && i > from && i <= to:
			return i - 1
		case to < from && i >= to && i < from:
			return i + 1
		}
		return i
	}
	lo, hi := min(from, to), max(from, to)
	remapRange(s.dirty, lo, hi+1, mapping)
	remapRange(s.measured, lo, hi+1, mapping)

	s.markStale(lo)
}

// Remap rebuilds the arena for a new row order. origins[j] is the previous index
// of new row j, or -1 for a row that did not exist; new rows are unmeasured at
// height. Surviving rows keep their height, measured state and dirty flag. The
// previous backing array is kept as scratch for the next call.
func (s *Store) Remap(origins []int, height float64) {
	oldN := len(s.rows)
	newN := len(origins)
	height = sanitizeHeight(height)

	if cap(s.scratch) < newN {
		s.scratch = make([]RowMetric, newN, newN+newN/4)
	}
	next := s.scratch[:newN]

	if cap(s.inverse) < oldN {
		s.inverse = make([]int, oldN, oldN+oldN/4)
	}
	inverse := s.inverse[:oldN]
	for i := range inverse {
		inverse[i] = -1
	}

	firstChange := -1
	measuredCount := 0
	for j, o := range origins {
		if o >= 0 && o < oldN && inverse[o] < 0 {
			next[j] = s.rows[o]
			inverse[o] = j
		} else {
			next[j] = RowMetric{Height: height}
			o = -1
		}
		if next[j].Measured {
			measuredCount++
		}
		if firstChange < 0 && o != j {
			firstChange = j
		}
	}
	if firstChange < 0 && newN != oldN {
		firstChange = min(newN, oldN)
	}

	mapping := func(i int) (int, bool) {
		if i >= oldN || inverse[i] < 0 {
			return 0, false
		}
		return inverse[i], true
	}
	remapAll(s.dirty, mapping)
	remapAll(s.measured, mapping)

	s.scratch = s.rows
	s.rows = next
	s.measuredCount = measuredCount

	s.resizeOffsets()
	if firstChange >= 0 {
		s.markStale(firstChange)
	}
}

func collect(set *btree.BTreeG[int], from, to int) []int {
	var keys []int
	set.AscendRange(from, to, func(i int) bool {
		keys = append(keys, i)
		return true
	})
	return keys
}

func dropFrom(set *btree.BTreeG[int], from int) {
	if set == nil {
		return
	}
	var keys []int
	set.AscendGreaterOrEqual(from, func(i int) bool {
		keys = append(keys, i)
		return true
	})
	for _, k := range keys {
		set.Delete(k)
	}
}

func dropRange(set *btree.BTreeG[int], from, to int) {
	if set == nil {
		return
	}
	for _, k := range collect(set, from, to) {
		set.Delete(k)
	}
}

// shiftFrom adds delta to every key >= from.
func shiftFrom(set *btree.BTreeG[int], from, delta int) {
	if set == nil || delta == 0 {
		return
	}
	var keys []int
	set.AscendGreaterOrEqual(from, func(i int) bool {
		keys = append(keys, i)
		return true
	})
	for _, k := range keys {
		set.Delete(k)
	}
	for _, k := range keys {
		set.ReplaceOrInsert(k + delta)
	}
}

func remapRange(set *btree.BTreeG[int], from, to int, mapping func(int) int) {
	if set == nil {
		return
	}
	keys := collect(set, from, to)
	for _, k := range keys {
		set.Delete(k)
	}
	for _, k := range keys {
		set.ReplaceOrInsert(mapping(k))
	}
}

func remapAll(set *btree.BTreeG[int], mapping func(int) (int, bool)) {
	if set == nil || set.Len() == 0 {
		return
	}
	var keys []int
	set.Ascend(func(i int) bool {
		keys = append(keys, i)
		return true
	})
	set.Clear(true)
	for _, k := range keys {
		if j, ok := mapping(k); ok {
			set.ReplaceOrInsert(j)
		}
	}
}
