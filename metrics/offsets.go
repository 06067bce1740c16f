package metrics

import (
	"math"
	"sort"
)

// RebuildOffsets recomputes offsets[fromRow+1:] from offsets[fromRow], which is
// left untouched. The cost is proportional to RowCount()-fromRow.
func (s *Store) RebuildOffsets(fromRow int) {
	n := len(s.rows)
	s.resizeOffsets()

	if fromRow <= 0 {
		fromRow = 0
		s.offsets[0] = s.options.HeaderHeight
	}
	if fromRow > n {
		fromRow = n
	}

	spacing := s.options.InterRowSpacing
	y := s.offsets[fromRow]
	for i := fromRow; i < n; i++ {
		y += s.HeightForRow(i) + spacing
		s.offsets[i+1] = y
	}

	if s.stale >= fromRow {
		s.stale = -1
	}
}

// RebuildPending rebuilds offsets from the lowest row touched since the last
// rebuild. It reports whether anything was rebuilt.
func (s *Store) RebuildPending() bool {
	if s.stale < 0 {
		return false
	}
	s.RebuildOffsets(s.stale)
	return true
}

// PendingRow is the row RebuildPending would start from, or -1.
func (s *Store) PendingRow() int {
	return s.stale
}

// YOffsetForRow is the top edge of row i. Indices below zero clamp to the
// header, indices past the end clamp to the bottom of the last row.
func (s *Store) YOffsetForRow(i int) float64 {
	if i <= 0 {
		return s.offsets[0]
	}
	last := len(s.offsets) - 1
	if i > last {
		i = last
	}
	return s.offsets[i]
}

// RowForYOffset returns the row whose [offset, next offset) interval holds y.
// When several rows start exactly at y (zero height rows) the first of them is
// returned, so every row stays addressable by its own offset. The result is
// clamped to [0, RowCount()-1].
func (s *Store) RowForYOffset(y float64) int {
	n := len(s.rows)
	if n == 0 || math.IsNaN(y) || y < s.offsets[0] {
		return 0
	}

	i := sort.Search(n, func(i int) bool {
		return s.offsets[i] >= y
	})

	if i < n && s.offsets[i] == y {
		return i
	}
	if i == 0 {
		return 0
	}
	return i - 1
}

// VisibleRange returns the first and last rows (inclusive) intersecting the
// viewport [scrollOffset, scrollOffset+viewportHeight). ok is false when the
// store has no rows.
func (s *Store) VisibleRange(scrollOffset, viewportHeight float64) (first, last int, ok bool) {
	if len(s.rows) == 0 {
		return 0, 0, false
	}

	first = s.RowForYOffset(scrollOffset)
	if viewportHeight <= 0 {
		return first, first, true
	}

	bottom := scrollOffset + viewportHeight
	last = s.RowForYOffset(bottom)
	for last > first && s.offsets[last] >= bottom {
		last--
	}
	return first, last, true
}

func (s *Store) markStale(row int) {
	if row < 0 {
		row = 0
	}
	if s.stale < 0 || row < s.stale {
		s.stale = row
	}
}

// resizeOffsets keeps len(offsets) == len(rows)+1. New slots copy the previous
// bottom and are stale until the next rebuild.
func (s *Store) resizeOffsets() {
	want := len(s.rows) + 1
	have := len(s.offsets)
	switch {
	case want < have:
		s.offsets = s.offsets[:want]
	case want > have:
		bottom := s.offsets[have-1]
		for i := have; i < want; i++ {
			s.offsets = append(s.offsets, bottom)
		}
	}
}
