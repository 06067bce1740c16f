package metrics

// InvalidateRows marks rows whose stored height can no longer be trusted. The
// stored heights are kept until RecomputeDirtyHeights replaces them.
func (s *Store) InvalidateRows(indices []int) {
	for _, i := range indices {
		if i < 0 || i >= len(s.rows) {
			continue
		}
		s.dirty.ReplaceOrInsert(i)
	}
}

func (s *Store) IsRowDirty(i int) bool {
	return s.dirty.Has(i)
}

func (s *Store) HasDirtyRows() bool {
	return s.dirty.Len() > 0
}

// EarliestDirtyRow returns the lowest dirty row.
func (s *Store) EarliestDirtyRow() (int, bool) {
	return s.dirty.Min()
}

// CurrentDirtyRows lists dirty rows in ascending order.
func (s *Store) CurrentDirtyRows() []int {
	rows := make([]int, 0, s.dirty.Len())
	s.dirty.Ascend(func(i int) bool {
		rows = append(rows, i)
		return true
	})
	return rows
}

func (s *Store) ClearDirtyFlags() {
	s.dirty.Clear(true)
}

// RecomputeDirtyHeights measures every dirty row in ascending order, clears the
// dirty set and rebuilds offsets from the earliest row that changed.
func (s *Store) RecomputeDirtyHeights(measurer func(row int) float64) {
	earliest, ok := s.dirty.Min()
	if !ok {
		return
	}

	for _, i := range s.CurrentDirtyRows() {
		s.setMeasured(i, measurer(i))
	}
	s.dirty.Clear(true)

	if s.stale >= 0 && s.stale < earliest {
		earliest = s.stale
	}
	s.RebuildOffsets(earliest)
}

// DemoteDirtyRows turns every dirty row back into an unmeasured row of
// fallbackHeight and clears the dirty set. It returns the demoted rows.
func (s *Store) DemoteDirtyRows(fallbackHeight float64) []int {
	rows := s.CurrentDirtyRows()
	s.MarkRowsUnmeasured(rows, fallbackHeight)
	return rows
}
