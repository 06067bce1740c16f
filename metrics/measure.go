package metrics

// Range is a half-open interval of rows [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) Contains(row int) bool {
	return row >= r.Start && row < r.End
}

func (s *Store) clampRange(r Range) Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(s.rows) {
		r.End = len(s.rows)
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

func (s *Store) IsRowMeasured(i int) bool {
	if i < 0 || i >= len(s.rows) {
		return false
	}
	return s.rows[i].Measured
}

func (s *Store) MeasuredRowCount() int {
	return s.measuredCount
}

// MarkRowMeasured stores a measured height for row i and clears its dirty flag.
func (s *Store) MarkRowMeasured(i int, height float64) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.setMeasured(i, height)
	s.dirty.Delete(i)
}

func (s *Store) setMeasured(i int, height float64) {
	height = sanitizeHeight(height)
	r := &s.rows[i]
	if r.Height != height {
		s.markStale(i)
	}
	r.Height = height
	if !r.Measured {
		r.Measured = true
		s.measuredCount++
		if s.measured != nil {
			s.measured.ReplaceOrInsert(i)
		}
	}
}

// MarkRowsUnmeasured forgets the measurement of the given rows. They go back to
// fallbackHeight and will be measured again on their next visit.
func (s *Store) MarkRowsUnmeasured(indices []int, fallbackHeight float64) {
	fallbackHeight = sanitizeHeight(fallbackHeight)
	for _, i := range indices {
		if i < 0 || i >= len(s.rows) {
			continue
		}
		r := &s.rows[i]
		if r.Height != fallbackHeight {
			s.markStale(i)
		}
		r.Height = fallbackHeight
		if r.Measured {
			r.Measured = false
			s.measuredCount--
			if s.measured != nil {
				s.measured.Delete(i)
			}
		}
		s.dirty.Delete(i)
	}
}

// UnmeasuredRowsInRange lists, in ascending order, the rows of r that have never
// been measured.
func (s *Store) UnmeasuredRowsInRange(r Range) []int {
	r = s.clampRange(r)
	var rows []int
	for i := r.Start; i < r.End; i++ {
		if !s.rows[i].Measured {
			rows = append(rows, i)
		}
	}
	return rows
}

// MeasureRowsInRange measures the unmeasured rows of r. Rows already measured are
// never passed to measurer, and rows answered by the height override are marked
// measured without calling it. Offsets are not rebuilt. It reports whether any
// row was newly measured.
func (s *Store) MeasureRowsInRange(r Range, measurer func(row int) float64) bool {
	r = s.clampRange(r)
	measured := false
	for i := r.Start; i < r.End; i++ {
		if s.rows[i].Measured {
			continue
		}
		if s.override != nil {
			if h, ok := s.override(i); ok {
				s.MarkRowMeasured(i, h)
				measured = true
				continue
			}
		}
		s.MarkRowMeasured(i, measurer(i))
		measured = true
	}
	return measured
}

// MeasuredRowsOutside lists measured rows that fall outside r, ascending.
func (s *Store) MeasuredRowsOutside(r Range) []int {
	r = s.clampRange(r)
	var rows []int

	if s.measured == nil {
		for i, row := range s.rows {
			if row.Measured && !r.Contains(i) {
				rows = append(rows, i)
			}
		}
		return rows
	}

	collect := func(i int) bool {
		rows = append(rows, i)
		return true
	}
	s.measured.AscendLessThan(r.Start, collect)
	s.measured.AscendGreaterOrEqual(r.End, collect)
	return rows
}
