package metrics

import (
	"testing"

	"github.com/fulldump/biff"
)

func newStore(n int, height float64) *Store {
	s := New(Options{EstimatedHeight: 44})
	s.SetRowCount(n, height, true)
	return s
}

func offsetsOf(s *Store) []float64 {
	result := make([]float64, s.RowCount())
	for i := range result {
		result[i] = s.YOffsetForRow(i)
	}
	return result
}

func TestStore_Offsets(t *testing.T) {

	biff.Alternative("Three rows of 50", func(a *biff.A) {

		s := newStore(3, 50)
		biff.AssertEqual(offsetsOf(s), []float64{0, 50, 100})
		biff.AssertEqual(s.ContentHeight(), 150.0)

		a.Alternative("Insert between first and second", func(a *biff.A) {
			s.InsertRows(1, 1, 50)
			s.RebuildPending()

			biff.AssertEqual(s.RowCount(), 4)
			biff.AssertEqual(s.YOffsetForRow(0), 0.0)
			biff.AssertEqual(s.YOffsetForRow(2), 100.0)
			biff.AssertEqual(s.ContentHeight(), 200.0)
		})

		a.Alternative("Remove the second row", func(a *biff.A) {
			s.RemoveRows(1, 1)
			s.RebuildPending()

			biff.AssertEqual(s.RowCount(), 2)
			biff.AssertEqual(s.YOffsetForRow(1), 50.0)
		})

		a.Alternative("Out of range queries", func(a *biff.A) {
			biff.AssertEqual(s.HeightForRow(-1), 44.0)
			biff.AssertEqual(s.HeightForRow(3), 44.0)
			biff.AssertEqual(s.YOffsetForRow(-5), 0.0)
			biff.AssertEqual(s.YOffsetForRow(99), 150.0)
			biff.AssertEqual(s.RowForYOffset(-10), 0)
			biff.AssertEqual(s.RowForYOffset(1000), 2)
		})
	})
}

func TestStore_RowForYOffset(t *testing.T) {

	biff.Alternative("Mixed heights with header and spacing", func(a *biff.A) {

		s := New(Options{HeaderHeight: 30, InterRowSpacing: 2})
		s.SetRowCount(6, 20, true)
		s.SetHeight(0, 2)
		s.SetHeight(64, 4)
		s.RebuildOffsets(0)

		a.Alternative("Consecutive offsets", func(a *biff.A) {
			for i := 0; i+1 < s.RowCount(); i++ {
				biff.AssertEqual(s.YOffsetForRow(i+1)-s.YOffsetForRow(i), s.HeightForRow(i)+2)
			}
		})

		a.Alternative("Round trip", func(a *biff.A) {
			for i := 0; i < s.RowCount(); i++ {
				biff.AssertEqual(s.RowForYOffset(s.YOffsetForRow(i)), i)
			}
		})

		a.Alternative("Zero height row is addressable", func(a *biff.A) {
			biff.AssertEqual(s.HeightForRow(2), 0.0)
			biff.AssertEqual(s.YOffsetForRow(2), s.YOffsetForRow(3)-2)
		})

		a.Alternative("Above the header resolves to the first row", func(a *biff.A) {
			biff.AssertEqual(s.RowForYOffset(10), 0)
		})

		a.Alternative("Middle of a row", func(a *biff.A) {
			biff.AssertEqual(s.RowForYOffset(s.YOffsetForRow(4)+63), 4)
		})
	})

	biff.Alternative("Zero height rows sharing a boundary", func(a *biff.A) {

		s := New(Options{})
		s.SetRowCount(5, 50, true)
		s.SetHeight(0, 1)
		s.SetHeight(0, 2)
		s.RebuildOffsets(0)

		biff.AssertEqual(s.YOffsetForRow(1), 50.0)
		biff.AssertEqual(s.YOffsetForRow(2), 50.0)
		biff.AssertEqual(s.YOffsetForRow(3), 50.0)

		a.Alternative("Round trip for the first row at each offset", func(a *biff.A) {
			for _, i := range []int{0, 1, 4} {
				biff.AssertEqual(s.RowForYOffset(s.YOffsetForRow(i)), i)
			}
		})

		a.Alternative("Boundary resolves to the first row starting there", func(a *biff.A) {
			biff.AssertEqual(s.RowForYOffset(50), 1)
		})

		a.Alternative("Inside the next row", func(a *biff.A) {
			biff.AssertEqual(s.RowForYOffset(51), 3)
			biff.AssertEqual(s.RowForYOffset(49), 0)
		})

		a.Alternative("Visible range starts at the zero height row", func(a *biff.A) {
			first, last, ok := s.VisibleRange(50, 60)
			biff.AssertTrue(ok)
			biff.AssertEqual(first, 1)
			biff.AssertEqual(last, 4)
		})
	})
}

func TestStore_RebuildFromRow(t *testing.T) {

	biff.Alternative("Rebuild only the suffix", func(a *biff.A) {

		s := newStore(10, 25)
		before := offsetsOf(s)

		k := 4
		s.SetHeight(40, k)
		s.RebuildOffsets(k)
		after := offsetsOf(s)

		for i := 0; i <= k; i++ {
			biff.AssertEqual(after[i], before[i])
		}
		for i := k + 1; i < len(after); i++ {
			biff.AssertEqual(after[i]-before[i], 15.0)
		}
		biff.AssertEqual(s.ContentHeight(), 265.0)
	})

	biff.Alternative("Rebuild from a later row leaves earlier changes pending", func(a *biff.A) {

		s := newStore(10, 25)
		s.SetHeight(30, 2)
		s.SetHeight(30, 6)
		biff.AssertEqual(s.PendingRow(), 2)

		s.RebuildOffsets(6)
		biff.AssertEqual(s.PendingRow(), 2)

		s.RebuildPending()
		biff.AssertEqual(s.PendingRow(), -1)
		biff.AssertEqual(s.ContentHeight(), 260.0)
	})
}

func TestStore_Dirty(t *testing.T) {

	biff.Alternative("Invalidate and recompute", func(a *biff.A) {

		s := newStore(5, 10)
		s.InvalidateRows([]int{3, 1, 99, -1})

		biff.AssertTrue(s.HasDirtyRows())
		biff.AssertEqual(s.CurrentDirtyRows(), []int{1, 3})
		biff.AssertEqual(s.HeightForRow(1), 10.0)

		earliest, ok := s.EarliestDirtyRow()
		biff.AssertTrue(ok)
		biff.AssertEqual(earliest, 1)

		a.Alternative("Recompute", func(a *biff.A) {
			calls := []int{}
			s.RecomputeDirtyHeights(func(row int) float64 {
				calls = append(calls, row)
				return 20
			})

			biff.AssertEqual(calls, []int{1, 3})
			biff.AssertFalse(s.HasDirtyRows())
			biff.AssertEqual(s.YOffsetForRow(2), 30.0)
			biff.AssertEqual(s.ContentHeight(), 70.0)
		})

		a.Alternative("Marking measured clears the flag", func(a *biff.A) {
			s.MarkRowMeasured(1, 10)
			biff.AssertEqual(s.CurrentDirtyRows(), []int{3})
		})

		a.Alternative("Truncate drops flags of removed rows", func(a *biff.A) {
			s.TruncateToCount(2)
			biff.AssertEqual(s.CurrentDirtyRows(), []int{1})
			biff.AssertEqual(s.RowCount(), 2)
			biff.AssertEqual(s.ContentHeight(), 20.0)
		})

		a.Alternative("Insert shifts flags", func(a *biff.A) {
			s.InsertRows(2, 2, 10)
			biff.AssertEqual(s.CurrentDirtyRows(), []int{1, 5})
		})

		a.Alternative("Remove shifts flags", func(a *biff.A) {
			s.RemoveRows(0, 2)
			biff.AssertEqual(s.CurrentDirtyRows(), []int{1})
		})

		a.Alternative("Move carries the flag", func(a *biff.A) {
			s.MoveRow(3, 0)
			biff.AssertEqual(s.CurrentDirtyRows(), []int{0, 2})
		})

		a.Alternative("Clear", func(a *biff.A) {
			s.ClearDirtyFlags()
			biff.AssertFalse(s.HasDirtyRows())
		})
	})
}

func TestStore_Measure(t *testing.T) {

	biff.Alternative("Unmeasured rows", func(a *biff.A) {

		s := New(Options{EstimatedHeight: 30, IndexMeasured: true})
		s.SetRowCount(100, 30, false)

		biff.AssertEqual(s.MeasuredRowCount(), 0)
		biff.AssertEqual(len(s.UnmeasuredRowsInRange(Range{Start: 10, End: 20})), 10)

		calls := 0
		measurer := func(row int) float64 {
			calls++
			return 12
		}

		biff.AssertTrue(s.MeasureRowsInRange(Range{Start: 10, End: 20}, measurer))
		biff.AssertEqual(calls, 10)
		biff.AssertEqual(s.MeasuredRowCount(), 10)
		biff.AssertTrue(s.IsRowMeasured(15))

		a.Alternative("Measuring again calls nothing", func(a *biff.A) {
			biff.AssertFalse(s.MeasureRowsInRange(Range{Start: 10, End: 20}, measurer))
			biff.AssertEqual(calls, 10)
		})

		a.Alternative("Overlapping range only measures the new rows", func(a *biff.A) {
			biff.AssertTrue(s.MeasureRowsInRange(Range{Start: 15, End: 25}, measurer))
			biff.AssertEqual(calls, 15)
		})

		a.Alternative("Measured rows outside a range", func(a *biff.A) {
			biff.AssertEqual(s.MeasuredRowsOutside(Range{Start: 12, End: 18}), []int{10, 11, 18, 19})
		})

		a.Alternative("Forget measurements", func(a *biff.A) {
			s.MarkRowsUnmeasured([]int{10, 11}, 30)
			biff.AssertEqual(s.MeasuredRowCount(), 8)
			biff.AssertFalse(s.IsRowMeasured(10))
			biff.AssertEqual(s.HeightForRow(10), 30.0)
		})

		a.Alternative("Offsets follow after rebuild", func(a *biff.A) {
			s.RebuildPending()
			biff.AssertEqual(s.YOffsetForRow(20), 10*30.0+10*12.0)
		})
	})
}

func TestStore_Arena(t *testing.T) {

	biff.Alternative("Distinct heights", func(a *biff.A) {

		s := New(Options{})
		s.SetRowCount(4, 0, true)
		for i := 0; i < 4; i++ {
			s.SetHeight(float64(10*(i+1)), i)
		}
		s.RebuildOffsets(0)

		heights := func() []float64 {
			result := []float64{}
			for i := 0; i < s.RowCount(); i++ {
				result = append(result, s.HeightForRow(i))
			}
			return result
		}

		a.Alternative("Move down", func(a *biff.A) {
			s.MoveRow(0, 2)
			s.RebuildPending()
			biff.AssertEqual(heights(), []float64{20, 30, 10, 40})
			biff.AssertEqual(s.YOffsetForRow(3), 60.0)
		})

		a.Alternative("Move up", func(a *biff.A) {
			s.MoveRow(3, 1)
			biff.AssertEqual(heights(), []float64{10, 40, 20, 30})
		})

		a.Alternative("Remap", func(a *biff.A) {
			s.Remap([]int{3, -1, 0, 2}, 5)
			s.RebuildPending()

			biff.AssertEqual(heights(), []float64{40, 5, 10, 30})
			biff.AssertFalse(s.IsRowMeasured(1))
			biff.AssertEqual(s.MeasuredRowCount(), 3)
			biff.AssertEqual(s.ContentHeight(), 85.0)
		})

		a.Alternative("Remap keeps the unchanged prefix clean", func(a *biff.A) {
			s.Remap([]int{0, 1, 3}, 5)
			biff.AssertEqual(s.PendingRow(), 2)
			s.RebuildPending()
			biff.AssertEqual(heights(), []float64{10, 20, 40})
		})

		a.Alternative("Append", func(a *biff.A) {
			s.AppendRow(7)
			biff.AssertEqual(s.ContentHeight(), 107.0)
			biff.AssertFalse(s.IsRowMeasured(4))
		})
	})
}

func TestStore_HeightSources(t *testing.T) {

	biff.Alternative("Override wins over measured and estimated", func(a *biff.A) {

		s := New(Options{EstimatedHeight: 10})
		s.SetRowCount(3, 10, false)
		s.MarkRowMeasured(1, 30)
		s.SetHeightOverride(Explicit(map[int]float64{2: 99}))
		s.RebuildPending()

		biff.AssertEqual(s.HeightForRow(0), 10.0)
		biff.AssertEqual(s.HeightForRow(1), 30.0)
		biff.AssertEqual(s.HeightForRow(2), 99.0)
		biff.AssertEqual(s.ContentHeight(), 139.0)

		a.Alternative("Overridden rows skip the measurer", func(a *biff.A) {
			calls := 0
			s.MeasureRowsInRange(Range{Start: 0, End: 3}, func(int) float64 {
				calls++
				return 20
			})
			biff.AssertEqual(calls, 1)
			biff.AssertEqual(s.MeasuredRowCount(), 3)
		})

		a.Alternative("Removing the override", func(a *biff.A) {
			s.SetHeightOverride(nil)
			s.RebuildPending()
			biff.AssertEqual(s.HeightForRow(2), 10.0)
		})
	})

	biff.Alternative("Chain order", func(a *biff.A) {
		chain := Chain(nil, Explicit(map[int]float64{1: 5}), Fixed(8))
		h, ok := chain(1)
		biff.AssertTrue(ok)
		biff.AssertEqual(h, 5.0)
		h, _ = chain(0)
		biff.AssertEqual(h, 8.0)
	})
}

func TestStore_HeaderAndFooter(t *testing.T) {

	biff.Alternative("Footer only counts when floating", func(a *biff.A) {

		s := New(Options{HeaderHeight: 40, FooterHeight: 30})
		s.SetRowCount(2, 10, true)

		biff.AssertEqual(s.YOffsetForRow(0), 40.0)
		biff.AssertEqual(s.FooterHeight(), 0.0)
		biff.AssertEqual(s.ContentHeight(), 60.0)

		a.Alternative("Floating footer", func(a *biff.A) {
			s.SetFooter(30, true)
			biff.AssertEqual(s.ContentHeight(), 90.0)
		})

		a.Alternative("Header change", func(a *biff.A) {
			s.SetHeaderHeight(0)
			s.RebuildPending()
			biff.AssertEqual(s.YOffsetForRow(1), 10.0)
			biff.AssertEqual(s.ContentHeight(), 20.0)
		})
	})

	biff.Alternative("Negative row count clamps to zero", func(a *biff.A) {
		s := New(Options{HeaderHeight: 5, EstimatedHeight: 44})
		s.SetRowCount(-3, 10, true)
		biff.AssertEqual(s.RowCount(), 0)
		biff.AssertEqual(s.ContentHeight(), 5.0)
		biff.AssertEqual(s.RowForYOffset(100), 0)
	})

	biff.Alternative("Negative heights clamp to zero", func(a *biff.A) {
		s := newStore(2, 10)
		s.SetHeight(-4, 0)
		s.RebuildPending()
		biff.AssertEqual(s.HeightForRow(0), 0.0)
		biff.AssertEqual(s.ContentHeight(), 10.0)
	})
}

func TestStore_VisibleRange(t *testing.T) {

	s := newStore(100, 20)

	first, last, ok := s.VisibleRange(0, 100)
	biff.AssertTrue(ok)
	biff.AssertEqual(first, 0)
	biff.AssertEqual(last, 4)

	first, last, _ = s.VisibleRange(30, 100)
	biff.AssertEqual(first, 1)
	biff.AssertEqual(last, 6)

	empty := New(Options{})
	_, _, ok = empty.VisibleRange(0, 100)
	biff.AssertFalse(ok)
}
