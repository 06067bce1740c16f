package window

import (
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/virtualtable/metrics"
)

func newStore(rows int) *metrics.Store {
	s := metrics.New(metrics.Options{EstimatedHeight: 30, IndexMeasured: true})
	s.SetRowCount(rows, 30, false)
	return s
}

func TestWindow_Bounded(t *testing.T) {

	const (
		rows     = 10_000
		viewport = 300.0
		prefetch = 5
		minimum  = 20.0
	)

	s := newStore(rows)
	w := New(s, Options{PrefetchRows: prefetch})

	measurer := func(row int) float64 {
		return minimum + float64(row%3)*10
	}

	viewportRows := int(viewport/minimum) + 1
	bound := viewportRows + 2*prefetch

	scroll := 0.0
	step := 37.0
	for event := 0; event < 10_000; event++ {
		result := w.Update(metrics.Viewport{ScrollOffset: scroll, ViewportHeight: viewport}, measurer)

		biff.AssertTrue(s.MeasuredRowCount() <= bound)
		biff.AssertEqual(s.MeasuredRowCount(), result.Range.Len())

		scroll = result.ScrollOffset + step
		if step > 0 && scroll >= s.ContentHeight()-viewport {
			step = -step
		}
		if step < 0 && scroll <= 0 {
			step = -step
		}
	}

	biff.AssertTrue(s.MeasuredRowCount() > 0)
}

func TestWindow_Compensation(t *testing.T) {

	biff.Alternative("Rows measured taller than the estimate", func(a *biff.A) {

		s := newStore(100)
		w := New(s, Options{PrefetchRows: 2})
		tall := func(row int) float64 { return 50 }

		result := w.Update(metrics.Viewport{ScrollOffset: 1500, ViewportHeight: 90}, tall)
		biff.AssertEqual(result.Range, metrics.Range{Start: 48, End: 55})
		biff.AssertEqual(result.Measured, 7)
		biff.AssertEqual(result.Evicted, 0)
		biff.AssertEqual(result.ScrollOffset, 1540.0)
		biff.AssertEqual(result.ScrollOffset, s.YOffsetForRow(50))

		a.Alternative("Same viewport again", func(a *biff.A) {
			result := w.Update(metrics.Viewport{ScrollOffset: 1540, ViewportHeight: 90}, tall)
			biff.AssertEqual(result.Measured, 0)
			biff.AssertEqual(result.ScrollOffset, 1540.0)
		})

		a.Alternative("Back to the top", func(a *biff.A) {
			result := w.Update(metrics.Viewport{ScrollOffset: 0, ViewportHeight: 90}, tall)
			biff.AssertEqual(result.Evicted, 7)
			biff.AssertEqual(result.ScrollOffset, 0.0)
			biff.AssertFalse(s.IsRowMeasured(50))
			biff.AssertEqual(s.HeightForRow(50), 30.0)
		})

		a.Alternative("Forget", func(a *biff.A) {
			w.Forget([]int{50})
			biff.AssertFalse(s.IsRowMeasured(50))
			biff.AssertEqual(s.MeasuredRowCount(), 6)
		})
	})

	biff.Alternative("Rows measured shorter than the estimate", func(a *biff.A) {

		s := newStore(1000)
		w := New(s, Options{PrefetchRows: 0})
		short := func(row int) float64 { return 10 }

		viewport := metrics.Viewport{ScrollOffset: 0, ViewportHeight: 300}
		result := w.Update(viewport, short)
		biff.AssertEqual(result.ScrollOffset, 0.0)

		first, last, ok := s.VisibleRows(viewport)
		biff.AssertTrue(ok)
		biff.AssertEqual(first, 0)
		biff.AssertEqual(last, 29)
		biff.AssertEqual(len(s.UnmeasuredRowsInRange(metrics.Range{Start: first, End: last + 1})), 0)
		biff.AssertEqual(result.Range, metrics.Range{Start: 0, End: 30})
		biff.AssertEqual(s.MeasuredRowCount(), 30)
		biff.AssertEqual(result.Measured, 30)
	})

	biff.Alternative("Empty store", func(a *biff.A) {
		s := newStore(0)
		w := New(s, Options{PrefetchRows: 2})
		result := w.Update(metrics.Viewport{ScrollOffset: 100, ViewportHeight: 90}, nil)
		biff.AssertEqual(result.ScrollOffset, 0.0)
		biff.AssertEqual(w.Range(), metrics.Range{})
	})
}
