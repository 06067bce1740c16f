// Package window measures rows lazily: only the rows around the viewport carry a
// measured height, everything else keeps the estimate.
package window

import (
	"github.com/fulldump/virtualtable/metrics"
)

type Options struct {
	// PrefetchRows are measured above and below the visible rows.
	PrefetchRows int

	// EstimatedHeight is restored on rows that leave the window. Zero means the
	// store's estimated height.
	EstimatedHeight float64
}

type Window struct {
	store   *metrics.Store
	options Options
	current metrics.Range
}

// New wraps store. The store should be created with IndexMeasured so evictions
// do not scan every row.
func New(store *metrics.Store, options Options) *Window {
	if options.PrefetchRows < 0 {
		options.PrefetchRows = 0
	}
	if options.EstimatedHeight <= 0 {
		options.EstimatedHeight = store.Options().EstimatedHeight
	}
	return &Window{
		store:   store,
		options: options,
	}
}

type Result struct {
	Range        metrics.Range
	ScrollOffset float64
	Measured     int
	Evicted      int
}

// maxPasses bounds how many times Update measures again when freshly measured
// rows pull unmeasured rows into the viewport.
const maxPasses = 32

// Update brings the window to viewport. Rows outside the visible range plus the
// prefetch margin go back to the estimate, unmeasured rows inside it are measured
// and offsets are rebuilt from the first row that changed. The returned scroll
// offset keeps the first visible row at the same distance from the viewport top
// as before the heights changed.
//
// Measured rows shorter than the estimate let further rows slide into the
// viewport, so the visible range is computed again after every measurement until
// all visible rows are measured.
func (w *Window) Update(viewport metrics.Viewport, measurer func(row int) float64) Result {
	s := w.store
	s.RebuildPending()

	first, last, ok := s.VisibleRows(viewport)
	if !ok {
		w.current = metrics.Range{}
		return Result{ScrollOffset: viewport.ClampScroll(viewport.ScrollOffset, s.ContentHeight())}
	}
	anchor := first
	delta := s.YOffsetForRow(anchor) - viewport.ScrollOffset

	result := Result{}
	for pass := 0; pass < maxPasses; pass++ {
		r := w.around(first, last)

		evicted := s.MeasuredRowsOutside(r)
		s.MarkRowsUnmeasured(evicted, w.options.EstimatedHeight)
		result.Evicted += len(evicted)

		before := s.MeasuredRowCount()
		s.MeasureRowsInRange(r, measurer)
		result.Measured += s.MeasuredRowCount() - before

		s.RebuildPending()
		w.current = r
		result.Range = r

		viewport.ScrollOffset = viewport.ClampScroll(s.YOffsetForRow(anchor)-delta, s.ContentHeight())
		result.ScrollOffset = viewport.ScrollOffset

		first, last, _ = s.VisibleRows(viewport)
		if len(s.UnmeasuredRowsInRange(metrics.Range{Start: first, End: last + 1})) == 0 {
			break
		}
	}

	return result
}

// around is the visible rows [first, last] plus the prefetch margin.
func (w *Window) around(first, last int) metrics.Range {
	return metrics.Range{
		Start: max(first-w.options.PrefetchRows, 0),
		End:   min(last+1+w.options.PrefetchRows, w.store.RowCount()),
	}
}

// Range is the window applied by the last Update.
func (w *Window) Range() metrics.Range {
	return w.current
}

// Forget sends rows back to the estimate so they are measured again the next
// time they become visible.
func (w *Window) Forget(rows []int) {
	w.store.MarkRowsUnmeasured(rows, w.options.EstimatedHeight)
}

func (w *Window) Options() Options {
	return w.options
}
