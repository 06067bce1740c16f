// Package coordinator applies successive row sequences to a metrics store. Every
// submission is diffed against the previous one, applied to the store and
// anchored so the content under the viewport does not jump.
//
// A Coordinator is the single writer of its store. Submissions are applied in
// call order and it is not safe for concurrent use.
package coordinator

import (
	"github.com/fulldump/virtualtable/anchor"
	"github.com/fulldump/virtualtable/metrics"
	"github.com/fulldump/virtualtable/reconcile"
	"github.com/fulldump/virtualtable/window"
)

// Measurer returns the height of a row of the current sequence. It may be
// expensive and must not call back into the coordinator.
type Measurer func(row int) float64

type Options struct {
	Metrics   metrics.Options
	Reconcile reconcile.Options

	// Lazy measures only the rows around the viewport. Otherwise every row is
	// measured as soon as it appears or changes.
	Lazy         bool
	PrefetchRows int
}

// Update describes one applied submission to the rendering layer. Deletes, moves
// and inserts are meant to be committed in that order before ScrollOffset.
type Update struct {
	Generation    uint64              `json:"generation"`
	ChangeSet     reconcile.ChangeSet `json:"changes"`
	ContentHeight float64             `json:"contentHeight"`
	ScrollOffset  float64             `json:"scrollOffset"`
	Anchored      bool                `json:"anchored"`

	// Evicted counts the measured rows the lazy window gave back to the estimate.
	Evicted int `json:"-"`
}

// ScrollResult is the outcome of Scroll.
type ScrollResult struct {
	ScrollOffset  float64
	ContentHeight float64
	Window        metrics.Range
	Evicted       int
}

type Coordinator[K comparable] struct {
	options Options

	store  *metrics.Store
	window *window.Window
	anchor anchor.Controller[K]

	rows []reconcile.Row[K]
	keys []K

	generation uint64
}

func New[K comparable](options Options) *Coordinator[K] {
	if options.Lazy {
		options.Metrics.IndexMeasured = true
	}

	c := &Coordinator[K]{
		options: options,
		store:   metrics.New(options.Metrics),
	}
	if options.Lazy {
		c.window = window.New(c.store, window.Options{
			PrefetchRows: options.PrefetchRows,
		})
	}
	return c
}

// Submit replaces the current row sequence with rows. The generation counter is
// incremented before anything else so completion callbacks of the previous
// update can be recognized as stale.
func (c *Coordinator[K]) Submit(rows []reconcile.Row[K], viewport metrics.Viewport, measurer Measurer) Update {
	c.generation++
	measurer = c.fallback(measurer)

	cs := reconcile.DiffWith(c.rows, rows, c.options.Reconcile)
	c.anchor.Capture(c.store, c.keys, viewport)

	oldCount := len(c.rows)
	keys := keysOf(rows)
	c.apply(&cs, measurer)
	c.rows = rows
	c.keys = keys

	var restored anchor.Result
	if cs.IsStructural() {
		restored = c.anchor.Restore(c.store, keys, cs.Survivors(oldCount), viewport)
	} else {
		restored = c.anchor.RestoreHeightsOnly(c.store, cs.Updates, viewport)
	}

	offset, evicted := c.follow(restored.ScrollOffset, viewport, measurer)

	return Update{
		Generation:    c.generation,
		ChangeSet:     cs,
		ContentHeight: c.store.ContentHeight(),
		ScrollOffset:  offset,
		Anchored:      restored.Anchored,
		Evicted:       evicted,
	}
}

func (c *Coordinator[K]) apply(cs *reconcile.ChangeSet, measurer Measurer) {
	s := c.store
	estimated := s.Options().EstimatedHeight
	n := len(cs.Origins)

	if cs.FullReload {
		s.SetRowCount(n, estimated, false)
		if c.window == nil {
			s.MeasureRowsInRange(metrics.Range{Start: 0, End: n}, measurer)
		}
		s.RebuildPending()
		return
	}

	if cs.IsStructural() {
		s.Remap(cs.Origins, estimated)
	}

	s.InvalidateRows(cs.Updates)
	for _, m := range cs.Moves {
		if m.Changed {
			s.InvalidateRows([]int{m.To})
		}
	}

	if c.window != nil {
		s.DemoteDirtyRows(estimated)
	} else {
		for _, j := range cs.Inserts {
			s.MeasureRowsInRange(metrics.Range{Start: j, End: j + 1}, measurer)
		}
		s.RecomputeDirtyHeights(measurer)
	}
	s.RebuildPending()
}

// Scroll follows the viewport without changing the row sequence. In lazy mode
// the measurement window moves with it and the returned offset is compensated
// for the heights that changed above the first visible row.
func (c *Coordinator[K]) Scroll(viewport metrics.Viewport, measurer Measurer) ScrollResult {
	if c.window == nil {
		c.store.RebuildPending()
		result := ScrollResult{
			ScrollOffset:  viewport.ClampScroll(viewport.ScrollOffset, c.store.ContentHeight()),
			ContentHeight: c.store.ContentHeight(),
		}
		if first, last, ok := c.store.VisibleRows(viewport); ok {
			result.Window = metrics.Range{Start: first, End: last + 1}
		}
		return result
	}
	r := c.window.Update(viewport, c.fallback(measurer))
	return ScrollResult{
		ScrollOffset:  r.ScrollOffset,
		ContentHeight: c.store.ContentHeight(),
		Window:        r.Range,
		Evicted:       r.Evicted,
	}
}

// follow moves the lazy window to the restored offset.
func (c *Coordinator[K]) follow(offset float64, viewport metrics.Viewport, measurer Measurer) (float64, int) {
	if c.window == nil {
		return offset, 0
	}
	viewport.ScrollOffset = offset
	r := c.window.Update(viewport, measurer)
	return r.ScrollOffset, r.Evicted
}

// Invalidate marks rows whose content changed outside of a submission. Their
// heights are measured again (or, in lazy mode, on their next visit) and the
// viewport stays anchored.
func (c *Coordinator[K]) Invalidate(rows []int, viewport metrics.Viewport, measurer Measurer) Update {
	c.generation++
	measurer = c.fallback(measurer)

	n := c.store.RowCount()
	valid := []int{}
	for _, i := range rows {
		if i >= 0 && i < n {
			valid = append(valid, i)
		}
	}
	rows = valid

	c.anchor.Capture(c.store, c.keys, viewport)

	c.store.InvalidateRows(rows)
	if c.window != nil {
		c.store.DemoteDirtyRows(c.store.Options().EstimatedHeight)
	} else {
		c.store.RecomputeDirtyHeights(measurer)
	}
	c.store.RebuildPending()

	restored := c.anchor.RestoreHeightsOnly(c.store, rows, viewport)
	offset, evicted := c.follow(restored.ScrollOffset, viewport, measurer)

	return Update{
		Generation:    c.generation,
		ChangeSet:     reconcile.ChangeSet{Updates: rows},
		ContentHeight: c.store.ContentHeight(),
		ScrollOffset:  offset,
		Anchored:      restored.Anchored,
		Evicted:       evicted,
	}
}

// MarkUnmeasured sends rows back to fallbackHeight; they are measured again when
// they become visible.
func (c *Coordinator[K]) MarkUnmeasured(rows []int, fallbackHeight float64) {
	c.store.MarkRowsUnmeasured(rows, fallbackHeight)
	c.store.RebuildPending()
}

func (c *Coordinator[K]) Generation() uint64 {
	return c.generation
}

// IsCurrent reports whether generation belongs to the latest update. Hosts drop
// completion callbacks for which it returns false.
func (c *Coordinator[K]) IsCurrent(generation uint64) bool {
	return generation == c.generation
}

func (c *Coordinator[K]) ContentHeight() float64 {
	return c.store.ContentHeight()
}

// Store exposes the metrics for reading between updates.
func (c *Coordinator[K]) Store() *metrics.Store {
	return c.store
}

func (c *Coordinator[K]) Rows() []reconcile.Row[K] {
	return c.rows
}

func (c *Coordinator[K]) Keys() []K {
	return c.keys
}

func (c *Coordinator[K]) fallback(measurer Measurer) Measurer {
	if measurer != nil {
		return measurer
	}
	estimated := c.store.Options().EstimatedHeight
	return func(int) float64 {
		return estimated
	}
}

func keysOf[K comparable](rows []reconcile.Row[K]) []K {
	keys := make([]K, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	return keys
}
