// Package anchor keeps the row under the top of the viewport visually still
// while the rows around it are inserted, deleted, moved or resized.
//
// A Controller is used once per update cycle: Capture before the change is
// applied to the layout, then Restore (or RestoreHeightsOnly) after the layout
// has been rebuilt.
package anchor

import (
	"github.com/fulldump/virtualtable/metrics"
)

// Layout is the read side of a metrics.Store.
type Layout interface {
	RowCount() int
	YOffsetForRow(i int) float64
	RowForYOffset(y float64) int
	ContentHeight() float64
}

var _ Layout = (*metrics.Store)(nil)

// Anchor remembers a row by key together with its distance to the top of the
// viewport.
type Anchor[K comparable] struct {
	Key                  K       `json:"key"`
	IndexBefore          int     `json:"indexBefore"`
	DeltaFromViewportTop float64 `json:"deltaFromViewportTop"`
}

type Controller[K comparable] struct {
	anchor   Anchor[K]
	captured bool

	// scrollOffset at capture time, returned untouched when there is no anchor.
	scrollOffset float64
}

// Capture records the anchor for the layout before an update. keys[i] is the
// key of row i in that layout. Nothing is captured while the user is actively
// scrolling, or when there are no rows, and the cycle becomes a passthrough.
func (c *Controller[K]) Capture(layout Layout, keys []K, viewport metrics.Viewport) bool {
	c.captured = false
	c.scrollOffset = viewport.ScrollOffset

	if viewport.IsActivelyScrolling {
		return false
	}
	n := layout.RowCount()
	if n == 0 || len(keys) < n {
		return false
	}

	row := layout.RowForYOffset(viewport.ScrollOffset)
	c.anchor = Anchor[K]{
		Key:                  keys[row],
		IndexBefore:          row,
		DeltaFromViewportTop: layout.YOffsetForRow(row) - viewport.ScrollOffset,
	}
	c.captured = true
	return true
}

// Anchor returns the captured anchor, if any.
func (c *Controller[K]) Anchor() (Anchor[K], bool) {
	return c.anchor, c.captured
}

// Reset drops the captured anchor.
func (c *Controller[K]) Reset() {
	c.captured = false
}

// Result is the outcome of a restore.
type Result struct {
	ScrollOffset float64
	Row          int  // new index of the row the offset is anchored to, -1 if none
	Anchored     bool // false for a passthrough cycle
	Fallback     bool // the anchor row was deleted and a neighbour was used
}

// Restore computes the scroll offset that keeps the anchor in place on the
// rebuilt layout. newKeys is the new row sequence. survivors maps every old
// index to its new index or -1, as returned by reconcile.ChangeSet.Survivors; it
// may be nil, in which case a deleted anchor row falls back to its old index.
//
// viewport.ScrollOffset is ignored: the offset recorded at capture time is the
// reference.
func (c *Controller[K]) Restore(layout Layout, newKeys []K, survivors []int, viewport metrics.Viewport) Result {
	if !c.captured {
		return c.passthrough(layout, viewport)
	}
	c.captured = false

	n := layout.RowCount()
	if n == 0 {
		return Result{ScrollOffset: 0, Row: -1, Anchored: true}
	}

	row, found := c.find(newKeys, survivors, n)
	if !found {
		row = c.fallback(survivors, n)
	}

	offset := layout.YOffsetForRow(row) - c.anchor.DeltaFromViewportTop
	return Result{
		ScrollOffset: viewport.ClampScroll(offset, layout.ContentHeight()),
		Row:          row,
		Anchored:     true,
		Fallback:     !found,
	}
}

// RestoreHeightsOnly is the cheap restore for updates that only changed row
// heights and kept the row sequence. changed lists the rows whose height
// changed. Only rows strictly before the anchor move it.
func (c *Controller[K]) RestoreHeightsOnly(layout Layout, changed []int, viewport metrics.Viewport) Result {
	if !c.captured {
		return c.passthrough(layout, viewport)
	}
	c.captured = false

	row := c.anchor.IndexBefore
	offset := c.scrollOffset

	shift := false
	for _, i := range changed {
		if i <= row {
			shift = true
			break
		}
	}
	if shift {
		offset = layout.YOffsetForRow(row) - c.anchor.DeltaFromViewportTop
	}

	return Result{
		ScrollOffset: viewport.ClampScroll(offset, layout.ContentHeight()),
		Row:          row,
		Anchored:     true,
	}
}

func (c *Controller[K]) passthrough(layout Layout, viewport metrics.Viewport) Result {
	return Result{
		ScrollOffset: viewport.ClampScroll(viewport.ScrollOffset, layout.ContentHeight()),
		Row:          -1,
	}
}

func (c *Controller[K]) find(newKeys []K, survivors []int, n int) (int, bool) {
	old := c.anchor.IndexBefore
	if old < len(survivors) {
		if j := survivors[old]; j >= 0 && j < n && j < len(newKeys) && newKeys[j] == c.anchor.Key {
			return j, true
		}
		if survivors[old] < 0 {
			return 0, false
		}
	}
	for j, k := range newKeys {
		if j >= n {
			break
		}
		if k == c.anchor.Key {
			return j, true
		}
	}
	return 0, false
}

// fallback picks the nearest surviving neighbour of the deleted anchor row,
// walking predecessors first and successors second.
func (c *Controller[K]) fallback(survivors []int, n int) int {
	old := c.anchor.IndexBefore
	if old > len(survivors) {
		old = len(survivors)
	}
	for i := old - 1; i >= 0; i-- {
		if j := survivors[i]; j >= 0 && j < n {
			return j
		}
	}
	for i := old + 1; i < len(survivors); i++ {
		if j := survivors[i]; j >= 0 && j < n {
			return j
		}
	}
	return min(max(c.anchor.IndexBefore, 0), n-1)
}
