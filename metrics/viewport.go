package metrics

// Viewport is the scroll state reported by the host for one update cycle.
type Viewport struct {
	ScrollOffset        float64 `json:"scrollOffset"`
	ViewportHeight      float64 `json:"viewportHeight"`
	IsActivelyScrolling bool    `json:"isActivelyScrolling"`
}

// ClampScroll limits offset to [0, max(0, contentHeight-ViewportHeight)].
func (v Viewport) ClampScroll(offset, contentHeight float64) float64 {
	limit := contentHeight - v.ViewportHeight
	if offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// VisibleRows is VisibleRange for v.
func (s *Store) VisibleRows(v Viewport) (first, last int, ok bool) {
	return s.VisibleRange(v.ScrollOffset, v.ViewportHeight)
}
