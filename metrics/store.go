// Package metrics keeps per-row heights and cumulative vertical offsets for a
// virtualized table.
//
// A Store is an arena of RowMetric records addressed by row index. Mutations
// never rebuild offsets on their own: they lower a pending rebuild point and the
// owner calls RebuildOffsets or RebuildPending, which only walks the suffix that
// changed. Rows whose content changed but whose new height is unknown are kept in
// an ordered dirty set until they are measured again.
//
// A Store is not safe for concurrent use. Measurement callbacks run synchronously
// and must not call back into the Store.
package metrics

import (
	"math"

	"github.com/google/btree"
)

// RowMetric is the layout record of a single row. Height is never negative.
type RowMetric struct {
	Height   float64
	Measured bool
}

type Options struct {
	// EstimatedHeight is reported for rows that are out of range and used as the
	// default height of rows nobody has measured yet.
	EstimatedHeight float64

	HeaderHeight    float64
	FooterHeight    float64
	InterRowSpacing float64

	// FloatingFooter makes FooterHeight contribute to ContentHeight. A footer that
	// does not float is drawn by the host outside the scrolling content.
	FloatingFooter bool

	// IndexMeasured keeps an ordered index of measured rows so that
	// MeasuredRowsOutside does not scan the whole arena. Lazy measurement needs it.
	IndexMeasured bool
}

type Store struct {
	options Options

	rows    []RowMetric
	offsets []float64 // len(rows)+1, offsets[len(rows)] is the bottom of the last row

	// stale is the row from which offsets must be rebuilt, -1 when offsets are clean.
	stale int

	dirty         *btree.BTreeG[int]
	measured      *btree.BTreeG[int]
	measuredCount int

	override HeightSource
	height   HeightSource

	scratch []RowMetric
	inverse []int
}

func New(options Options) *Store {
	s := &Store{
		options: sanitizeOptions(options),
		offsets: make([]float64, 1, 64),
		stale:   -1,
		dirty:   btree.NewOrderedG[int](32),
	}
	if s.options.IndexMeasured {
		s.measured = btree.NewOrderedG[int](32)
	}
	s.offsets[0] = s.options.HeaderHeight
	s.height = Chain(s.override, s.measuredHeight, s.estimatedHeight)
	return s
}

func sanitizeOptions(o Options) Options {
	o.EstimatedHeight = sanitizeHeight(o.EstimatedHeight)
	o.HeaderHeight = sanitizeHeight(o.HeaderHeight)
	o.FooterHeight = sanitizeHeight(o.FooterHeight)
	o.InterRowSpacing = sanitizeHeight(o.InterRowSpacing)
	return o
}

func sanitizeHeight(h float64) float64 {
	if h < 0 || math.IsNaN(h) {
		return 0
	}
	return h
}

func (s *Store) Options() Options {
	return s.options
}

// SetRowCount resets the store to n rows of defaultHeight. Rows start measured
// only when allMeasured is set. Offsets are rebuilt from the header.
func (s *Store) SetRowCount(n int, defaultHeight float64, allMeasured bool) {
	n = clampCount(n)
	defaultHeight = sanitizeHeight(defaultHeight)

	if cap(s.rows) >= n {
		s.rows = s.rows[:n]
	} else {
		s.rows = make([]RowMetric, n)
	}
	for i := range s.rows {
		s.rows[i] = RowMetric{Height: defaultHeight, Measured: allMeasured}
	}

	s.dirty.Clear(true)
	s.measuredCount = 0
	if allMeasured {
		s.measuredCount = n
	}
	if s.measured != nil {
		s.measured.Clear(true)
		if allMeasured {
			for i := 0; i < n; i++ {
				s.measured.ReplaceOrInsert(i)
			}
		}
	}

	s.RebuildOffsets(0)
}

func (s *Store) RowCount() int {
	return len(s.rows)
}

// Row returns a copy of the record at row i.
func (s *Store) Row(i int) (RowMetric, bool) {
	if i < 0 || i >= len(s.rows) {
		return RowMetric{}, false
	}
	return s.rows[i], true
}

// HeightForRow resolves the height of row i through the override, measured and
// estimated sources. Out of range rows report the estimated height.
func (s *Store) HeightForRow(i int) float64 {
	if i < 0 || i >= len(s.rows) {
		return s.options.EstimatedHeight
	}
	h, ok := s.height(i)
	if !ok {
		return s.options.EstimatedHeight
	}
	return h
}

// SetHeight stores h for row i. Offsets are not rebuilt.
func (s *Store) SetHeight(h float64, row int) {
	if row < 0 || row >= len(s.rows) {
		return
	}
	s.rows[row].Height = sanitizeHeight(h)
	s.markStale(row)
}

// SetHeightOverride installs a source that takes precedence over measured and
// estimated heights. Passing nil removes it. All offsets become stale.
func (s *Store) SetHeightOverride(override HeightSource) {
	s.override = override
	s.height = Chain(s.override, s.measuredHeight, s.estimatedHeight)
	s.markStale(0)
}

func (s *Store) measuredHeight(row int) (float64, bool) {
	r := s.rows[row]
	return r.Height, r.Measured
}

func (s *Store) estimatedHeight(row int) (float64, bool) {
	return s.rows[row].Height, true
}

func (s *Store) HeaderHeight() float64 {
	return s.options.HeaderHeight
}

func (s *Store) SetHeaderHeight(h float64) {
	s.options.HeaderHeight = sanitizeHeight(h)
	s.offsets[0] = s.options.HeaderHeight
	s.markStale(0)
}

// FooterHeight is the part of the footer that belongs to the scrolling content:
// zero unless the footer floats.
func (s *Store) FooterHeight() float64 {
	if !s.options.FloatingFooter {
		return 0
	}
	return s.options.FooterHeight
}

func (s *Store) SetFooter(h float64, floating bool) {
	s.options.FooterHeight = sanitizeHeight(h)
	s.options.FloatingFooter = floating
}

func (s *Store) InterRowSpacing() float64 {
	return s.options.InterRowSpacing
}

func (s *Store) SetInterRowSpacing(spacing float64) {
	s.options.InterRowSpacing = sanitizeHeight(spacing)
	s.markStale(0)
}

// ContentHeight is the bottom of the last row plus the contributing footer. It is
// only exact after offsets have been rebuilt.
func (s *Store) ContentHeight() float64 {
	return s.offsets[len(s.offsets)-1] + s.FooterHeight()
}
