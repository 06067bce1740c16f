package service

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/virtualtable/configuration"
	"github.com/fulldump/virtualtable/coordinator"
	"github.com/fulldump/virtualtable/metrics"
	"github.com/fulldump/virtualtable/reconcile"
)

type TableOptions struct {
	Columns            []Column `json:"columns"`
	Lazy               *bool    `json:"lazy,omitempty"`
	EstimatedRowHeight float64  `json:"estimatedRowHeight,omitempty"`
	HeaderHeight       float64  `json:"headerHeight,omitempty"`
	FooterHeight       float64  `json:"footerHeight,omitempty"`
	FloatingFooter     bool     `json:"floatingFooter,omitempty"`
	InterRowSpacing    float64  `json:"interRowSpacing,omitempty"`
	PrefetchRows       int      `json:"prefetchRows,omitempty"`
	FullReloadRatio    float64  `json:"fullReloadRatio,omitempty"`
	LineHeight         float64  `json:"lineHeight,omitempty"`
	ColumnWidth        int      `json:"columnWidth,omitempty"`
}

func (o TableOptions) withDefaults(d configuration.Table) TableOptions {
	if o.Lazy == nil {
		lazy := d.Lazy
		o.Lazy = &lazy
	}
	if o.EstimatedRowHeight <= 0 {
		o.EstimatedRowHeight = d.EstimatedRowHeight
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = d.HeaderHeight
	}
	if o.FooterHeight <= 0 {
		o.FooterHeight = d.FooterHeight
		o.FloatingFooter = o.FloatingFooter || d.FloatingFooter
	}
	if o.InterRowSpacing <= 0 {
		o.InterRowSpacing = d.InterRowSpacing
	}
	if o.PrefetchRows <= 0 {
		o.PrefetchRows = d.PrefetchRows
	}
	if o.FullReloadRatio == 0 {
		o.FullReloadRatio = d.FullReloadRatio
	}
	if o.LineHeight <= 0 {
		o.LineHeight = d.LineHeight
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = d.ColumnWidth
	}
	o.Columns = slices.Clone(o.Columns)
	return o
}

// Table hosts a document set and shows it through a coordinator. Every mutation
// recomputes the visible row sequence (filter, stable sort) and submits it with
// the last viewport reported by the client.
type Table struct {
	mutex sync.Mutex

	id        string
	name      string
	createdAt time.Time
	options   TableOptions
	metrics   *Metrics

	documents map[string]*row
	sequence  int

	filter map[string]any
	sort   Sort

	visible     []*row
	viewport    metrics.Viewport
	coordinator *coordinator.Coordinator[string]
}

type Sort struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

func newTable(name string, options TableOptions, m *Metrics) *Table {
	return &Table{
		name:      name,
		options:   options,
		metrics:   m,
		documents: map[string]*row{},
		coordinator: coordinator.New[string](coordinator.Options{
			Metrics: metrics.Options{
				EstimatedHeight: options.EstimatedRowHeight,
				HeaderHeight:    options.HeaderHeight,
				FooterHeight:    options.FooterHeight,
				FloatingFooter:  options.FloatingFooter,
				InterRowSpacing: options.InterRowSpacing,
			},
			Reconcile: reconcile.Options{
				FullReloadRatio: options.FullReloadRatio,
			},
			Lazy:         *options.Lazy,
			PrefetchRows: options.PrefetchRows,
		}),
	}
}

type TableInfo struct {
	Id            string       `json:"id"`
	Name          string       `json:"name"`
	CreatedAt     time.Time    `json:"createdAt"`
	Documents     int          `json:"documents"`
	Rows          int          `json:"rows"`
	MeasuredRows  int          `json:"measuredRows"`
	ContentHeight float64      `json:"contentHeight"`
	Generation    uint64       `json:"generation"`
	Options       TableOptions `json:"options"`
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Info() TableInfo {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	store := t.coordinator.Store()
	return TableInfo{
		Id:            t.id,
		Name:          t.name,
		CreatedAt:     t.createdAt,
		Documents:     len(t.documents),
		Rows:          store.RowCount(),
		MeasuredRows:  store.MeasuredRowCount(),
		ContentHeight: t.coordinator.ContentHeight(),
		Generation:    t.coordinator.Generation(),
		Options:       t.options,
	}
}

// Upsert inserts documents or replaces the fields of existing ones. A nil
// viewport keeps the last one.
func (t *Table) Upsert(documents []Document, viewport *metrics.Viewport) (coordinator.Update, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	prepared, err := prepare(documents)
	if err != nil {
		return coordinator.Update{}, err
	}
	for _, r := range prepared {
		t.put(r)
	}

	return t.refresh(viewport)
}

// Remove deletes documents by key. Unknown keys are ignored.
func (t *Table) Remove(keys []string, viewport *metrics.Viewport) (coordinator.Update, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, k := range keys {
		delete(t.documents, k)
	}

	return t.refresh(viewport)
}

// Replace swaps the whole document set.
func (t *Table) Replace(documents []Document, viewport *metrics.Viewport) (coordinator.Update, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	prepared, err := prepare(documents)
	if err != nil {
		return coordinator.Update{}, err
	}
	t.documents = make(map[string]*row, len(prepared))
	for _, r := range prepared {
		t.put(r)
	}

	return t.refresh(viewport)
}

// Query changes the filter and the sort order. A nil filter shows every
// document; an empty sort field keeps insertion order.
func (t *Table) Query(filter map[string]any, sort Sort, viewport *metrics.Viewport) (coordinator.Update, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	previousFilter, previousSort := t.filter, t.sort
	t.filter = filter
	t.sort = sort

	u, err := t.refresh(viewport)
	if err != nil {
		t.filter, t.sort = previousFilter, previousSort
	}
	return u, err
}

// Scroll moves the viewport without changing any row.
func (t *Table) Scroll(viewport metrics.Viewport) coordinator.ScrollResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.viewport = viewport
	result := t.coordinator.Scroll(viewport, t.measurer())
	t.viewport.ScrollOffset = result.ScrollOffset
	t.metrics.Evictions.WithLabelValues(t.name).Add(float64(result.Evicted))
	return result
}

type RowLayout struct {
	Key      string         `json:"key"`
	Y        float64        `json:"y"`
	Height   float64        `json:"height"`
	Measured bool           `json:"measured"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// Layout returns the geometry of rows [from, to).
func (t *Table) Layout(from, to int, withFields bool) []RowLayout {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	store := t.coordinator.Store()
	from = max(from, 0)
	to = min(to, store.RowCount())

	result := []RowLayout{}
	for i := from; i < to; i++ {
		l := RowLayout{
			Key:      t.visible[i].Key,
			Y:        store.YOffsetForRow(i),
			Height:   store.HeightForRow(i),
			Measured: store.IsRowMeasured(i),
		}
		if withFields {
			l.Fields = t.visible[i].Fields
		}
		result = append(result, l)
	}
	return result
}

// Viewport is the last viewport the table anchored to.
func (t *Table) Viewport() metrics.Viewport {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.viewport
}

func prepare(documents []Document) ([]*row, error) {
	result := make([]*row, 0, len(documents))
	for _, d := range documents {
		if d.Key == "" {
			return nil, ErrMissingKey
		}
		f, err := fingerprint(d.Fields)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %s", ErrInvalidDocument, d.Key, err.Error())
		}
		result = append(result, &row{Document: d, fingerprint: f})
	}
	return result, nil
}

func (t *Table) put(r *row) {
	if existing, ok := t.documents[r.Key]; ok {
		r.position = existing.position
	} else {
		t.sequence++
		r.position = t.sequence
	}
	t.documents[r.Key] = r
}

func (t *Table) refresh(viewport *metrics.Viewport) (coordinator.Update, error) {
	if viewport != nil {
		t.viewport = *viewport
	}

	visible, err := t.arrange()
	if err != nil {
		return coordinator.Update{}, err
	}

	rows := make([]reconcile.Row[string], len(visible))
	for i, r := range visible {
		rows[i] = reconcile.Row[string]{Key: r.Key, Fingerprint: r.fingerprint}
	}

	t.visible = visible
	u := t.coordinator.Submit(rows, t.viewport, t.measurer())
	t.viewport.ScrollOffset = u.ScrollOffset

	t.metrics.Updates.WithLabelValues(t.name).Inc()
	if u.ChangeSet.FullReload {
		t.metrics.FullReloads.WithLabelValues(t.name).Inc()
	}
	t.metrics.Evictions.WithLabelValues(t.name).Add(float64(u.Evicted))

	return u, nil
}

// arrange filters and sorts the documents into the visible sequence.
func (t *Table) arrange() ([]*row, error) {
	visible := make([]*row, 0, len(t.documents))
	for _, r := range t.documents {
		if len(t.filter) > 0 {
			match, err := connor.Match(t.filter, r.Fields)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, err.Error())
			}
			if !match {
				continue
			}
		}
		visible = append(visible, r)
	}

	slices.SortFunc(visible, func(a, b *row) int {
		return a.position - b.position
	})
	if t.sort.Field != "" {
		slices.SortStableFunc(visible, func(a, b *row) int {
			c := compareValues(a.Fields[t.sort.Field], b.Fields[t.sort.Field])
			if t.sort.Descending {
				return -c
			}
			return c
		})
	}
	return visible, nil
}

func (t *Table) measurer() coordinator.Measurer {
	counter := t.metrics.RowsMeasured.WithLabelValues(t.name)
	return func(i int) float64 {
		counter.Inc()
		if i < 0 || i >= len(t.visible) {
			return t.options.EstimatedRowHeight
		}
		return rowHeight(&t.visible[i].Document, t.options.Columns, t.options.LineHeight, t.options.ColumnWidth)
	}
}
