package stats

import (
	"sync"

	"github.com/dshills/textops/internal/idle"
)

// DefaultLiveThreshold is the document length, in characters, from which
// text changes no longer trigger a recount.
const DefaultLiveThreshold = 300000

const (
	keyDocument  = "stats.document"
	keySelection = "stats.selection"
)

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithLiveThreshold sets the live recount limit. Non-positive values keep
// the default.
func WithLiveThreshold(n int) MonitorOption {
	return func(m *Monitor) {
		if n > 0 {
			m.threshold = n
		}
	}
}

// WithUpdate registers a callback that receives every new report.
func WithUpdate(fn func(Report)) MonitorOption {
	return func(m *Monitor) {
		m.onUpdate = fn
	}
}

// Monitor keeps a report current while a document is edited. Change and
// cursor notifications only post work to an idle queue; the counts are
// recomputed when the host drains it.
type Monitor struct {
	doc   Document
	queue *idle.Queue

	threshold int
	onUpdate  func(Report)

	mu     sync.Mutex
	live   bool
	report Report
}

// NewMonitor creates a monitor for doc that schedules work on q.
func NewMonitor(doc Document, q *idle.Queue, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		doc:       doc,
		queue:     q,
		threshold: DefaultLiveThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach computes a first report and decides whether text changes refresh
// it automatically: only documents shorter than the threshold do. Cursor
// moves always refresh the selection counts. It returns the live flag.
func (m *Monitor) Attach() bool {
	live := m.doc.Len() < m.threshold
	m.mu.Lock()
	m.live = live
	m.mu.Unlock()
	m.Refresh()
	return live
}

// Live reports whether text changes trigger a recount.
func (m *Monitor) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// DocumentChanged schedules a full recount if the monitor is live.
func (m *Monitor) DocumentChanged() {
	if !m.Live() {
		return
	}
	m.queue.Post(keyDocument, func() { m.Refresh() })
}

// CursorMoved schedules a recount of the selection.
func (m *Monitor) CursorMoved() {
	m.queue.Post(keySelection, m.refreshSelection)
}

// Refresh recomputes everything now and returns the new report.
func (m *Monitor) Refresh() Report {
	r := Compute(m.doc)
	m.publish(func(cur *Report) { *cur = r })
	return r
}

// Report returns the most recent report.
func (m *Monitor) Report() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report
}

func (m *Monitor) refreshSelection() {
	sel := selection(m.doc)
	m.publish(func(cur *Report) { cur.Selection = sel })
}

func (m *Monitor) publish(update func(*Report)) {
	m.mu.Lock()
	update(&m.report)
	r := m.report
	m.mu.Unlock()

	if m.onUpdate != nil {
		m.onUpdate(r)
	}
}
