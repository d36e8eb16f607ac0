package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/textops/internal/command"
)

// Metrics counts action runs and their timing.
type Metrics struct {
	mu      sync.RWMutex
	actions map[string]*actionCounters

	// Start time for uptime calculation
	startTime time.Time
}

type actionCounters struct {
	runs    uint64
	changed uint64
	noop    uint64
	failed  uint64
	total   time.Duration
	max     time.Duration
}

// ActionSnapshot is a point-in-time copy of one action's counters.
type ActionSnapshot struct {
	Name    string
	Runs    uint64
	Changed uint64
	NoOp    uint64
	Failed  uint64
	Total   time.Duration
	Max     time.Duration
}

// Avg returns the mean run time.
func (s ActionSnapshot) Avg() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Runs)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Actions []ActionSnapshot
	Uptime  time.Duration
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		actions:   make(map[string]*actionCounters),
		startTime: time.Now(),
	}
}

// RecordAction records one dispatch of name.
func (m *Metrics) RecordAction(name string, status command.Status, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.actions[name]
	if !ok {
		c = &actionCounters{}
		m.actions[name] = c
	}

	c.runs++
	c.total += d
	if d > c.max {
		c.max = d
	}
	switch status {
	case command.StatusOK:
		c.changed++
	case command.StatusNoOp:
		c.noop++
	default:
		c.failed++
	}
}

// Snapshot returns the counters sorted by action name.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		Actions: make([]ActionSnapshot, 0, len(m.actions)),
		Uptime:  time.Since(m.startTime),
	}
	for name, c := range m.actions {
		snap.Actions = append(snap.Actions, ActionSnapshot{
			Name:    name,
			Runs:    c.runs,
			Changed: c.changed,
			NoOp:    c.noop,
			Failed:  c.failed,
			Total:   c.total,
			Max:     c.max,
		})
	}
	sort.Slice(snap.Actions, func(i, j int) bool {
		return snap.Actions[i].Name < snap.Actions[j].Name
	})
	return snap
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = make(map[string]*actionCounters)
	m.startTime = time.Now()
}
