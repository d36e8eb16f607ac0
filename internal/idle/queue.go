package idle

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicHandler is called when a task panics. It receives the task key, the
// panic value and the stack trace.
type PanicHandler func(key string, panicValue any, stack []byte)

// Option configures a Queue.
type Option func(*Queue)

// WithPanicHandler sets the handler for panicking tasks. By default a
// panicking task is dropped silently and the drain continues.
func WithPanicHandler(h PanicHandler) Option {
	return func(q *Queue) {
		q.panicHandler = h
	}
}

type task struct {
	key string
	fn  func()
}

// Queue holds keyed tasks until Drain runs them. It is meant to be drained
// from one goroutine; the mutex only protects against posts from others.
type Queue struct {
	mu      sync.Mutex
	order   []string
	pending map[string]func()

	panicHandler PanicHandler

	// Stats
	posted    atomic.Uint64
	coalesced atomic.Uint64
	ran       atomic.Uint64
	panicked  atomic.Uint64
}

// NewQueue creates an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{pending: make(map[string]func())}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Post schedules fn under key. If key is already pending its task is
// replaced and keeps its place in line.
func (q *Queue) Post(key string, fn func()) {
	if fn == nil {
		return
	}
	q.posted.Add(1)

	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[key]; ok {
		q.coalesced.Add(1)
	} else {
		q.order = append(q.order, key)
	}
	q.pending[key] = fn
}

// Cancel drops a pending task. It reports whether one was pending.
func (q *Queue) Cancel(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[key]; !ok {
		return false
	}
	delete(q.pending, key)
	for i, k := range q.order {
		if k == key {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

// Drain runs the pending tasks in the order their keys were first posted
// and returns how many ran. Tasks posted while draining wait for the next
// Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := make([]task, 0, len(q.order))
	for _, k := range q.order {
		batch = append(batch, task{key: k, fn: q.pending[k]})
	}
	q.order = nil
	q.pending = make(map[string]func())
	q.mu.Unlock()

	for _, t := range batch {
		q.run(t)
	}
	return len(batch)
}

func (q *Queue) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			q.panicked.Add(1)
			if q.panicHandler != nil {
				func() {
					defer func() { _ = recover() }()
					q.panicHandler(t.key, r, debug.Stack())
				}()
			}
		}
	}()
	t.fn()
	q.ran.Add(1)
}

// Pending returns the number of tasks waiting to run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Stats is a snapshot of queue counters.
type Stats struct {
	Posted    uint64
	Coalesced uint64
	Ran       uint64
	Panicked  uint64
}

// Stats returns the queue counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Posted:    q.posted.Load(),
		Coalesced: q.coalesced.Load(),
		Ran:       q.ran.Load(),
		Panicked:  q.panicked.Load(),
	}
}
