package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/textops/internal/textops"
)

// Handler runs one action against a document.
type Handler interface {
	Handle(doc textops.Document, args Args) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(doc textops.Document, args Args) Result

// Handle calls f(doc, args).
func (f HandlerFunc) Handle(doc textops.Document, args Args) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(doc, args)
}

// Logger is the logging the registry needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger dispatches are reported to.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry manages handler registration by exact action name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register sets the handler for an action name, replacing any previous one.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for an action name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler for an action, or nil.
func (r *Registry) Get(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has returns true if a handler is registered for the action.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Names returns all registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs an action against doc. An unregistered name gives a
// StatusError result wrapping ErrUnknownAction; a panicking handler gives a
// StatusError result as well.
func (r *Registry) Dispatch(doc textops.Document, action Action) (result Result) {
	h := r.Get(action.Name)
	if h == nil {
		r.logger.Warn("unknown action %q", action.Name)
		return Error(fmt.Errorf("%w: %s", ErrUnknownAction, action.Name))
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("action %s panicked: %v", action.Name, p)
			result = Errorf("action %s panicked: %v", action.Name, p)
		}
	}()

	result = h.Handle(doc, action.Args)
	r.logger.Debug("action %s: %s", action.Name, result.Status)
	return result
}
