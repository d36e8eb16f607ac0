// Package app wires the text operations into a host: configuration,
// logging, the action registry, the idle queue, statistics monitors and the
// Lua script runner. The command line tool is a thin layer over it.
package app

import (
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/dshills/textops/internal/charset"
	"github.com/dshills/textops/internal/command"
	"github.com/dshills/textops/internal/config"
	"github.com/dshills/textops/internal/config/watcher"
	"github.com/dshills/textops/internal/engine"
	"github.com/dshills/textops/internal/idle"
	"github.com/dshills/textops/internal/plugin/lua"
	"github.com/dshills/textops/internal/stats"
)

// App holds the shared services every document operation runs against.
type App struct {
	mu sync.Mutex

	config   *config.Config
	logger   *Logger
	registry *command.Registry
	queue    *idle.Queue
	metrics  *Metrics

	reload *config.Watcher

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses defaults
	// and the environment only.
	ConfigPath string

	// LogLevel overrides logging.level from the configuration.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ScriptOutput receives Lua print output. Defaults to os.Stdout.
	ScriptOutput io.Writer

	// Detector replaces the statistical encoding detector.
	Detector charset.Detector
}

// New creates an App, loading the configuration first. A configuration
// file that exists but cannot be parsed is an error.
func New(opts Options) (*App, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.ScriptOutput == nil {
		opts.ScriptOutput = os.Stdout
	}

	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(opts.ConfigPath))
	}
	cfg := config.New(cfgOpts...)
	if err := cfg.Load(); err != nil {
		return nil, NewOperationError("config", opts.ConfigPath, err)
	}

	a := &App{
		config:  cfg,
		metrics: NewMetrics(),
		opts:    opts,
	}

	logCfg := DefaultLoggerConfig()
	logCfg.Output = opts.LogOutput
	logCfg.Level = ParseLogLevel(a.logLevel())
	a.logger = NewLogger(logCfg)

	a.warnConfigErrors()

	a.registry = command.NewDefaultRegistry(
		command.WithLogger(a.logger.WithComponent("command")),
	)

	idleLog := a.logger.WithComponent("idle")
	a.queue = idle.NewQueue(idle.WithPanicHandler(func(key string, v any, stack []byte) {
		idleLog.Error("task %s panicked: %v\n%s", key, v, stack)
	}))

	return a, nil
}

func (a *App) logLevel() string {
	if a.opts.LogLevel != "" {
		return a.opts.LogLevel
	}
	return a.config.Logging().Level
}

func (a *App) warnConfigErrors() {
	errs := a.config.Check()
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		a.logger.Warn("config %s: %v, using default", path, errs[path])
	}
}

// Config returns the configuration.
func (a *App) Config() *config.Config { return a.config }

// Logger returns the root logger.
func (a *App) Logger() *Logger { return a.logger }

// Registry returns the action registry.
func (a *App) Registry() *command.Registry { return a.registry }

// Metrics returns the action metrics.
func (a *App) Metrics() *Metrics { return a.metrics }

// Queue returns the idle queue.
func (a *App) Queue() *idle.Queue { return a.queue }

// CharsetOptions returns the options decoding and redecoding use.
func (a *App) CharsetOptions() []charset.Option {
	if a.opts.Detector == nil {
		return nil
	}
	return []charset.Option{charset.WithDetector(a.opts.Detector)}
}

func (a *App) encodingOr(label string) string {
	if label != "" {
		return label
	}
	return a.config.Encoding().Default
}

// Open loads a file in the named encoding, or the configured default when
// label is empty.
func (a *App) Open(path, label string) (*Document, error) {
	doc, err := OpenDocument(path, a.encodingOr(label), a.CharsetOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opened %s", doc)
	return doc, nil
}

// Read loads a scratch document from r.
func (a *App) Read(name string, r io.Reader, label string) (*Document, error) {
	doc, err := ReadDocument(name, r, a.encodingOr(label), a.CharsetOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("read %s", doc)
	return doc, nil
}

// DefaultArgs returns action arguments filled from the configuration.
func (a *App) DefaultArgs() command.Args {
	lines := a.config.Lines()
	enc := a.config.Encoding()
	return command.Args{
		CaseSensitive: lines.CaseSensitive,
		Offset:        lines.Offset,
		Spaces:        lines.JoinWithSpaces,
		Keep:          a.config.Percent().KeepUnencoded,
		Transliterate: enc.Transliterate,
	}
}

// Run dispatches action against doc and records its timing.
func (a *App) Run(doc *Document, action command.Action) command.Result {
	start := time.Now()
	res := a.registry.Dispatch(doc.Engine, action)
	elapsed := time.Since(start)
	a.metrics.RecordAction(action.Name, res.Status, elapsed)

	log := a.logger.WithFields(map[string]any{
		"action":   action.Name,
		"document": doc.Name,
	})
	if res.IsError() {
		log.Warn("failed: %v", res.Error)
	} else {
		log.Debug("%s in %v", res.Status, elapsed)
	}
	return res
}

// RunScript runs a Lua file with the textops table bound to doc. The run is
// bounded by plugins.timeout.
func (a *App) RunScript(doc *Document, path string) error {
	log := a.logger.WithComponent("lua")
	s, err := lua.NewState(
		lua.WithExecutionTimeout(a.config.Plugins().Timeout),
		lua.WithOutput(a.opts.ScriptOutput),
		lua.WithLogger(log),
	)
	if err != nil {
		return NewOperationError("script", path, err)
	}
	defer s.Close()

	if err := s.Bind(doc.Engine, a.registry); err != nil {
		return NewOperationError("script", path, err)
	}

	start := time.Now()
	if err := s.DoFile(path); err != nil {
		return NewOperationError("script", path, err)
	}
	log.Debug("ran %s in %v", path, time.Since(start))
	return nil
}

// Stats computes statistics for doc now.
func (a *App) Stats(doc *Document) stats.Report {
	return stats.Compute(doc.Engine)
}

// Monitor attaches a statistics monitor to doc. Edits and cursor moves post
// recounts to the idle queue; Idle runs them.
func (a *App) Monitor(doc *Document, onUpdate func(stats.Report)) *stats.Monitor {
	m := stats.NewMonitor(doc.Engine, a.queue,
		stats.WithLiveThreshold(a.config.Stats().LiveThreshold),
		stats.WithUpdate(onUpdate),
	)
	doc.Engine.Subscribe(func(kind engine.ChangeKind) {
		switch kind {
		case engine.ChangeText:
			m.DocumentChanged()
		case engine.ChangeCursor:
			m.CursorMoved()
		}
	})
	if !m.Attach() {
		a.logger.Info("%s is too large for live statistics", doc.Name)
	}
	return m
}

// Idle runs the pending idle tasks and returns how many ran.
func (a *App) Idle() int {
	return a.queue.Drain()
}

// WatchConfig reloads the configuration when its file changes. The log
// level follows the file unless it was set in Options.
func (a *App) WatchConfig() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.reload != nil {
		return nil
	}

	log := a.logger.WithComponent("config")
	w, err := config.NewWatcher(a.config, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("reload failed, keeping previous settings: %v", err)
			return
		}
		a.logger.SetLevel(ParseLogLevel(a.logLevel()))
		a.warnConfigErrors()
		log.Info("reloaded %s", cfg.Path())
	}, watcher.WithDebounce(a.config.Watch().Debounce))
	if err != nil {
		return err
	}
	a.reload = w
	return nil
}

// Close stops the configuration watcher, if any.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.reload == nil {
		return nil
	}
	err := a.reload.Close()
	a.reload = nil
	return err
}
