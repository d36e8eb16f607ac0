package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/dshills/textops/internal/app"
	"github.com/dshills/textops/internal/charset"
	"github.com/dshills/textops/internal/colorpick"
	"github.com/dshills/textops/internal/command"
	"github.com/dshills/textops/internal/config"
	"github.com/dshills/textops/internal/config/watcher"
	"github.com/dshills/textops/internal/plugin/lua"
	"github.com/dshills/textops/internal/stats"
)

// previewWidth is how many characters of each preview line are shown.
const previewWidth = 60

type cli struct {
	app    *app.App
	opts   *options
	stdin  io.Reader
	stdout io.Writer
	log    *app.Logger

	// stop ends watch mode; nil waits for a signal only.
	stop <-chan struct{}
}

// eachDocument opens every file, or stdin when there are none, positions
// the caret and calls fn.
func (c *cli) eachDocument(files []string, fn func(*app.Document) error) error {
	if len(files) == 0 {
		doc, err := c.app.Read("<stdin>", c.stdin, c.opts.encoding)
		if err != nil {
			return err
		}
		if err := c.position(doc); err != nil {
			return err
		}
		return fn(doc)
	}

	for _, path := range files {
		doc, err := c.app.Open(path, c.opts.encoding)
		if err != nil {
			return err
		}
		if err := c.position(doc); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) position(doc *app.Document) error {
	if c.opts.selection != "" {
		start, end, err := parseSelection(c.opts.selection)
		if err != nil {
			return err
		}
		doc.Engine.SetSelection(start, end)
		return nil
	}
	if c.opts.cursor >= 0 {
		doc.Engine.SetCursor(c.opts.cursor)
	}
	return nil
}

// emit saves doc with -w, or writes it to stdout.
func (c *cli) emit(doc *app.Document) error {
	if c.opts.write && !doc.IsScratch() {
		if !doc.IsModified() {
			c.log.Debug("%s unchanged", doc.Name)
			return nil
		}
		if err := doc.Save(); err != nil {
			return err
		}
		c.log.Info("wrote %s", doc.Path)
		return nil
	}
	_, err := doc.WriteTo(c.stdout)
	return err
}

func (c *cli) args() command.Args {
	return c.opts.actionArgs(c.app.DefaultArgs())
}

func (c *cli) runAction(name string, files []string) error {
	if !c.app.Registry().Has(name) {
		return fmt.Errorf("%w: %s (see 'textops actions')", command.ErrUnknownAction, name)
	}
	action := command.Action{Name: name, Args: c.args()}

	return c.eachDocument(files, func(doc *app.Document) error {
		res := c.app.Run(doc, action)
		if res.IsError() {
			return fmt.Errorf("%s: %w", doc.Name, res.Error)
		}
		return c.emit(doc)
	})
}

func (c *cli) listActions() error {
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tLUA")
	for _, name := range c.app.Registry().Names() {
		fmt.Fprintf(w, "%s\ttextops.%s\n", name, lua.FuncName(name))
	}
	return w.Flush()
}

func (c *cli) language() string {
	if c.opts.lang != "" {
		return c.opts.lang
	}
	return c.app.Config().Encoding().Language
}

func (c *cli) listEncodings() error {
	for _, name := range charset.SupportedEncodings(c.language()) {
		if _, err := fmt.Fprintln(c.stdout, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) isTerminal() bool {
	f, ok := c.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *cli) stats(files []string) error {
	table := !c.opts.json && c.isTerminal()
	many := len(files) > 1

	return c.eachDocument(files, func(doc *app.Document) error {
		report := c.app.Stats(doc)
		if table {
			if many {
				fmt.Fprintf(c.stdout, "%s\n", doc.Name)
			}
			_, err := io.WriteString(c.stdout, stats.FormatTable(report))
			return err
		}

		js, err := stats.FormatJSON(report)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout, js)
		return err
	})
}

func (c *cli) runScript(files []string) error {
	if c.opts.script == "" {
		return errors.New("script: -script is required")
	}
	return c.eachDocument(files, func(doc *app.Document) error {
		if err := c.app.RunScript(doc, c.opts.script); err != nil {
			return err
		}
		return c.emit(doc)
	})
}

// preview shows the first line of each document as it would read under
// every supported encoding, or the whole text under -to. The document is
// left as it was.
func (c *cli) preview(files []string) error {
	translit := c.args().Transliterate

	return c.eachDocument(files, func(doc *app.Document) error {
		p := charset.NewPreview(doc.Engine, c.app.CharsetOptions()...)
		defer p.Cancel()

		if target := c.opts.args.Encoding; target != "" {
			p.Apply(target, translit)
			_, err := io.WriteString(c.stdout, doc.Content()+"\n")
			return err
		}

		w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		for _, name := range charset.SupportedEncodings(c.language()) {
			p.Apply(string(name), translit)
			fmt.Fprintf(w, "%s\t%s\n", name, firstLine(doc.Content(), previewWidth))
		}
		return w.Flush()
	})
}

func firstLine(text string, width int) string {
	line, _, _ := strings.Cut(text, "\n")
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-1]) + "…"
}

func (c *cli) color(args []string) error {
	if len(args) == 0 {
		return errors.New("color: missing color")
	}
	col, err := colorpick.Parse(args[0])
	if err != nil {
		return err
	}

	var text string
	switch c.opts.format {
	case "hex":
		text = colorpick.Hex(col, colorpick.Options{Alpha: c.opts.alpha, Upper: c.opts.upper})
	case "rgba", "rgb":
		text = colorpick.RGBA(col)
	case "cmyk":
		text = colorpick.CMYK(col, colorpick.ParseScale(c.opts.scale))
	default:
		return fmt.Errorf("color: unknown format %q", c.opts.format)
	}

	files := args[1:]
	if len(files) == 0 {
		_, err := fmt.Fprintln(c.stdout, text)
		return err
	}
	return c.eachDocument(files, func(doc *app.Document) error {
		if err := colorpick.Insert(doc.Engine, text); err != nil {
			return err
		}
		return c.emit(doc)
	})
}

// watch applies the watch action to each file after every save until
// interrupted.
func (c *cli) watch(files []string) error {
	if len(files) == 0 {
		return errors.New("watch: no files")
	}

	name := c.opts.action
	if name == "" {
		name = c.app.Config().Watch().Action
	}
	if !c.app.Registry().Has(name) {
		return fmt.Errorf("%w: %s", command.ErrUnknownAction, name)
	}

	if err := c.app.WatchConfig(); err != nil && !errors.Is(err, config.ErrNoFile) {
		c.log.Warn("not watching configuration: %v", err)
	}

	fw := watcher.New(watcher.WithDebounce(c.app.Config().Watch().Debounce))
	for _, path := range files {
		if err := fw.Watch(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	events := make(chan watcher.Event, 16)
	fw.OnChange(func(ev watcher.Event) { events <- ev })
	fw.OnError(func(err error) { c.log.Warn("watch: %v", err) })
	if err := fw.Start(); err != nil {
		return err
	}
	defer fw.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	c.log.Info("watching %d file(s), applying %s", len(files), name)
	for {
		select {
		case ev := <-events:
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				c.log.Debug("%s: %s", ev.Path, ev.Op)
				continue
			}
			if err := c.applyOnSave(ev.Path, name); err != nil {
				c.log.Warn("%v", err)
			}
		case <-signals:
			return nil
		case <-c.stop:
			return nil
		}
	}
}

// applyOnSave runs action on a saved file and writes it back if that
// changed anything. The write is seen again, but then the action is a no-op.
func (c *cli) applyOnSave(path, action string) error {
	doc, err := c.app.Open(path, c.opts.encoding)
	if err != nil {
		return err
	}

	args := c.args()
	args.OnSave = true
	res := c.app.Run(doc, command.Action{Name: action, Args: args})
	switch {
	case res.IsError():
		return fmt.Errorf("%s: %w", doc.Name, res.Error)
	case !res.IsOK():
		return nil
	}

	if err := doc.Save(); err != nil {
		return err
	}
	c.log.Info("applied %s to %s", action, doc.Path)
	return nil
}

func (c *cli) logMetrics() {
	log := c.app.Logger().WithComponent("metrics")
	for _, s := range c.app.Metrics().Snapshot().Actions {
		log.Debug("%s runs=%d changed=%d noop=%d failed=%d avg=%v max=%v",
			s.Name, s.Runs, s.Changed, s.NoOp, s.Failed, s.Avg(), s.Max)
	}
}
