// Package main is the entry point for the textops command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/textops/internal/app"
	"github.com/dshills/textops/internal/command"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	app.Options

	encoding  string
	selection string
	cursor    int
	write     bool
	json      bool
	script    string
	action    string
	lang      string

	// color
	format string
	scale  string
	alpha  bool
	upper  bool

	// action arguments, applied over the configured defaults only when
	// given on the command line
	args command.Args
	set  map[string]bool

	showVersion bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "textops %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Error: missing command")
		return 2
	}

	opts.LogOutput = stderr
	// Script print output goes to stderr; stdout carries the document.
	opts.ScriptOutput = stderr

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	c := &cli{
		app:    application,
		opts:   opts,
		stdin:  stdin,
		stdout: stdout,
		log:    application.Logger().WithComponent("cli"),
	}

	name, files := rest[0], rest[1:]
	switch name {
	case "actions":
		err = c.listActions()
	case "encodings":
		err = c.listEncodings()
	case "stats":
		err = c.stats(files)
	case "script":
		err = c.runScript(files)
	case "preview":
		err = c.preview(files)
	case "color":
		err = c.color(files)
	case "watch":
		err = c.watch(files)
	default:
		err = c.runAction(name, files)
	}
	c.logMetrics()

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("textops", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	fs.StringVar(&opts.encoding, "encoding", "", "Encoding files are read and written in, or autodetect")
	fs.StringVar(&opts.encoding, "e", "", "Encoding (shorthand)")
	fs.StringVar(&opts.selection, "select", "", "Select characters start:end before running")
	fs.IntVar(&opts.cursor, "cursor", -1, "Place the caret at this character offset before running")
	fs.BoolVar(&opts.write, "w", false, "Write results back to the files instead of stdout")
	fs.BoolVar(&opts.json, "json", false, "Print statistics as JSON")
	fs.StringVar(&opts.script, "script", "", "Lua script for the script command")
	fs.StringVar(&opts.action, "action", "", "Action the watch command applies (default from config)")
	fs.StringVar(&opts.lang, "lang", "", "ISO 639-2 language filtering encodings (default from config)")

	fs.StringVar(&opts.format, "format", "hex", "Color format: hex, rgba or cmyk")
	fs.StringVar(&opts.scale, "scale", "100", "CMYK component scale")
	fs.BoolVar(&opts.alpha, "alpha", false, "Append alpha to hex colors")
	fs.BoolVar(&opts.upper, "upper", false, "Upper-case hex colors")

	fs.BoolVar(&opts.args.CaseSensitive, "case-sensitive", false, "Compare lines exactly")
	fs.BoolVar(&opts.args.Dedup, "dedup", false, "Drop duplicate lines (sort, shuffle)")
	fs.BoolVar(&opts.args.Reverse, "reverse", false, "Reverse the order (sort, dedup)")
	fs.IntVar(&opts.args.Offset, "offset", 0, "Column line comparison starts at")
	fs.BoolVar(&opts.args.Spaces, "spaces", false, "Join lines with a space")
	fs.StringVar(&opts.args.Keep, "keep", "", "Characters percent encoding leaves alone")
	fs.StringVar(&opts.args.Encoding, "to", "", "Encoding to redecode as (default autodetect)")
	fs.BoolVar(&opts.args.Transliterate, "transliterate", false, "Strip accents when redecoding")
	fs.BoolVar(&opts.args.OnSave, "on-save", false, "Trim trailing spaces in the whole document")

	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "textops - text transformation utilities\n\n")
		fmt.Fprintf(stderr, "Usage: textops [options] <command> [args...]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  <action> [files...]      Run an action (see 'textops actions')\n")
		fmt.Fprintf(stderr, "  actions                  List actions and their Lua names\n")
		fmt.Fprintf(stderr, "  stats [files...]         Count lines, words and characters\n")
		fmt.Fprintf(stderr, "  script [files...]        Run the -script Lua file on each document\n")
		fmt.Fprintf(stderr, "  preview [files...]       Show the first line under each encoding\n")
		fmt.Fprintf(stderr, "  encodings                List encodings for -lang\n")
		fmt.Fprintf(stderr, "  color <#rrggbb> [files]  Format a color, inserting it at -cursor\n")
		fmt.Fprintf(stderr, "  watch <files...>         Apply -action whenever a file is saved\n")
		fmt.Fprintf(stderr, "\nWithout files the document is read from stdin.\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  textops -dedup lines.sort names.txt\n")
		fmt.Fprintf(stderr, "  textops -w -select 0:120 lines.removeEmpty notes.md\n")
		fmt.Fprintf(stderr, "  textops -e autodetect -to cp1251 encoding.redecode old.txt\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch strings.ToLower(opts.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}

	return opts, fs.Args(), nil
}

// actionArgs overlays the arguments given on the command line on defaults.
func (o *options) actionArgs(defaults command.Args) command.Args {
	a := defaults
	if o.set["case-sensitive"] {
		a.CaseSensitive = o.args.CaseSensitive
	}
	if o.set["dedup"] {
		a.Dedup = o.args.Dedup
	}
	if o.set["reverse"] {
		a.Reverse = o.args.Reverse
	}
	if o.set["offset"] {
		a.Offset = o.args.Offset
	}
	if o.set["spaces"] {
		a.Spaces = o.args.Spaces
	}
	if o.set["keep"] {
		a.Keep = o.args.Keep
	}
	if o.set["to"] {
		a.Encoding = o.args.Encoding
	}
	if o.set["transliterate"] {
		a.Transliterate = o.args.Transliterate
	}
	if o.set["on-save"] {
		a.OnSave = o.args.OnSave
	}
	return a
}

// parseSelection reads "start:end".
func parseSelection(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid selection %q: want start:end", s)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("invalid selection start %q: %w", a, err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("invalid selection end %q: %w", b, err)
	}
	if start < 0 || end < start {
		return 0, 0, fmt.Errorf("invalid selection %q", s)
	}
	return start, end, nil
}
