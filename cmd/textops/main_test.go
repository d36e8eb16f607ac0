package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/textops/internal/app"
	"github.com/dshills/textops/internal/command"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")
	if code != 0 || !strings.HasPrefix(out, "textops dev\n") {
		t.Errorf("code %d, output %q", code, out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing command", nil, 2},
		{"bad log level", []string{"-log-level", "loud", "stats"}, 2},
		{"unknown flag", []string{"-frobnicate", "stats"}, 2},
		{"help", []string{"-h"}, 0},
		{"unknown action", []string{"lines.frobnicate"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, "", tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRun_ActionFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "b\na\nb", "-dedup", "lines.sort")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "a\nb" {
		t.Errorf("got %q", out)
	}
}

func TestRun_ActionSelection(t *testing.T) {
	code, out, errOut := runCLI(t, "a b", "-select", "0:3", "percent.encode")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "a%20b" {
		t.Errorf("got %q", out)
	}

	if code, _, _ := runCLI(t, "a b", "-select", "3", "percent.encode"); code != 1 {
		t.Errorf("malformed selection should fail, got %d", code)
	}
}

func TestRun_WriteInPlace(t *testing.T) {
	path := writeFile(t, "trailing.txt", "x  \r\ny \r\n\r\n")

	code, out, errOut := runCLI(t, "", "-w", "lines.removeTrailingSpaces", path)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}
	if got := readFile(t, path); got != "x\r\ny" {
		t.Errorf("file = %q", got)
	}
}

func TestRun_Encoding(t *testing.T) {
	path := writeFile(t, "latin.txt", "b\n\xe9\na")

	code, out, errOut := runCLI(t, "", "-e", "latin_1", "lines.reverse", path)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "a\n\xe9\nb" {
		t.Errorf("expected latin-1 output, got %q", out)
	}
}

func TestRun_StatsJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "one two\nthree", "-select", "0:3", "stats")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}

	if !gjson.Valid(out) {
		t.Fatalf("expected JSON on a non-terminal, got %q", out)
	}
	if n := gjson.Get(out, "document.words").Int(); n != 3 {
		t.Errorf("document.words = %d", n)
	}
	if n := gjson.Get(out, "document.lines").Int(); n != 2 {
		t.Errorf("document.lines = %d", n)
	}
	if n := gjson.Get(out, "selection.words").Int(); n != 1 {
		t.Errorf("selection.words = %d", n)
	}
}

func TestRun_Actions(t *testing.T) {
	code, out, _ := runCLI(t, "", "actions")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"lines.sort", "textops.sort", "textops.percentEncode"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Encodings(t *testing.T) {
	code, out, _ := runCLI(t, "", "-lang", "rus", "encodings")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "koi8_r\n") || !strings.Contains(out, "utf_8\n") {
		t.Errorf("unexpected encodings:\n%s", out)
	}
	if strings.Contains(out, "shift_jis\n") {
		t.Errorf("Japanese encoding offered for Russian:\n%s", out)
	}
}

func TestRun_Color(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"color", "#ff8000"}, "#ff8000\n"},
		{[]string{"-upper", "-alpha", "color", "#ff8000"}, "#FF8000FF\n"},
		{[]string{"-format", "rgba", "color", "#ff800080"}, "rgba(255,128,0,0.502)\n"},
		{[]string{"-format", "cmyk", "color", "#000000"}, "cmyk(0,0,0,100)\n"},
		{[]string{"-format", "cmyk", "-scale", "x", "color", "#000"}, "cmyk(0,0,0,100)\n"},
	}

	for _, tt := range tests {
		code, out, errOut := runCLI(t, "", tt.args...)
		if code != 0 {
			t.Errorf("%v: exit code %d: %s", tt.args, code, errOut)
			continue
		}
		if out != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestRun_ColorInsert(t *testing.T) {
	path := writeFile(t, "style.css", "color: ;")

	code, out, errOut := runCLI(t, "", "-cursor", "7", "color", "#abcdef", path)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "color: #abcdef;" {
		t.Errorf("got %q", out)
	}
}

func TestRun_Script(t *testing.T) {
	script := writeFile(t, "sort.lua", `
textops.sort{}
print("sorted")
`)

	code, out, errOut := runCLI(t, "b\na", "-script", script, "script")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "a\nb" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "sorted\n") {
		t.Errorf("expected print output on stderr, got %q", errOut)
	}

	if code, _, _ := runCLI(t, "x", "script"); code != 1 {
		t.Errorf("script without -script should fail, got %d", code)
	}
}

func TestRun_Preview(t *testing.T) {
	// UTF-8 bytes misread as cp1252.
	path := writeFile(t, "mojibake.txt", "Привет")

	code, out, errOut := runCLI(t, "", "-e", "cp1252", "-to", "utf_8", "preview", path)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if out != "Привет\n" {
		t.Errorf("got %q", out)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		wantErr    bool
	}{
		{"0:3", 0, 3, false},
		{" 2 : 5 ", 2, 5, false},
		{"4:4", 4, 4, false},
		{"3", 0, 0, true},
		{"a:3", 0, 0, true},
		{"5:2", 0, 0, true},
		{"-1:2", 0, 0, true},
	}

	for _, tt := range tests {
		start, end, err := parseSelection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSelection(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && (start != tt.start || end != tt.end) {
			t.Errorf("parseSelection(%q) = %d, %d", tt.in, start, end)
		}
	}
}

func TestActionArgs_OnlyExplicitFlags(t *testing.T) {
	opts, _, err := parseFlags([]string{"-reverse", "-offset", "0", "lines.sort"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	defaults := command.Args{CaseSensitive: true, Offset: 4, Spaces: true}
	got := opts.actionArgs(defaults)

	if !got.Reverse {
		t.Error("explicit -reverse should apply")
	}
	if got.Offset != 0 {
		t.Errorf("explicit -offset 0 should win, got %d", got.Offset)
	}
	if !got.CaseSensitive || !got.Spaces {
		t.Errorf("defaults without flags should be kept: %+v", got)
	}
}

func newTestCLI(t *testing.T) *cli {
	t.Helper()
	a, err := app.New(app.Options{LogOutput: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = a.Close() })

	opts, _, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return &cli{app: a, opts: opts, stdout: io.Discard, log: a.Logger()}
}

func TestApplyOnSave(t *testing.T) {
	c := newTestCLI(t)
	path := writeFile(t, "notes.txt", "a  \nb\t\n\n")

	if err := c.applyOnSave(path, command.ActionRemoveTrailingSpaces); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "a\nb" {
		t.Errorf("file = %q", got)
	}

	info, _ := os.Stat(path)
	before := info.ModTime()
	if err := c.applyOnSave(path, command.ActionRemoveTrailingSpaces); err != nil {
		t.Fatal(err)
	}
	info, _ = os.Stat(path)
	if !info.ModTime().Equal(before) {
		t.Error("a clean file should not be rewritten")
	}
}

func TestWatch(t *testing.T) {
	c := newTestCLI(t)
	path := writeFile(t, "watched.txt", "clean")

	stop := make(chan struct{})
	c.stop = stop
	done := make(chan error, 1)
	go func() { done <- c.watch([]string{path}) }()

	// Give the watcher time to start before saving.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("dirty   \n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for readFile(t, path) != "dirty" {
		if time.Now().After(deadline) {
			t.Fatalf("file was not cleaned: %q", readFile(t, path))
		}
		time.Sleep(20 * time.Millisecond)
	}

	close(stop)
	if err := <-done; err != nil {
		t.Errorf("watch returned %v", err)
	}
}
