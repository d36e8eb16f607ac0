package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/textops/internal/config/watcher"
)

func TestNewWatcher_NoFile(t *testing.T) {
	if _, err := NewWatcher(New(), nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textops.toml")
	if err := os.WriteFile(path, []byte("[lines]\noffset = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(WithFile(path), WithEnvPrefix(""))
	if err := c.Load(); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan error, 4)
	w, err := NewWatcher(c, func(_ *Config, err error) { reloaded <- err }, watcher.WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[lines]\noffset = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload")
	}

	if got := c.Lines().Offset; got != 7 {
		t.Errorf("offset after reload = %d, want 7", got)
	}
	if w.Reloads() < 1 {
		t.Errorf("Reloads() = %d", w.Reloads())
	}
}
