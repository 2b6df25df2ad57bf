package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "roster.txt")
	if err := os.WriteFile(path, []byte("Alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewFileWatcher(path, 20*time.Millisecond)
	changed := make(chan string, 4)
	w.OnChange(func(p string) { changed <- p })
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()
	if err := w.Start(); err == nil {
		t.Error("second Start succeeded")
	}

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("Alice\nBob\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("changed path = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	t.Parallel()

	w := NewFileWatcher(filepath.Join(t.TempDir(), "roster.txt"), 0)
	w.Stop()
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
