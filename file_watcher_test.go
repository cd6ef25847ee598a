package ion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher_EmitsInitialContents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "value.json")
	if err := os.WriteFile(path, []byte(`{"a": 1}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w := NewFileWatcher(path)
	out, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	select {
	case data := <-out:
		if string(data) != `{"a": 1}` {
			t.Errorf("unexpected initial contents: %q", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial contents")
	}
}

func TestFileWatcher_MissingFile(t *testing.T) {
	ctx := context.Background()

	w := NewFileWatcher(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := w.Watch(ctx); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	path := filepath.Join(t.TempDir(), "value.yaml")
	if err := os.WriteFile(path, []byte("a: 1"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w := NewFileWatcher(path)
	out, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Drain initial emission, then cancel.
	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial contents")
	}

	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for close")
	}
}
