package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSlotWrites(t *testing.T) {
	dir := t.TempDir()
	slot := filepath.Join(dir, "custom.json")

	w, err := NewWatcher(slot)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(slot, []byte(`{}`), 0644); err != nil {
		t.Fatalf("write slot: %v", err)
	}

	select {
	case <-w.Events:
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("no event after slot write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	slot := filepath.Join(dir, "custom.json")

	w, err := NewWatcher(slot)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-w.Events:
		t.Fatalf("event fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseEndsStream(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "custom.json"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Idempotent.
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("unexpected event after close")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}
