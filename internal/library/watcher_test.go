package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shibanib/json-question-bank-viewer/internal/library"
)

func TestWatchPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	lib := library.New(dir, "", nil)
	if err := lib.Refresh(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- lib.Watch(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "new.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, f := range lib.Files() {
			if f.Name == "new.json" {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("watch returned %v", err)
				}
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher never refreshed the listing")
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	lib := library.New(dir, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lib.Watch(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	lib := library.New(filepath.Join(t.TempDir(), "absent"), "", nil)
	if err := lib.Watch(context.Background()); err == nil {
		t.Fatal("watching a missing directory should error")
	}
}
