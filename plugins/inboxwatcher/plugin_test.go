package inboxwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/heinz1110/photocat"
)

// recordingImporter records every Add call for inspection.
type recordingImporter struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingImporter) Add(ctx context.Context, paths []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
	return len(paths), nil
}

func (r *recordingImporter) imported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPlugin_ImportsExistingFiles(t *testing.T) {
	inbox := t.TempDir()
	for _, name := range []string{"b.jpg", "a.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(inbox, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	importer := &recordingImporter{}
	plugin := New(Config{DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, photocat.PluginConfig{
		InboxDir:   inbox,
		Extensions: []string{"jpg"},
		Importer:   importer,
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(ctx)

	waitFor(t, 2*time.Second, func() bool {
		return len(importer.imported()) == 2
	})

	got := importer.imported()
	if got[0] != filepath.Join(inbox, "a.jpg") || got[1] != filepath.Join(inbox, "b.jpg") {
		t.Errorf("imported = %v, want a.jpg then b.jpg", got)
	}
}

func TestPlugin_ImportsNewFile(t *testing.T) {
	inbox := t.TempDir()

	importer := &recordingImporter{}
	plugin := New(Config{DebounceDelay: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, photocat.PluginConfig{
		InboxDir:   inbox,
		Extensions: []string{"jpg", "png"},
		Importer:   importer,
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(ctx)

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inbox, "scan-001.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		for _, p := range importer.imported() {
			if p == path {
				return true
			}
		}
		return false
	})
}

func TestPlugin_LibraryDebounceOverridesDefault(t *testing.T) {
	inbox := t.TempDir()
	if err := os.WriteFile(filepath.Join(inbox, "scan.jpg"), []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	importer := &recordingImporter{}
	plugin := New(Config{DebounceDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, photocat.PluginConfig{
		InboxDir:      inbox,
		Extensions:    []string{"jpg"},
		DebounceDelay: 20 * time.Millisecond,
		Importer:      importer,
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(ctx)

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inbox, "scan-002.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// With the plugin's one-minute default still in effect this would
	// never fire inside the test window.
	waitFor(t, 2*time.Second, func() bool {
		for _, p := range importer.imported() {
			if p == path {
				return true
			}
		}
		return false
	})
}

func TestPlugin_IgnoresOtherExtensions(t *testing.T) {
	inbox := t.TempDir()
	if err := os.WriteFile(filepath.Join(inbox, "readme.md"), []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	importer := &recordingImporter{}
	plugin := New(Config{DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, photocat.PluginConfig{
		InboxDir:   inbox,
		Extensions: []string{"jpg"},
		Importer:   importer,
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(ctx)

	time.Sleep(200 * time.Millisecond)

	if got := importer.imported(); len(got) != 0 {
		t.Errorf("imported = %v, want none", got)
	}
}

func TestPlugin_NoInboxDirDisables(t *testing.T) {
	plugin := New(DefaultConfig())

	ctx := context.Background()
	err := plugin.Initialize(ctx, photocat.PluginConfig{
		Importer: &recordingImporter{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_MissingInboxDirErrors(t *testing.T) {
	plugin := New(DefaultConfig())

	err := plugin.Initialize(context.Background(), photocat.PluginConfig{
		InboxDir: filepath.Join(t.TempDir(), "does-not-exist"),
		Importer: &recordingImporter{},
	})
	if err == nil {
		t.Fatal("expected error for missing inbox directory")
	}
}
