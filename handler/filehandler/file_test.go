package filehandler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/log4g/log4g/core"
)

func newEntry(msg string) *core.Entry {
	e := core.GetEntry()
	e.Time = time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC)
	e.Level = core.InfoLevel
	e.Message = msg
	return e
}

func TestFileHandler_SyncWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	entry := newEntry("to disk")
	if err := h.Handle(entry); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	core.PutEntry(entry)

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to disk") {
		t.Errorf("file content = %q", data)
	}
	if got := h.Stats().ProcessedTotal; got != 1 {
		t.Errorf("processed = %d, want 1", got)
	}
}

func TestFileHandler_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}
	defer h.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestFileHandler_RequiresFilename(t *testing.T) {
	if _, err := NewFileHandler(FileConfig{}); err == nil {
		t.Fatal("NewFileHandler() with empty Filename must fail")
	}
}

func TestFileHandler_SizeRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path, MaxSize: 64})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	// Each entry is well over 64 bytes once formatted, so every write
	// after the first should rotate the previous file away.
	for i := 0; i < 3; i++ {
		entry := newEntry(strings.Repeat("x", 100))
		if err := h.Handle(entry); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		core.PutEntry(entry)
		time.Sleep(2 * time.Millisecond)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	backups, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("backups = %d, want at least 2 (%v)", len(backups), backups)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("active log file missing after rotation: %v", err)
	}
}

func TestFileHandler_MaxBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path, MaxSize: 32, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		entry := newEntry(strings.Repeat("y", 80))
		if err := h.Handle(entry); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		core.PutEntry(entry)
		time.Sleep(2 * time.Millisecond)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	backups, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	// The final rotation may add one backup after the last cleanup.
	if len(backups) > 2 {
		t.Errorf("backups = %d, want at most 2 (%v)", len(backups), backups)
	}
}

func TestFileHandler_AsyncDrainOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path, Async: true, BufferSize: 64})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}
	if h.CanRecycleEntry() {
		t.Error("async handler must own queued entries")
	}

	for i := 0; i < 10; i++ {
		if err := h.Handle(newEntry("queued")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := strings.Count(string(data), "queued"); got != 10 {
		t.Errorf("drained %d entries, want 10", got)
	}
}

func TestFileHandler_AppendsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	h, err := NewFileHandler(FileConfig{Filename: path})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}
	entry := newEntry("current run")
	if err := h.Handle(entry); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	core.PutEntry(entry)
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	text := string(data)
	if !strings.Contains(text, "previous run") || !strings.Contains(text, "current run") {
		t.Errorf("file content = %q", text)
	}
}

func TestFileHandler_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(FileConfig{Filename: path, Async: true})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
