package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/location"
)

// mockHandler records entries and optionally fails.
type mockHandler struct {
	entries []core.Entry
	err     error
	closed  bool
}

func (m *mockHandler) Handle(entry *core.Entry) error {
	m.entries = append(m.entries, *entry)
	return m.err
}

func (m *mockHandler) Close() error {
	m.closed = true
	return m.err
}

func (m *mockHandler) CanRecycleEntry() bool { return true }

func TestMultiHandler_FanOut(t *testing.T) {
	h1 := &mockHandler{}
	h2 := &mockHandler{}
	multi := NewMultiHandler(h1, h2)

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Message = "fan out"

	if err := multi.Handle(entry); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(h1.entries) != 1 || len(h2.entries) != 1 {
		t.Errorf("children got %d/%d entries, want 1/1", len(h1.entries), len(h2.entries))
	}
	if multi.CanRecycleEntry() {
		core.PutEntry(entry)
	}
}

func TestMultiHandler_LastError(t *testing.T) {
	wantErr := errors.New("sink failed")
	h1 := &mockHandler{err: wantErr}
	h2 := &mockHandler{}
	multi := NewMultiHandler(h1, h2)

	entry := core.GetEntry()
	defer core.PutEntry(entry)

	if err := multi.Handle(entry); !errors.Is(err, wantErr) {
		t.Errorf("Handle() error = %v, want %v", err, wantErr)
	}
	// The failing child must not stop delivery to the others.
	if len(h2.entries) != 1 {
		t.Errorf("second child got %d entries, want 1", len(h2.entries))
	}
}

func TestMultiHandler_HandleLogMixed(t *testing.T) {
	slow := &mockHandler{} // no FastHandler
	multi := NewMultiHandler(slow)

	loc := location.New("x.go", "main.run", 5)
	err := multi.HandleLog(time.Now(), core.WarnLevel, "mixed", nil,
		[]core.Field{{Key: "k", Type: core.StringType, Str: "v"}}, loc)
	if err != nil {
		t.Fatalf("HandleLog() error = %v", err)
	}
	if len(slow.entries) != 1 {
		t.Fatalf("child got %d entries, want 1", len(slow.entries))
	}
	got := slow.entries[0]
	if got.Message != "mixed" || got.Location != loc {
		t.Errorf("entry = %+v", got)
	}
	if len(got.Fields) != 1 || got.Fields[0].Key != "k" {
		t.Errorf("fields = %+v", got.Fields)
	}
}

func TestMultiHandler_Close(t *testing.T) {
	h1 := &mockHandler{}
	h2 := &mockHandler{}
	multi := NewMultiHandler(h1, h2)

	if err := multi.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !h1.closed || !h2.closed {
		t.Error("Close() did not reach all children")
	}
}

func TestStatsCounters(t *testing.T) {
	s := NewStats()

	s.IncrementDropped(core.DebugLevel)
	s.IncrementDropped(core.InfoLevel)
	s.IncrementDropped(core.InfoLevel)
	s.IncrementBlocked()
	s.IncrementProcessed()
	s.IncrementProcessed()
	s.IncrementProcessed()

	if got := s.GetDropped(core.InfoLevel); got != 2 {
		t.Errorf("GetDropped(Info) = %d, want 2", got)
	}
	if got := s.GetTotalDropped(); got != 3 {
		t.Errorf("GetTotalDropped() = %d, want 3", got)
	}
	if got := s.GetBlocked(); got != 1 {
		t.Errorf("GetBlocked() = %d, want 1", got)
	}

	snap := s.GetSnapshot()
	if snap.ProcessedTotal != 3 {
		t.Errorf("snapshot processed = %d, want 3", snap.ProcessedTotal)
	}
	if snap.DroppedTotal[core.DebugLevel] != 1 {
		t.Errorf("snapshot dropped debug = %d, want 1", snap.DroppedTotal[core.DebugLevel])
	}

	s.Reset()
	if s.GetTotalDropped() != 0 || s.GetProcessed() != 0 {
		t.Error("Reset() left counters non-zero")
	}
}

func TestOverflowPolicyString(t *testing.T) {
	tests := []struct {
		policy OverflowPolicy
		want   string
	}{
		{DropNewest, "DropNewest"},
		{DropOldest, "DropOldest"},
		{Block, "Block"},
		{OverflowPolicy(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.policy.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefaultLevelPolicy(t *testing.T) {
	p := DefaultLevelPolicy()
	if p[core.ErrorLevel] != Block {
		t.Errorf("error policy = %v, want Block", p[core.ErrorLevel])
	}
	if p[core.DebugLevel] != DropNewest {
		t.Errorf("debug policy = %v, want DropNewest", p[core.DebugLevel])
	}
}
