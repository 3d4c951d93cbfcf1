package core

import (
	"testing"

	"github.com/log4g/log4g/location"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{PanicLevel, "PANIC"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryPool(t *testing.T) {
	e1 := GetEntry()
	if e1 == nil {
		t.Fatal("GetEntry() returned nil")
	}
	if len(e1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(e1.Fields))
	}
	if e1.Location != location.Unavailable() {
		t.Errorf("fresh entry location = %+v, want unavailable", e1.Location)
	}

	e1.Message = "test"
	e1.Fields = append(e1.Fields, Field{Key: "test", Str: "value"})
	e1.Location = location.New("file.go", "main.main", 10)

	PutEntry(e1)

	e2 := GetEntry()
	if e2 == nil {
		t.Fatal("GetEntry() returned nil after PutEntry()")
	}
	if len(e2.Fields) != 0 {
		t.Errorf("recycled entry has %d fields, want 0", len(e2.Fields))
	}
	if e2.Message != "" {
		t.Errorf("recycled entry message = %q, want empty", e2.Message)
	}
	if e2.Location != location.Unavailable() {
		t.Errorf("recycled entry leaked location %+v", e2.Location)
	}
}

func TestPutEntryNil(t *testing.T) {
	PutEntry(nil) // must not panic
}
