package handler

import (
	"time"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/location"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []Handler
	fastHandlers []FastHandler // nil slots for handlers without FastHandler
	allFast      bool          // true when every child implements FastHandler
	recycleEntry bool          // true when every child supports entry recycling
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		fastHandlers: make([]FastHandler, len(handlers)),
		allFast:      true,
		recycleEntry: true,
	}
	for i, h := range handlers {
		if fh, ok := h.(FastHandler); ok {
			m.fastHandlers[i] = fh
		} else {
			m.allFast = false
		}
		if rc, ok := h.(Recycler); !ok || !rc.CanRecycleEntry() {
			m.recycleEntry = false
		}
	}
	return m
}

// HandleLog processes log data directly without requiring a pooled Entry.
// When all children implement FastHandler, this avoids Entry allocation entirely.
func (h *MultiHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, loc location.Info) error {
	if h.allFast {
		var lastErr error
		for _, fh := range h.fastHandlers {
			if err := fh.HandleLog(t, level, msg, loggerFields, callFields, loc); err != nil {
				lastErr = err
			}
		}
		return lastErr
	}

	// Mixed path: build a pooled entry for non-fast handlers
	entry := core.GetEntry()
	entry.Time = t
	entry.Level = level
	entry.Message = msg
	entry.Location = loc
	if len(loggerFields) > 0 {
		entry.Fields = append(entry.Fields, loggerFields...)
	}
	if len(callFields) > 0 {
		entry.Fields = append(entry.Fields, callFields...)
	}
	var lastErr error
	for i, child := range h.handlers {
		if fh := h.fastHandlers[i]; fh != nil {
			if err := fh.HandleLog(t, level, msg, loggerFields, callFields, loc); err != nil {
				lastErr = err
			}
		} else if err := child.Handle(entry); err != nil {
			lastErr = err
		}
	}
	if h.recycleEntry {
		core.PutEntry(entry)
	}
	return lastErr
}

// Handle processes a log entry by sending it to all handlers
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var lastErr error
	for _, child := range h.handlers {
		if err := child.Handle(entry); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns.
// This is safe when all child handlers process entries synchronously.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var lastErr error
	for _, child := range h.handlers {
		if err := child.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
