package consolehandler

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/formatter"
	"github.com/log4g/log4g/handler"
	"github.com/log4g/log4g/location"
)

// ConsoleHandler writes log entries to an io.Writer, stdout by default.
// In async mode entries are queued to a background goroutine and the
// configured per-level overflow policy decides what happens when the
// queue is full.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	async           bool
	queue           chan *core.Entry
	wg              sync.WaitGroup
	closed          chan struct{}
	closeOnce       sync.Once
	mu              sync.Mutex
	blockMu         sync.Mutex // serializes users of blockTimer
	overflowPolicy  map[core.Level]handler.OverflowPolicy
	blockTimeout    time.Duration
	drainTimeout    time.Duration
	stats           *handler.Stats
	blockTimer      *time.Timer
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = handler.DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		async:          cfg.Async,
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		stats:          handler.NewStats(),
		blockTimer:     newStoppedTimer(),
	}

	// Cache WriterFormatter for the no-intermediate-slice path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if h.async {
		h.queue = make(chan *core.Entry, cfg.BufferSize)
		h.wg.Add(1)
		go h.process()
	}

	return h
}

// newStoppedTimer returns a timer that is not running and whose channel
// is empty, ready for Reset.
func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// Handle processes a log entry
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if !h.async {
		return h.write(entry)
	}

	policy, ok := h.overflowPolicy[entry.Level]
	if !ok {
		policy = handler.DropNewest
	}

	switch policy {
	case handler.Block:
		select {
		case h.queue <- entry:
			return nil
		default:
		}
		// Queue full: wait up to blockTimeout for space, then fall back
		// to a synchronous write so the entry is never lost. Blocked
		// callers serialize on blockMu; they are waiting anyway.
		h.blockMu.Lock()
		defer h.blockMu.Unlock()
		resetTimer(h.blockTimer, h.blockTimeout)
		select {
		case h.queue <- entry:
			stopTimer(h.blockTimer)
			return nil
		case <-h.blockTimer.C:
			h.stats.IncrementBlocked()
			return h.write(entry)
		case <-h.closed:
			stopTimer(h.blockTimer)
			return h.write(entry)
		}

	case handler.DropOldest:
		select {
		case h.queue <- entry:
			return nil
		default:
		}
		// Make room by discarding the oldest queued entry, then retry.
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case h.queue <- entry:
			return nil
		default:
			h.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
			return nil
		}

	default: // DropNewest
		select {
		case h.queue <- entry:
			return nil
		default:
			h.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
			return nil
		}
	}
}

// HandleLog processes log data directly without requiring a pooled
// Entry from the caller (implements handler.FastHandler).
func (h *ConsoleHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, loc location.Info) error {
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

	if !h.async {
		err := h.write(entry)
		core.PutEntry(entry)
		return err
	}
	return h.Handle(entry)
}

// write formats and writes an entry
func (h *ConsoleHandler) write(entry *core.Entry) error {
	if h.writerFormatter != nil {
		h.mu.Lock()
		err := h.writerFormatter.FormatTo(entry, h.writer)
		h.mu.Unlock()
		if err == nil {
			h.stats.IncrementProcessed()
		}
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	_, writeErr := h.writer.Write(data)
	h.mu.Unlock()

	if writeErr == nil {
		h.stats.IncrementProcessed()
	}
	return writeErr
}

// process handles async log processing
func (h *ConsoleHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			_ = h.write(entry)
			core.PutEntry(entry)
		case <-h.closed:
			deadline := time.After(h.drainTimeout)
		drain:
			for {
				select {
				case entry := <-h.queue:
					_ = h.write(entry)
					core.PutEntry(entry)
				case <-deadline:
					break drain
				default:
					break drain
				}
			}
			return
		}
	}
}

// CanRecycleEntry reports whether the caller may recycle the entry
// after Handle returns. Async handlers own queued entries until the
// background goroutine has written them.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return !h.async
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler, draining the async queue first.
func (h *ConsoleHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.closed)
		if h.async {
			h.wg.Wait()
		}
	})
	return nil
}

func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
