package filehandler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/formatter"
	"github.com/log4g/log4g/handler"
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// FlushInterval is how often the write buffer is flushed to disk (default: 1s)
	FlushInterval time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// FileHandler writes log entries to a file with automatic rotation.
// Rotated files are renamed to "<filename>.<timestamp>"; when
// MaxBackups is set the oldest backups beyond the limit are removed
// after each rotation.
type FileHandler struct {
	filename        string
	file            *os.File
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	async           bool
	queue           chan *core.Entry
	wg              sync.WaitGroup
	closed          chan struct{}
	closeOnce       sync.Once
	mu              sync.Mutex
	maxSize         int64
	rotateInterval  time.Duration
	maxBackups      int
	drainTimeout    time.Duration
	currentSize     int64
	lastRotate      time.Time
	stats           *handler.Stats
}

// NewFileHandler creates a new file handler, creating the parent
// directory and opening (or appending to) the log file.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filehandler: Filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("filehandler: create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("filehandler: open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("filehandler: stat log file: %w", err)
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		file:           file,
		bufWriter:      bufio.NewWriter(file),
		formatter:      cfg.Formatter,
		async:          cfg.Async,
		closed:         make(chan struct{}),
		maxSize:        cfg.MaxSize,
		rotateInterval: cfg.RotateInterval,
		maxBackups:     cfg.MaxBackups,
		drainTimeout:   cfg.DrainTimeout,
		currentSize:    info.Size(),
		lastRotate:     time.Now(),
		stats:          handler.NewStats(),
	}
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if h.async {
		h.queue = make(chan *core.Entry, cfg.BufferSize)
		h.wg.Add(1)
		go h.process()
	}

	h.wg.Add(1)
	go h.flushLoop(cfg.FlushInterval)

	return h, nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if !h.async {
		return h.write(entry)
	}
	select {
	case h.queue <- entry:
		return nil
	default:
		h.stats.IncrementDropped(entry.Level)
		core.PutEntry(entry)
		return nil
	}
}

// write formats and writes an entry under the handler lock.
func (h *FileHandler) write(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rotateIfNeeded(); err != nil {
		return err
	}

	var n int
	if h.writerFormatter != nil {
		before := h.bufWriter.Buffered()
		if err := h.writerFormatter.FormatTo(entry, h.bufWriter); err != nil {
			return err
		}
		n = h.bufWriter.Buffered() - before
		if n < 0 {
			// The buffer flushed mid-write; count conservatively.
			n = h.bufWriter.Buffered()
		}
	} else {
		data, err := h.formatter.Format(entry)
		if err != nil {
			return err
		}
		if n, err = h.bufWriter.Write(data); err != nil {
			return err
		}
	}

	h.currentSize += int64(n)
	h.stats.IncrementProcessed()
	return nil
}

// rotateIfNeeded rotates when the size limit or rotation interval has
// been reached. Caller must hold mu.
func (h *FileHandler) rotateIfNeeded() error {
	sizeDue := h.maxSize > 0 && h.currentSize >= h.maxSize
	intervalDue := h.rotateInterval > 0 && time.Since(h.lastRotate) >= h.rotateInterval
	if !sizeDue && !intervalDue {
		return nil
	}
	return h.rotate()
}

// rotate closes the current file, renames it with a timestamp suffix,
// and opens a fresh file. Caller must hold mu.
func (h *FileHandler) rotate() error {
	if err := h.bufWriter.Flush(); err != nil {
		return err
	}
	if err := h.file.Sync(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02T15-04-05.000000000")
	rotated := fmt.Sprintf("%s.%s", h.filename, timestamp)
	if err := os.Rename(h.filename, rotated); err != nil {
		// Reopen the original so logging can continue.
		file, openErr := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		h.file = file
		h.bufWriter.Reset(file)
		return err
	}

	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	h.file = file
	h.bufWriter.Reset(file)
	h.currentSize = 0
	h.lastRotate = time.Now()
	return nil
}

// cleanupOldBackups removes the oldest timestamped backups beyond
// MaxBackups. Errors are ignored; cleanup retries on the next rotation.
func (h *FileHandler) cleanupOldBackups() {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return
	}
	var backups []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), base+".") {
			backups = append(backups, match)
		}
	}

	sort.Slice(backups, func(i, j int) bool {
		infoI, errI := os.Stat(backups[i])
		infoJ, errJ := os.Stat(backups[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	if len(backups) > h.maxBackups {
		for _, old := range backups[:len(backups)-h.maxBackups] {
			if err := os.Remove(old); err != nil {
				return
			}
		}
	}
}

// process handles async log processing
func (h *FileHandler) process() {
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

// flushLoop periodically flushes the write buffer so entries reach disk
// even during quiet periods.
func (h *FileHandler) flushLoop(interval time.Duration) {
	defer h.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.mu.Lock()
			_ = h.bufWriter.Flush()
			h.mu.Unlock()
		case <-h.closed:
			return
		}
	}
}

// Flush forces buffered bytes to disk.
func (h *FileHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.bufWriter.Flush(); err != nil {
		return err
	}
	return h.file.Sync()
}

// CanRecycleEntry reports whether the caller may recycle the entry
// after Handle returns.
func (h *FileHandler) CanRecycleEntry() bool {
	return !h.async
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the async queue, flushes the buffer, and closes the file.
func (h *FileHandler) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.closed)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		if flushErr := h.bufWriter.Flush(); flushErr != nil {
			h.file.Close()
			err = flushErr
			return
		}
		if syncErr := h.file.Sync(); syncErr != nil {
			h.file.Close()
			err = syncErr
			return
		}
		err = h.file.Close()
	})
	return err
}
