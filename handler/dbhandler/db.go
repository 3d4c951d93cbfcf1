package dbhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/handler"
)

// Config holds configuration for the database handler.
type Config struct {
	// Driver selects the SQL dialect: "mysql" or "postgres"
	Driver string
	// DSN is the data source name passed to the driver
	DSN string
	// Table is the destination table (default: "log_entries")
	Table string
	// BatchSize is how many records are inserted per statement (default: 100)
	BatchSize int
	// FlushInterval bounds how long a partial batch may wait (default: 1s)
	FlushInterval time.Duration
	// QueueSize is the size of the async queue (default: BatchSize*10)
	QueueSize int
	// RetryDelay is the wait between insert retries during the final
	// drain (default: 100ms)
	RetryDelay time.Duration

	// Connection pool settings
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Record is the row shape written to the log table. Structured fields
// are serialized to a JSON column.
type Record struct {
	Time    time.Time       `gorm:"column:time"`
	Level   string          `gorm:"column:level"`
	Message string          `gorm:"column:message"`
	Caller  string          `gorm:"column:caller"`
	Fields  json.RawMessage `gorm:"column:fields;type:json"`
}

// store abstracts the batch insert backend.
type store interface {
	InsertBatch(ctx context.Context, records []Record) error
	Close() error
}

type sqlStore struct {
	db        *gorm.DB
	table     string
	batchSize int
}

func (s *sqlStore) InsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Table(s.table).CreateInBatches(records, s.batchSize).Error
}

func (s *sqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DBHandler batches log entries and inserts them into a SQL table via
// a background goroutine. A full queue drops entries rather than
// blocking the logging call site.
type DBHandler struct {
	store      store
	queue      chan Record
	retryDelay time.Duration
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	closeOnce  sync.Once
	stats      *handler.Stats
}

// NewDBHandler opens the database and starts the batching goroutine.
func NewDBHandler(cfg Config) (*DBHandler, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("dbhandler: unsupported driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("dbhandler: open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("dbhandler: access connection pool: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.Table == "" {
		cfg.Table = "log_entries"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return newWithStore(cfg, &sqlStore{db: gdb, table: cfg.Table, batchSize: cfg.BatchSize}), nil
}

// newWithStore wires the batching machinery around a store. Split from
// NewDBHandler so tests can inject a fake backend.
func newWithStore(cfg Config, st store) *DBHandler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = cfg.BatchSize * 10
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &DBHandler{
		store:      st,
		queue:      make(chan Record, cfg.QueueSize),
		retryDelay: cfg.RetryDelay,
		cancel:     cancel,
		stats:      handler.NewStats(),
	}
	h.wg.Add(1)
	go h.run(ctx, cfg.BatchSize, cfg.FlushInterval)
	return h
}

// Handle converts the entry to a row and queues it for insertion.
func (h *DBHandler) Handle(entry *core.Entry) error {
	select {
	case h.queue <- toRecord(entry):
		return nil
	default:
		h.stats.IncrementDropped(entry.Level)
		return nil
	}
}

// toRecord flattens an entry into the row shape.
func toRecord(entry *core.Entry) Record {
	var caller string
	if !entry.Location.IsUnavailable() {
		caller = entry.Location.ShortFileName() + ":" + strconv.Itoa(entry.Location.LineNumber())
	}

	var fieldsJSON json.RawMessage
	if len(entry.Fields) > 0 {
		m := make(map[string]interface{}, len(entry.Fields))
		for _, f := range entry.Fields {
			m[f.Key] = f.Value()
		}
		if data, err := json.Marshal(m); err == nil {
			fieldsJSON = data
		} else {
			fieldsJSON = json.RawMessage(`{}`)
		}
	}

	return Record{
		Time:    entry.Time,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Caller:  caller,
		Fields:  fieldsJSON,
	}
}

// run batches queued records and inserts them when the batch fills or
// the flush interval elapses. On shutdown the remaining batch is
// flushed with retries.
func (h *DBHandler) run(ctx context.Context, batchSize int, flushInterval time.Duration) {
	defer h.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Record, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := h.store.InsertBatch(ctx, batch); err == nil {
			for range batch {
				h.stats.IncrementProcessed()
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-h.queue:
			batch = append(batch, rec)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			// Drain whatever is still queued, then flush with retries
			// against a fresh context since ctx is already cancelled.
			for {
				select {
				case rec := <-h.queue:
					batch = append(batch, rec)
				default:
					goto drained
				}
			}
		drained:
			if len(batch) > 0 {
				flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				for i := 0; i < 3; i++ {
					if err := h.store.InsertBatch(flushCtx, batch); err == nil {
						for range batch {
							h.stats.IncrementProcessed()
						}
						break
					}
					time.Sleep(h.retryDelay)
				}
			}
			return
		}
	}
}

// CanRecycleEntry reports that entries may be recycled immediately;
// Handle copies everything it needs into the queued record.
func (h *DBHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *DBHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes pending records and closes the database connection.
func (h *DBHandler) Close() error {
	var err error
	h.closeOnce.Do(func() {
		h.cancel()
		h.wg.Wait()
		err = h.store.Close()
	})
	return err
}
