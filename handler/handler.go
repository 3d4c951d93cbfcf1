package handler

import (
	"time"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/location"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// FastHandler is an optional interface that handlers can implement
// to process log data directly without requiring an Entry from the pool.
type FastHandler interface {
	HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, loc location.Info) error
}

// Recycler is an optional interface reporting whether the caller may
// recycle an entry immediately after Handle returns. Handlers that keep
// a reference past Handle (async queues) must not implement it or must
// return false.
type Recycler interface {
	CanRecycleEntry() bool
}

// StatsProvider is an optional interface for handlers that track
// processing statistics.
type StatsProvider interface {
	Stats() Snapshot
}
