package core

import (
	"sync"
	"time"

	"github.com/log4g/log4g/location"
)

// Entry represents a log event with all its metadata. The call site,
// when captured, travels with the entry as a location.Info value; an
// entry logged without caller capture carries the sentinel unavailable
// value instead.
type Entry struct {
	Time     time.Time
	Level    Level
	Message  string
	Fields   []Field
	Location location.Info
}

// entryPool recycles Entry objects to keep the hot path allocation-free.
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields:   make([]Field, 0, 8), // covers most log calls
			Location: location.Unavailable(),
		}
	},
}

// GetEntry retrieves a reset Entry from the pool.
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.Location = location.Unavailable()
	return e
}

// PutEntry returns an Entry to the pool. The location is reset to the
// unavailable value so a recycled entry can never leak the previous
// event's call site.
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Location = location.Unavailable()
	entryPool.Put(e)
}
