// Package consolehandler writes formatted log entries to an io.Writer,
// stdout by default.
//
// In async mode a bounded queue decouples callers from the writer; the
// per-level overflow policies from the handler package decide whether a
// full queue drops the newest entry, the oldest, or blocks briefly and
// falls back to a synchronous write. Close drains the queue with a
// configurable timeout so shutdown never hangs on a stuck writer.
package consolehandler
