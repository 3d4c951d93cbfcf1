// Package filehandler writes formatted log entries to a file with
// automatic rotation.
//
// Rotation triggers on size (MaxSize) or age (RotateInterval); rotated
// files keep the original name with a timestamp suffix and MaxBackups
// bounds how many are retained. Writes go through a bufio.Writer that a
// background goroutine flushes on FlushInterval, so quiet loggers still
// reach disk promptly. Async mode queues entries to a worker goroutine
// and drops on overflow rather than blocking the caller.
package filehandler
