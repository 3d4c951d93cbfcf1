// Package handler provides the Handler interface and the shared
// infrastructure for dispatching log entries to outputs.
//
// Async handlers send entries to a bounded channel processed by a
// background goroutine, which keeps the caller's hot path fast even
// under slow I/O. When the queue is full, each handler applies a
// per-level OverflowPolicy: DropNewest (default for Debug/Info/Warn),
// DropOldest, or Block with a configurable timeout (default for
// Error). Low-priority logs never stall the application while errors
// are never silently dropped.
//
// Implementations live in sub-packages:
//
//   - consolehandler writes formatted entries to any io.Writer.
//   - filehandler writes to a file with automatic rotation by size or
//     interval, and manages old backup cleanup.
//   - sloghandler adapts a Handler to log/slog.Handler, allowing log4g
//     to serve as a drop-in backend for the standard library.
//   - zaphandler exposes a zapcore.Core that forwards zap entries,
//     including their caller information, into a Handler.
//   - dbhandler batches entries into a SQL table through gorm.
//
// MultiHandler, defined here, fans out one entry to several children.
//
// All handlers track dropped, blocked, and processed counts via the
// Stats type; StatsCollector exports those counters as Prometheus
// metrics for runtime monitoring.
package handler
