// Package logger is the public API of log4g. Most users only need to
// import this package.
//
// A Logger is immutable after construction: all fields, the level,
// and the handler are set once via the Builder and never modified,
// which makes it safe for concurrent use without locking on the read
// path.
//
// The package initializes a default Logger (async, InfoLevel, text
// format to stdout) in init(). The package-level functions Info,
// Error, Debugf, etc. delegate to this default instance, so simple
// programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// WithCaller(true) captures the call site of every log call as a
// location value that travels with the entry; formatters render it
// and the location package can serialize it to the log4j wire format.
//
// Child loggers with extra fields are created via With, which returns
// a new Logger that shares the same handler but carries additional
// default fields:
//
//	reqLog := log.With(logger.String("request_id", id))
//
// Level checks happen before any allocation, so filtered-out messages
// cost only a single integer comparison.
package logger
