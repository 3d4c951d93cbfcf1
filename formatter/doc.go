// Package formatter defines how log entries are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which formats into a caller-provided buffer.
// Handlers check for the optional interfaces at construction time and
// prefer them when available, eliminating intermediate allocations on
// the write path.
//
// Both built-in formatters (TextFormatter and JSONFormatter) implement
// all three. They use a pooled bytes.Buffer internally and rely on
// Go's Append-style functions (time.AppendFormat, strconv.AppendInt)
// to avoid per-call allocations. The TextFormatter additionally
// pre-computes level bracket strings (" [INFO] ", etc.) so that the
// most common path is a single WriteString call.
//
// When IncludeCaller is set, formatters render the entry's call site
// from its location.Info: the short file name and line for text, plus
// the raw function signature for JSON. Entries holding the sentinel
// unavailable location are rendered without a call-site block.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
