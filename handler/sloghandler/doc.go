// Package sloghandler adapts framework handlers to the standard
// log/slog.Handler interface. With WithSource enabled the record's
// program counter is resolved into the entry's call-site location, so
// downstream formatters and sinks see the same caller data as entries
// logged natively.
package sloghandler
