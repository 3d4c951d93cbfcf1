// Package zaphandler implements zapcore.Core on top of a framework
// handler, letting existing zap call sites deliver entries into the
// framework's sinks. Caller data from zap.AddCaller becomes the
// entry's call-site location.
package zaphandler
