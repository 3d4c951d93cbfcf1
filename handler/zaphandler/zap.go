package zaphandler

import (
	"math"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/log4g/log4g/core"
	"github.com/log4g/log4g/handler"
	"github.com/log4g/log4g/location"
)

// Core adapts a handler.Handler to the zapcore.Core interface so zap
// loggers can feed the framework's handlers. Caller data attached by
// zap (zap.AddCaller) is carried into the entry's location.
type Core struct {
	handler handler.Handler
	level   core.Level
	fields  []core.Field
}

// NewCore creates a zapcore.Core forwarding to the given handler.
func NewCore(h handler.Handler, level core.Level) *Core {
	return &Core{
		handler: h,
		level:   level,
	}
}

// Enabled reports whether entries at the given zap level are handled.
func (c *Core) Enabled(level zapcore.Level) bool {
	return zapLevelToCore(level) >= c.level
}

// With returns a copy of the core with the fields bound to every entry.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := &Core{
		handler: c.handler,
		level:   c.level,
		fields:  make([]core.Field, len(c.fields), len(c.fields)+len(fields)),
	}
	copy(clone.fields, c.fields)
	for _, f := range fields {
		clone.fields = append(clone.fields, zapFieldToField(f))
	}
	return clone
}

// Check registers the core with the checked entry when enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the zap entry and forwards it to the wrapped handler.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	entry.Level = zapLevelToCore(ent.Level)
	entry.Message = ent.Message

	if ent.Caller.Defined {
		entry.Location = location.New(ent.Caller.File, ent.Caller.Function, ent.Caller.Line)
	}

	if len(c.fields) > 0 {
		entry.Fields = append(entry.Fields, c.fields...)
	}
	for _, f := range fields {
		entry.Fields = append(entry.Fields, zapFieldToField(f))
	}

	err := c.handler.Handle(entry)
	if r, ok := c.handler.(handler.Recycler); ok && r.CanRecycleEntry() {
		core.PutEntry(entry)
	}
	return err
}

// Sync flushes the wrapped handler when it supports flushing.
func (c *Core) Sync() error {
	type flusher interface{ Flush() error }
	if f, ok := c.handler.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// zapLevelToCore converts a zapcore.Level to a core.Level.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.PanicLevel:
		return core.PanicLevel
	case level >= zapcore.FatalLevel:
		return core.FatalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarnLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// zapFieldToField converts a zapcore.Field into a core.Field. Common
// scalar types map onto the fixed-size slots; everything else goes
// through a map encoder and lands in the Any slot.
func zapFieldToField(f zapcore.Field) core.Field {
	switch f.Type {
	case zapcore.StringType:
		return core.Field{Key: f.Key, Type: core.StringType, Str: f.String}
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer}
	case zapcore.Float64Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: math.Float64frombits(uint64(f.Integer))}
	case zapcore.Float32Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: float64(math.Float32frombits(uint32(f.Integer)))}
	case zapcore.BoolType:
		return core.Field{Key: f.Key, Type: core.BoolType, Int64: f.Integer}
	case zapcore.DurationType:
		return core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer}
	case zapcore.TimeType:
		return core.Field{Key: f.Key, Type: core.TimeType, Int64: f.Integer}
	case zapcore.TimeFullType:
		if t, ok := f.Interface.(time.Time); ok {
			return core.Field{Key: f.Key, Type: core.TimeType, Int64: t.UnixNano()}
		}
		return core.Field{Key: f.Key, Type: core.AnyType, Any: f.Interface}
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()}
		}
		return core.Field{Key: f.Key, Type: core.AnyType, Any: f.Interface}
	default:
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		return core.Field{Key: f.Key, Type: core.AnyType, Any: enc.Fields[f.Key]}
	}
}
