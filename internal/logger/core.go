package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore wraps a console core and forwards entries at or above minLevel to
// the async DB writer.
type DBCore struct {
	zapcore.Core
	writer   *DBLogWriter
	minLevel zapcore.Level
	fields   []zapcore.Field
}

func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter, minLevel zapcore.Level) zapcore.Core {
	return &DBCore{
		Core:     baseCore,
		writer:   writer,
		minLevel: minLevel,
	}
}

// With keeps the DB wrapper when loggers are derived with extra fields.
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &DBCore{
		Core:     c.Core.With(fields),
		writer:   c.writer,
		minLevel: c.minLevel,
		fields:   merged,
	}
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= c.minLevel {
		all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
		all = append(all, c.fields...)
		c.writer.AddLog(buildEntry(entry, append(all, fields...)))
	}
	return c.Core.Write(entry, fields)
}

func buildEntry(entry zapcore.Entry, fields []zapcore.Field) LogEntry {
	out := LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		Caller:  entry.Caller.Function,
	}
	for _, f := range fields {
		if f.Type != zapcore.StringType {
			continue
		}
		switch f.Key {
		case "request_id":
			out.RequestID = f.String
		case "user_id":
			out.UserID = f.String
		case "ip":
			out.IpAddress = f.String
		}
	}
	return out
}
