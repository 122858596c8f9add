package logx

import "time"

// Logger is the structured logging contract every assigner package depends
// on; implementations carry key-value fields through to the sink.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Any wraps an arbitrarily typed value into a Field.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// String builds a string Field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int builds an int Field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 builds an int64 Field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Time builds a time.Time Field.
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

// Duration builds a time.Duration Field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}
