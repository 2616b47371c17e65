// logging.go - structured logging wrapper.
//
// Every component that needs to log depends on this Logger interface;
// direct use of go.uber.org/zap is kept to this file so the underlying
// library stays swappable.
package xmldiff

import (
	"go.uber.org/zap"
)

// Logger is the structured logging interface the CLI, server, and diff
// engine depend on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Sync() error
}

// Field is a typed key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field.
func F(key string, value interface{}) Field { return Field{Key: key, Value: value} }

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger returns a production-configured zap-backed Logger. If debug is
// true, debug-level messages are also emitted.
func NewLogger(debug bool) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: base.Sugar()}, nil
}

// NewNopLogger returns a Logger that discards everything - used in tests and
// as a safe zero value.
func NewNopLogger() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.sugar.Debugw(msg, toArgs(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.sugar.Infow(msg, toArgs(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.sugar.Errorw(msg, toArgs(fields)...) }
func (l *zapLogger) Sync() error                       { return l.sugar.Sync() }

func toArgs(fields []Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}
