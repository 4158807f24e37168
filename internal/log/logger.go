// Package log is the structured logger used across vimpi. It is a thin
// layer over logrus that adds typed fields and error classification.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"vimpi/internal/errors"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	mu     sync.RWMutex
	logger = NewLogger()
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type settings struct {
	out   io.Writer
	file  string
	json  bool
	debug bool
}

// Option configures a Logger.
type Option func(*settings)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithFile appends log lines to the file at path, creating it if needed.
// It takes precedence over WithOutput, whose writer is used only when the
// file cannot be opened.
func WithFile(path string) Option {
	return func(s *settings) { s.file = path }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(s *settings) { s.json = true }
}

// WithDebug enables debug level output.
func WithDebug(debug bool) Option {
	return func(s *settings) { s.debug = debug }
}

// Logger writes leveled, structured entries.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a logger. Without options it writes text to stderr at
// info level.
func NewLogger(opts ...Option) *Logger {
	s := settings{out: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}

	base := logrus.New()
	l := &Logger{}

	out := s.out
	if s.file != "" {
		f, err := os.OpenFile(s.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open log file %s: %v\n", s.file, err)
		} else {
			l.file = f
			out = f
		}
	}
	base.SetOutput(out)

	if s.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	if s.debug {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.InfoLevel)
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError attaches err and, for classified errors, its kind and subject.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }
func (l *Logger) Info(msg string)  { l.entry.Info(msg) }
func (l *Logger) Warn(msg string)  { l.entry.Warn(msg) }
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}

	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var screenErr *errors.ScreenError
	switch {
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
		if cause := fileErr.Cause(); cause != "" {
			fields = append(fields, F("cause", cause))
		}
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &screenErr):
		fields = append(fields, F("screen", screenErr.Screen()))
	}
	return fields
}

// Configure replaces the package logger. The previous logger's file is closed.
func Configure(opts ...Option) {
	next := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = next
	mu.Unlock()
	_ = prev.Close()
}

// Default returns the package logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Close releases the package logger's file.
func Close() error {
	return Default().Close()
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return Default().With(fields...)
}

// LogWithError returns the package logger with err attached.
func LogWithError(err error) *Logger {
	return Default().WithError(err)
}

// Debug logs msg at debug level on the package logger.
func Debug(msg string) { Default().Debug(msg) }
