package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Logger writes progress to stdout and problems to stderr, optionally
// mirroring every event into a JSONL file.
type Logger struct {
	debugEnabled atomic.Bool
	pretty       bool
	mu           sync.Mutex
	out          io.Writer
	errOut       io.Writer
	fileSink     *fileSink
}

type Event struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Fields  map[string]any
}

func New(debug bool) *Logger {
	logger := &Logger{
		pretty: shouldPrettyPrint(os.Stdout),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	logger.debugEnabled.Store(debug)
	return logger
}

// Discard returns a logger that drops terminal output. Used by tests and
// library callers that do not want console noise.
func Discard() *Logger {
	logger := New(false)
	logger.SetOutput(io.Discard, io.Discard)
	return logger
}

func Field(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// SetOutput redirects terminal output. Plain formatting is used for
// anything that is not the process stdout.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
	l.errOut = errOut
	l.pretty = false
}

func (l *Logger) EnableFilePersistence(maxBytes int64) error {
	if l == nil {
		return nil
	}
	dir, err := DefaultLogDirPath()
	if err != nil {
		return err
	}
	sink, err := newFileSink(dir, maxBytes)
	if err != nil {
		return err
	}
	l.mu.Lock()
	old := l.fileSink
	l.fileSink = sink
	l.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	sink := l.fileSink
	l.fileSink = nil
	l.mu.Unlock()
	if sink == nil {
		return nil
	}
	return sink.Close()
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	// Debug lines still reach the file sink when hidden from the terminal.
	l.log(slog.LevelDebug, msg, fields, l.debugEnabled.Load())
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelInfo, msg, fields, true)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelWarn, msg, fields, true)
}

func (l *Logger) Error(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelError, msg, fields, true)
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr, show bool) {
	event := Event{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  attrsToMap(attrs),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileSink != nil {
		_ = l.fileSink.WriteEvent(event)
	}
	if !show {
		return
	}
	w := l.out
	if level >= slog.LevelWarn {
		w = l.errOut
	}
	if w == nil {
		return
	}
	if l.pretty {
		_, _ = io.WriteString(w, FormatEventANSI(event))
		return
	}
	_, _ = io.WriteString(w, FormatEventLine(event))
}
