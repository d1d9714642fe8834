package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	log *slog.Logger
}

// New returns a logger writing one JSON object per line to stdout.
func New(service string) Logger {
	return NewWithWriter(service, os.Stdout)
}

func NewWithWriter(service string, w io.Writer) Logger {
	hostname, _ := os.Hostname()
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	})
	return &jsonLogger{
		log: slog.New(h).With(slog.String("service", service), slog.String("hostname", hostname)),
	}
}

// Discard returns a logger that drops every entry.
func Discard() Logger {
	return NewWithWriter("discard", io.Discard)
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.write(slog.LevelInfo, action, message, requestID, details, nil)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.write(slog.LevelDebug, action, message, requestID, details, nil)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.write(slog.LevelError, action, message, requestID, details, err)
}

func (l *jsonLogger) write(level slog.Level, action, message, requestID string, details map[string]interface{}, err error) {
	attrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("action", action),
	}
	if len(details) > 0 {
		attrs = append(attrs, slog.Any("details", details))
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("type", fmt.Sprintf("%T", err)),
		))
	}
	l.log.LogAttrs(context.Background(), level, message, attrs...)
}

// replaceAttr maps slog's built-in keys onto the LogEntry schema.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339Nano))
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
