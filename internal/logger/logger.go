package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

type implLogger struct {
	logger *log.Logger
	slog   *slog.Logger
	level  string
}

// Options selects the log level, output format (text or json) and destination
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// New creates a text Logger writing to stdout
func New(level string) Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a Logger in the requested format
func NewWithOptions(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	l := &implLogger{level: strings.ToLower(opts.Level)}
	if strings.EqualFold(opts.Format, "json") {
		l.slog = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		l.logger = log.New(w, "", log.LstdFlags)
	}
	return l
}

func (l *implLogger) shouldLog(level string) bool {
	levels := map[string]int{
		"debug": 0,
		"info":  1,
		"warn":  2,
		"error": 3,
	}

	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) emit(ctx context.Context, level string, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}
	text := fmt.Sprintf(msg, args...)
	jobID := JobFrom(ctx)

	if l.slog != nil {
		attrs := []any{}
		if jobID != "" {
			attrs = append(attrs, slog.String("job", jobID))
		}
		l.slog.Log(ctx, slogLevel(level), text, attrs...)
		return
	}

	prefix := "[" + strings.ToUpper(level) + "] "
	if jobID != "" {
		prefix += "[job=" + jobID + "] "
	}
	l.logger.Print(prefix + text)
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, "debug", msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, "info", msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, "warn", msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, "error", msg, args)
}

type jobKey struct{}

// WithJob tags every line logged with the returned context with the job id
func WithJob(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobKey{}, jobID)
}

// JobFrom returns the job id attached by WithJob
func JobFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(jobKey{}).(string)
	return id
}
