package pascifar

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/pascifar/acquire"
)

// Logger wraps slog.Logger with pascifar-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStage adds a stage field to the logger.
func (l *Logger) WithStage(stage Stage) *Logger {
	return &Logger{
		Logger: l.Logger.With("stage", string(stage)),
	}
}

// WithRoot adds the output root to the logger.
func (l *Logger) WithRoot(root string) *Logger {
	return &Logger{
		Logger: l.Logger.With("root", root),
	}
}

// LogSkip logs the short-circuit taken when the output root exists.
func (l *Logger) LogSkip(ctx context.Context, root string) {
	l.InfoContext(ctx, "output root exists, skipping build",
		"root", root,
	)
}

// LogAcquire logs the outcome of the acquisition stage.
func (l *Logger) LogAcquire(ctx context.Context, archives []acquire.Archive, err error) {
	names := make([]string, len(archives))
	for i, a := range archives {
		names[i] = a.Name
	}
	if err != nil {
		l.ErrorContext(ctx, "acquisition failed",
			"archives", names,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "archives ready",
			"archives", names,
		)
	}
}

// LogAssemble logs the outcome of the assembly stage.
func (l *Logger) LogAssemble(ctx context.Context, counts map[string]int, err error) {
	total := 0
	for _, n := range counts {
		total += n
	}
	if err != nil {
		l.ErrorContext(ctx, "assembly failed",
			"images", total,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "assembly completed",
			"images", total,
			"classes", len(counts),
		)
	}
}

// LogManifest logs the outcome of the manifest stage.
func (l *Logger) LogManifest(ctx context.Context, rows int, holes []string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "manifest failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "manifest written",
			"rows", rows,
			"empty_classes", holes,
		)
	}
}

// LogPublish logs the outcome of a publish.
func (l *Logger) LogPublish(ctx context.Context, files int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "publish failed",
			"uploaded", files,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "publish completed",
			"uploaded", files,
		)
	}
}
