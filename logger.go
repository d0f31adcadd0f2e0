package kohonen

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with map-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSeed adds a seed field to the logger (useful for tagging ensemble members).
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithShape adds the lattice size and data dimension to the logger.
func (l *Logger) WithShape(neurons, dimension int) *Logger {
	return &Logger{
		Logger: l.Logger.With("neurons", neurons, "dimension", dimension),
	}
}

// LogInit logs weight initialization.
func (l *Logger) LogInit(ctx context.Context, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "init failed",
			"samples", samples,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "map initialized",
			"samples", samples,
		)
	}
}

// LogRun logs a batch of training steps.
func (l *Logger) LogRun(ctx context.Context, steps int, st State, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"steps", steps,
			"iterations", st.Iterations,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "run completed",
			"steps", steps,
			"iterations", st.Iterations,
			"learning_factor", st.LearningFactor,
			"neighbor_size", st.NeighborSize,
			"elapsed", elapsed,
		)
	}
}

// LogProgress logs the state in the middle of a long run.
func (l *Logger) LogProgress(ctx context.Context, done, total int, st State) {
	l.InfoContext(ctx, "training",
		"done", done,
		"total", total,
		"learning_factor", st.LearningFactor,
		"neighbor_size", st.NeighborSize,
	)
}

// LogReset logs a reset.
func (l *Logger) LogReset(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reset failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "map reset")
	}
}
