// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the
// runtime, and adds run-context helpers so job start/end, stage progress,
// and metrics are logged with consistent snake_case field names.
package logger

import (
	"log/slog"
	"os"
	"time"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	// JSON handler for structured logging
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(logger *slog.Logger) {
	Logger = logger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// RunContext contains context information for job run logging.
type RunContext struct {
	// JobName identifies the job being run
	JobName string
	// Stage is the current run stage (input, filter, output)
	Stage string
	// ModuleType is the type of module being executed (csv, condition, ...)
	ModuleType string
	// DryRun indicates the sink is skipped for this run
	DryRun bool
}

// StageError contains structured error information for stage logging.
type StageError struct {
	// Code is the error code (e.g. INPUT_FAILED)
	Code string
	// Message is the human-readable error message
	Message string
}

// RunMetrics contains performance metrics for run logging.
type RunMetrics struct {
	TotalDuration  time.Duration
	InputDuration  time.Duration
	FilterDuration time.Duration
	OutputDuration time.Duration
	RowsRead       int
	RowsWritten    int
	RowsExcluded   int
}

// LogRunStart logs the start of a job run.
func LogRunStart(ctx RunContext) {
	Logger.Info("run started", contextAttrs(ctx)...)
}

// LogRunEnd logs the completion of a job run with its final status.
func LogRunEnd(ctx RunContext, status string, rowsWritten int, duration time.Duration) {
	attrs := contextAttrs(ctx)
	attrs = append(attrs,
		slog.String("status", status),
		slog.Int("rows_written", rowsWritten),
		slog.Duration("duration", duration),
	)
	Logger.Info("run completed", attrs...)
}

// LogStageStart logs the start of a run stage (input, filter, output).
func LogStageStart(ctx RunContext) {
	Logger.Info("stage started", contextAttrs(ctx)...)
}

// LogStageEnd logs the completion of a run stage.
// If err is non-nil, logs as an error with error details.
func LogStageEnd(ctx RunContext, recordCount int, duration time.Duration, err *StageError) {
	attrs := contextAttrs(ctx)
	attrs = append(attrs,
		slog.Int("record_count", recordCount),
		slog.Duration("duration", duration),
	)

	if err != nil {
		attrs = append(attrs,
			slog.String("error_code", err.Code),
			slog.String("error", err.Message),
		)
		Logger.Error("stage failed", attrs...)
		return
	}
	Logger.Info("stage completed", attrs...)
}

// LogMetrics logs run performance metrics after a successful run.
func LogMetrics(ctx RunContext, metrics RunMetrics) {
	attrs := contextAttrs(ctx)
	attrs = append(attrs,
		slog.Duration("total_duration", metrics.TotalDuration),
		slog.Duration("input_duration", metrics.InputDuration),
		slog.Duration("filter_duration", metrics.FilterDuration),
		slog.Duration("output_duration", metrics.OutputDuration),
		slog.Int("rows_read", metrics.RowsRead),
		slog.Int("rows_written", metrics.RowsWritten),
		slog.Int("rows_excluded", metrics.RowsExcluded),
	)
	Logger.Info("run metrics", attrs...)
}

// contextAttrs builds slog attributes from a RunContext.
// Only non-empty fields are included.
func contextAttrs(ctx RunContext) []any {
	attrs := make([]any, 0, 8)
	attrs = append(attrs, slog.String("job_name", ctx.JobName))
	if ctx.Stage != "" {
		attrs = append(attrs, slog.String("stage", ctx.Stage))
	}
	if ctx.ModuleType != "" {
		attrs = append(attrs, slog.String("module_type", ctx.ModuleType))
	}
	if ctx.DryRun {
		attrs = append(attrs, slog.Bool("dry_run", true))
	}
	return attrs
}
