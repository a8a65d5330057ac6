// Package runtime provides the job execution engine.
// It orchestrates the execution of Input, Filter, and Output modules.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jbec2912-cell/pervious-service-filter/internal/errhandling"
	"github.com/jbec2912-cell/pervious-service-filter/internal/factory"
	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/input"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// Error codes for run errors
const (
	ErrCodeInputFailed  = "INPUT_FAILED"
	ErrCodeFilterFailed = "FILTER_FAILED"
	ErrCodeOutputFailed = "OUTPUT_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// Run status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common errors
var (
	// ErrNilJob is returned when the job configuration is nil
	ErrNilJob = errors.New("job configuration is nil")

	// ErrNilInputModule is returned when the input module is nil
	ErrNilInputModule = errors.New("input module is nil")

	// ErrNilOutputModule is returned when the output module is nil
	ErrNilOutputModule = errors.New("output module is nil")
)

// Executor runs a list-building job: Input → Filters → Output.
//
// The Executor only interacts with modules through their interfaces, so
// modules can be developed independently without depending on runtime
// internals. The admission filter always runs first; job-configured
// filters run after it, in order.
type Executor struct {
	inputModule   input.Module
	filterModules []filter.Module
	outputModule  output.Module
	dryRun        bool
}

// stageTimings holds timing measurements for each run stage.
type stageTimings struct {
	inputDuration  time.Duration
	filterDuration time.Duration
	outputDuration time.Duration
}

// NewExecutorWithModules creates a new executor with all modules configured.
// This is the primary constructor for dependency injection.
//
// When dryRun is true the output module is never invoked; the run reports
// the rows that would have been written.
func NewExecutorWithModules(
	inputModule input.Module,
	filterModules []filter.Module,
	outputModule output.Module,
	dryRun bool,
) *Executor {
	return &Executor{
		inputModule:   inputModule,
		filterModules: filterModules,
		outputModule:  outputModule,
		dryRun:        dryRun,
	}
}

// NewExecutorForJob builds an executor from a job configuration.
// Modules are created through the registry via the factory; the admission
// filter is constructed from the job's thresholds and placed ahead of any
// configured filters.
func NewExecutorForJob(job *listing.Job, dryRun bool) (*Executor, error) {
	if job == nil {
		return nil, ErrNilJob
	}

	inputModule, err := factory.CreateInputModule(job.Input)
	if err != nil {
		return nil, fmt.Errorf("creating input module: %w", err)
	}

	admission, err := filter.NewAdmissionFromConfig(filter.AdmissionConfig{
		MaxYear:   job.MaxYear,
		MinEquity: job.MinEquity,
	})
	if err != nil {
		return nil, fmt.Errorf("creating admission filter: %w", err)
	}

	extraFilters, err := factory.CreateFilterModules(job.Filters)
	if err != nil {
		return nil, fmt.Errorf("creating filter modules: %w", err)
	}

	outputModule, err := factory.CreateOutputModule(job.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output module: %w", err)
	}

	filters := make([]filter.Module, 0, len(extraFilters)+1)
	filters = append(filters, admission)
	filters = append(filters, extraFilters...)

	return NewExecutorWithModules(inputModule, filters, outputModule, dryRun), nil
}

// Execute runs a job with a background context.
// For cancellation support, use ExecuteWithContext.
func (e *Executor) Execute(job *listing.Job) (*listing.RunResult, error) {
	return e.ExecuteWithContext(context.Background(), job)
}

// ExecuteWithContext runs a job with the given context.
//
// Execution flow:
//  1. Validate the job and modules
//  2. Execute the input module to read the quote export
//  3. Execute filter modules in sequence
//  4. Execute the output module to write the contact list (unless dry-run)
//  5. Return a RunResult with status and row counts
//
// The input module is closed immediately after its stage completes; the
// output module is closed at the end of the run.
func (e *Executor) ExecuteWithContext(ctx context.Context, job *listing.Job) (*listing.RunResult, error) {
	startedAt := time.Now()
	result := e.newErrorResult(startedAt)
	var timings stageTimings

	if err := e.validateExecution(job, result); err != nil {
		if job != nil {
			runCtx := logger.RunContext{JobName: job.Name, DryRun: e.dryRun}
			logger.LogRunStart(runCtx)
			logger.LogRunEnd(runCtx, StatusError, 0, time.Since(startedAt))
		}
		return result, err
	}
	result.JobName = job.Name

	runCtx := logger.RunContext{JobName: job.Name, DryRun: e.dryRun}
	logger.LogRunStart(runCtx)

	if e.outputModule != nil {
		defer e.closeModule(job.Name, "output", e.outputModule)
	}

	records, inputDuration, err := e.executeInput(ctx, job, result)
	timings.inputDuration = inputDuration

	// Close the input module right after its stage so the source file
	// handle is released before filtering begins.
	if e.inputModule != nil {
		e.closeModule(job.Name, "input", e.inputModule)
		e.inputModule = nil
	}

	if err != nil {
		logger.LogRunEnd(runCtx, StatusError, 0, time.Since(startedAt))
		return result, err
	}
	result.RowsRead = len(records)

	filteredRecords, filterDuration, err := e.executeFilters(ctx, job, records, result)
	timings.filterDuration = filterDuration
	if err != nil {
		logger.LogRunEnd(runCtx, StatusError, 0, time.Since(startedAt))
		return result, err
	}
	result.RowsExcluded = len(records) - len(filteredRecords)

	outputDuration, err := e.executeOutput(ctx, job, filteredRecords, result)
	timings.outputDuration = outputDuration
	if err != nil {
		logger.LogRunEnd(runCtx, StatusError, result.RowsWritten, time.Since(startedAt))
		return result, err
	}

	e.finalizeSuccess(result, startedAt, job, timings)
	return result, nil
}

// newErrorResult creates a RunResult initialized with error status.
func (e *Executor) newErrorResult(startedAt time.Time) *listing.RunResult {
	return &listing.RunResult{
		StartedAt: startedAt,
		Status:    StatusError,
	}
}

// buildRunError creates a RunError with a classified category.
func buildRunError(code, module string, err error) *listing.RunError {
	return &listing.RunError{
		Code:     code,
		Message:  err.Error(),
		Module:   module,
		Category: string(errhandling.GetErrorCategory(err)),
	}
}

// validateExecution validates the job and modules before execution.
func (e *Executor) validateExecution(job *listing.Job, result *listing.RunResult) error {
	if job == nil {
		logger.Error("job execution failed: nil job configuration")
		result.CompletedAt = time.Now()
		result.Error = buildRunError(ErrCodeInvalidInput, "", ErrNilJob)
		return ErrNilJob
	}

	if e.inputModule == nil {
		logger.Error("job execution failed: input module is nil",
			slog.String("job_name", job.Name))
		result.CompletedAt = time.Now()
		result.Error = buildRunError(ErrCodeInvalidInput, "input", ErrNilInputModule)
		return ErrNilInputModule
	}

	if e.outputModule == nil && !e.dryRun {
		logger.Error("job execution failed: output module is nil",
			slog.String("job_name", job.Name))
		result.CompletedAt = time.Now()
		result.Error = buildRunError(ErrCodeInvalidInput, "output", ErrNilOutputModule)
		return ErrNilOutputModule
	}

	return nil
}

// moduleCloser interface for modules that can be closed.
type moduleCloser interface {
	Close() error
}

// closeModule closes a module and logs any error.
func (e *Executor) closeModule(jobName, moduleName string, m moduleCloser) {
	if err := m.Close(); err != nil {
		logger.Warn("failed to close module",
			slog.String("job_name", jobName),
			slog.String("module", moduleName),
			slog.String("error", err.Error()),
		)
	}
}

// executeInput executes the input module and returns the records read.
func (e *Executor) executeInput(ctx context.Context, job *listing.Job, result *listing.RunResult) ([]map[string]string, time.Duration, error) {
	stageCtx := logger.RunContext{
		JobName: job.Name,
		Stage:   "input",
		DryRun:  e.dryRun,
	}
	logger.LogStageStart(stageCtx)

	inputStartTime := time.Now()
	records, err := e.inputModule.Fetch(ctx)
	inputDuration := time.Since(inputStartTime)

	if err != nil {
		result.CompletedAt = time.Now()
		result.Error = buildRunError(ErrCodeInputFailed, "input", err)
		logger.LogStageEnd(stageCtx, 0, inputDuration, &logger.StageError{
			Code:    ErrCodeInputFailed,
			Message: err.Error(),
		})
		return nil, inputDuration, fmt.Errorf("executing input module: %w", err)
	}

	logger.LogStageEnd(stageCtx, len(records), inputDuration, nil)
	return records, inputDuration, nil
}

// executeFilters runs all filter modules in sequence and updates the result
// on error. The admission filter runs first, then job-configured filters.
func (e *Executor) executeFilters(ctx context.Context, job *listing.Job, records []map[string]string, result *listing.RunResult) ([]map[string]string, time.Duration, error) {
	stageCtx := logger.RunContext{
		JobName: job.Name,
		Stage:   "filter",
		DryRun:  e.dryRun,
	}
	logger.LogStageStart(stageCtx)

	filterStartTime := time.Now()
	currentRecords := records

	for i, filterModule := range e.filterModules {
		if filterModule == nil {
			logger.Warn("nil filter module encountered; skipping",
				slog.String("job_name", job.Name),
				slog.Int("filter_index", i),
			)
			continue
		}

		var err error
		currentRecords, err = filterModule.Process(ctx, currentRecords)
		if err != nil {
			filterDuration := time.Since(filterStartTime)
			result.CompletedAt = time.Now()
			errMsg := fmt.Sprintf("filter module %d failed: %v", i, err)
			result.Error = buildRunError(ErrCodeFilterFailed, "filter", err)
			result.Error.Message = errMsg
			result.Error.Details = map[string]interface{}{"filterIndex": i}
			logger.LogStageEnd(stageCtx, len(records), filterDuration, &logger.StageError{
				Code:    ErrCodeFilterFailed,
				Message: errMsg,
			})
			return nil, filterDuration, fmt.Errorf("executing filter module %d: %w", i, err)
		}
	}

	filterDuration := time.Since(filterStartTime)
	logger.LogStageEnd(stageCtx, len(currentRecords), filterDuration, nil)
	return currentRecords, filterDuration, nil
}

// executeOutput executes the output module and updates the result.
// In dry-run mode the sink is skipped and the run reports the rows that
// would have been written.
func (e *Executor) executeOutput(ctx context.Context, job *listing.Job, records []map[string]string, result *listing.RunResult) (time.Duration, error) {
	stageCtx := logger.RunContext{
		JobName: job.Name,
		Stage:   "output",
		DryRun:  e.dryRun,
	}
	logger.LogStageStart(stageCtx)

	if e.dryRun {
		logger.Debug("dry-run mode: skipping output module",
			slog.String("job_name", job.Name),
			slog.Int("rows_would_write", len(records)),
		)
		result.RowsWritten = len(records)
		logger.LogStageEnd(stageCtx, len(records), 0, nil)
		return 0, nil
	}

	outputStartTime := time.Now()
	rowsWritten, err := e.outputModule.Send(ctx, records)
	outputDuration := time.Since(outputStartTime)

	if err != nil {
		result.CompletedAt = time.Now()
		result.RowsWritten = rowsWritten
		result.Error = buildRunError(ErrCodeOutputFailed, "output", err)
		logger.LogStageEnd(stageCtx, len(records), outputDuration, &logger.StageError{
			Code:    ErrCodeOutputFailed,
			Message: err.Error(),
		})
		return outputDuration, fmt.Errorf("executing output module: %w", err)
	}

	result.RowsWritten = rowsWritten
	logger.LogStageEnd(stageCtx, rowsWritten, outputDuration, nil)
	return outputDuration, nil
}

// finalizeSuccess marks the run as successful and logs completion metrics.
func (e *Executor) finalizeSuccess(result *listing.RunResult, startedAt time.Time, job *listing.Job, timings stageTimings) {
	result.Status = StatusSuccess
	result.CompletedAt = time.Now()
	result.Error = nil

	totalDuration := time.Since(startedAt)

	runCtx := logger.RunContext{JobName: job.Name, DryRun: e.dryRun}
	logger.LogRunEnd(runCtx, StatusSuccess, result.RowsWritten, totalDuration)
	logger.LogMetrics(runCtx, logger.RunMetrics{
		TotalDuration:  totalDuration,
		InputDuration:  timings.inputDuration,
		FilterDuration: timings.filterDuration,
		OutputDuration: timings.outputDuration,
		RowsRead:       result.RowsRead,
		RowsWritten:    result.RowsWritten,
		RowsExcluded:   result.RowsExcluded,
	})
}
