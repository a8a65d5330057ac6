// Package listing provides public types for Previous Service list jobs.
// This package is intended to be importable by external projects that need
// to drive the prevsvc runtime programmatically.
package listing

import "time"

// Job represents a complete list-building job configuration.
// It contains the modules (Input, Filters, Output) and the admission
// thresholds required to turn a quote export into a contact list.
type Job struct {
	// Name is the human-readable name of the job
	Name string `json:"name"`

	// Description provides additional context about the job
	Description string `json:"description,omitempty"`

	// Input defines the data source module
	Input *ModuleConfig `json:"input"`

	// Filters is an ordered list of record filter modules applied after
	// the built-in admission filter
	Filters []ModuleConfig `json:"filters,omitempty"`

	// Output defines the list destination module
	Output *ModuleConfig `json:"output"`

	// MaxYear keeps only trades with TradeYear <= MaxYear (inclusive)
	MaxYear int `json:"maxYear"`

	// MinEquity discards rows with parseable TradeEquity < MinEquity (inclusive lower bound)
	MinEquity float64 `json:"minEquity"`
}

// ModuleConfig represents the configuration for a job module.
// Modules can be Input, Filter, or Output types.
type ModuleConfig struct {
	// Type identifies the module type (e.g., "csv", "condition", "script")
	Type string `json:"type"`

	// Config contains the module-specific configuration
	Config map[string]interface{} `json:"config"`
}

// RunResult represents the result of a job run.
type RunResult struct {
	// JobName is the name of the executed job
	JobName string `json:"jobName"`

	// Status is the run status ("success" or "error")
	Status string `json:"status"`

	// StartedAt is when the run started
	StartedAt time.Time `json:"startedAt"`

	// CompletedAt is when the run completed
	CompletedAt time.Time `json:"completedAt"`

	// RowsRead is the number of records read from the input source
	RowsRead int `json:"rowsRead"`

	// RowsWritten is the number of admitted rows written to the output sink
	RowsWritten int `json:"rowsWritten"`

	// RowsExcluded is the number of records dropped by the filter stage
	RowsExcluded int `json:"rowsExcluded"`

	// Error contains error details if the run failed
	Error *RunError `json:"error,omitempty"`
}

// RunError contains details about a run failure.
type RunError struct {
	// Code is the error code
	Code string `json:"code"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// Module is the module where the error occurred
	Module string `json:"module,omitempty"`

	// Category classifies the failure (config, io, data, unknown)
	Category string `json:"category,omitempty"`

	// Details contains additional error context
	Details map[string]interface{} `json:"details,omitempty"`
}
