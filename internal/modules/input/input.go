// Package input provides implementations for input modules.
// Input modules are responsible for reading quote export records from
// source files.
package input

import "context"

// Module represents an input module that reads records from a source.
type Module interface {
	// Fetch reads all records from the source.
	// The context can be used to cancel long-running reads.
	// Records are flat maps from column name to raw text, keyed by the
	// source's header row, in source order.
	Fetch(ctx context.Context) ([]map[string]string, error)

	// Close releases any resources held by the module.
	Close() error
}
