// Package filter provides implementations for filter modules.
// Filter modules admit, transform, and conditionally process quote records.
package filter

import "context"

// Error handling modes shared across filter modules.
const (
	OnErrorFail = "fail"
	OnErrorSkip = "skip"
	OnErrorLog  = "log"
)

// Module represents a filter module that transforms records.
type Module interface {
	// Process transforms the input records.
	// Returns the transformed records; the output may be shorter than the
	// input when records are filtered out.
	Process(ctx context.Context, records []map[string]string) ([]map[string]string, error)
}
