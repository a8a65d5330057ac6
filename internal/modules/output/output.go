// Package output provides implementations for output modules.
// Output modules are responsible for writing the formatted contact list to
// its destination.
package output

import "context"

// Module represents an output module that writes records to a destination.
type Module interface {
	// Send writes records to the destination.
	// Returns the number of records successfully written and any error.
	Send(ctx context.Context, records []map[string]string) (int, error)

	// Close releases any resources held by the module.
	Close() error
}
