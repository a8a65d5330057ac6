// Package input provides implementations for input modules.
package input

import (
	"context"
	"log/slog"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// StubModule is a placeholder input module for exercising the run flow in
// tests. It returns canned records without touching the file system.
type StubModule struct {
	ModuleType string
	Records    []map[string]string
	Err        error
}

// NewStub creates a new stub input module returning the given records.
func NewStub(moduleType string, records []map[string]string) *StubModule {
	return &StubModule{
		ModuleType: moduleType,
		Records:    records,
	}
}

// Fetch returns the canned records, or the configured error.
func (m *StubModule) Fetch(_ context.Context) ([]map[string]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	logger.Debug("stub input fetching records",
		slog.String("type", m.ModuleType),
		slog.Int("records", len(m.Records)))

	return m.Records, nil
}

// Close releases resources (no-op for stub).
func (m *StubModule) Close() error {
	return nil
}

// Verify StubModule implements Module
var _ Module = (*StubModule)(nil)
