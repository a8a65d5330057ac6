// Package filter provides implementations for filter modules.
package filter

import (
	"context"
	"log/slog"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// StubModule is a placeholder filter module for testing the run flow.
// It passes through records unchanged.
type StubModule struct {
	ModuleType string
	Index      int
	Err        error
}

// NewStub creates a new stub filter module.
func NewStub(moduleType string, index int) *StubModule {
	return &StubModule{
		ModuleType: moduleType,
		Index:      index,
	}
}

// Process passes through records unchanged, or returns the configured error.
func (m *StubModule) Process(_ context.Context, records []map[string]string) ([]map[string]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	logger.Debug("stub filter processing records",
		slog.String("type", m.ModuleType),
		slog.Int("index", m.Index),
		slog.Int("records", len(records)))

	return records, nil
}

// Verify StubModule implements Module
var _ Module = (*StubModule)(nil)
