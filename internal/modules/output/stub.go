// Package output provides implementations for output modules.
package output

import (
	"context"
	"log/slog"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// StubModule is a placeholder output module for exercising the run flow in
// tests. It records what it was asked to send.
type StubModule struct {
	ModuleType string
	Sent       []map[string]string
	Err        error
}

// NewStub creates a new stub output module.
func NewStub(moduleType string) *StubModule {
	return &StubModule{ModuleType: moduleType}
}

// Send captures the records, or returns the configured error.
func (m *StubModule) Send(_ context.Context, records []map[string]string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}

	m.Sent = append(m.Sent, records...)

	logger.Debug("stub output sending records",
		slog.String("type", m.ModuleType),
		slog.Int("records", len(records)))

	return len(records), nil
}

// Close releases resources (no-op for stub).
func (m *StubModule) Close() error {
	return nil
}

// Verify StubModule implements Module
var _ Module = (*StubModule)(nil)
