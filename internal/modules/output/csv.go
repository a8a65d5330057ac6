// Package output provides implementations for output modules.
// CSV module writes the Previous Service contact list as a CSV file.
package output

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jbec2912-cell/pervious-service-filter/internal/errhandling"
	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
	"github.com/jbec2912-cell/pervious-service-filter/internal/quote"
)

// DefaultOutputPath is the destination used when none is configured.
const DefaultOutputPath = "Previous Service Customer.csv"

// ErrMissingOutputPath is returned when no output path is configured.
var ErrMissingOutputPath = errors.New("output path is required")

// CSVConfig represents the configuration for a CSV output module.
type CSVConfig struct {
	// Path is the destination for the transformed CSV
	Path string `json:"path"`
}

// CSVModule writes records to a CSV file in the fixed Previous Service
// layout. The header row is always written, even when no records survive
// filtering, so the destination is a well-formed CSV either way.
//
// The write is atomic: records go to a temp file in the destination
// directory which replaces the destination on success. A failed run never
// leaves a half-written list behind.
type CSVModule struct {
	path string
}

// NewCSVFromConfig creates a new CSV output module from configuration.
func NewCSVFromConfig(config CSVConfig) (*CSVModule, error) {
	if config.Path == "" {
		return nil, ErrMissingOutputPath
	}

	logger.Debug("csv output module initialized", slog.String("path", config.Path))

	return &CSVModule{path: config.Path}, nil
}

// ParseCSVConfig parses a raw configuration map into CSVConfig.
// A missing path falls back to the default destination.
func ParseCSVConfig(config map[string]interface{}) (CSVConfig, error) {
	cfg := CSVConfig{Path: DefaultOutputPath}

	if raw, ok := config["path"]; ok {
		path, ok := raw.(string)
		if !ok || path == "" {
			return cfg, errors.New("'path' must be a non-empty string")
		}
		cfg.Path = path
	}

	return cfg, nil
}

// Send formats each record through the Previous Service row layout and
// writes the result, header first, in input order.
func (m *CSVModule) Send(ctx context.Context, records []map[string]string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	dir := filepath.Dir(m.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return 0, errhandling.NewIOError(fmt.Sprintf("creating temp file in %q", dir), err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	bw := bufio.NewWriter(tmp)
	writer := csv.NewWriter(bw)

	if err := writer.Write(quote.OutputHeaders); err != nil {
		cleanup()
		return 0, errhandling.NewIOError("writing header row", err)
	}

	written := 0
	for i, record := range records {
		if i > 0 && i%100 == 0 {
			select {
			case <-ctx.Done():
				cleanup()
				return 0, ctx.Err()
			default:
			}
		}

		if err := writer.Write(quote.BuildRow(record)); err != nil {
			cleanup()
			return 0, errhandling.NewIOError(fmt.Sprintf("writing row %d", i), err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		cleanup()
		return 0, errhandling.NewIOError("flushing csv writer", err)
	}
	if err := bw.Flush(); err != nil {
		cleanup()
		return 0, errhandling.NewIOError("flushing output buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return 0, errhandling.NewIOError("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, errhandling.NewIOError("closing temp file", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return 0, errhandling.NewIOError("setting output permissions", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, errhandling.NewIOError(fmt.Sprintf("replacing output %q", m.path), err)
	}

	logger.Debug("csv output written",
		slog.String("path", m.path),
		slog.Int("records", written),
	)

	return written, nil
}

// Close releases resources (no-op: the file handle only lives inside Send).
func (m *CSVModule) Close() error {
	return nil
}

// Verify CSVModule implements Module
var _ Module = (*CSVModule)(nil)
