// Package input provides implementations for input modules.
// CSV module reads header-keyed records from a local CSV export.
package input

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jbec2912-cell/pervious-service-filter/internal/errhandling"
	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// Common errors for the CSV input module.
var (
	// ErrMissingPath is returned when no input path is configured.
	ErrMissingPath = errors.New("input path is required")
	// ErrEmptyFile is returned when the source has no header row.
	ErrEmptyFile = errors.New("input file has no header row")
)

// CSVConfig represents the configuration for a CSV input module.
type CSVConfig struct {
	// Path is the location of the quote export file (required)
	Path string `json:"path"`
}

// CSVModule reads records from a CSV quote export. The first row names the
// columns and becomes the record keys. A leading UTF-8 byte-order marker is
// tolerated, since the exports come from spreadsheet tools that emit one.
type CSVModule struct {
	path string
}

// NewCSVFromConfig creates a new CSV input module from configuration.
func NewCSVFromConfig(config CSVConfig) (*CSVModule, error) {
	if config.Path == "" {
		return nil, ErrMissingPath
	}

	logger.Debug("csv input module initialized", slog.String("path", config.Path))

	return &CSVModule{path: config.Path}, nil
}

// ParseCSVConfig parses a raw configuration map into CSVConfig.
func ParseCSVConfig(config map[string]interface{}) (CSVConfig, error) {
	var cfg CSVConfig

	path, ok := config["path"].(string)
	if !ok || path == "" {
		return cfg, errors.New("'path' is required and must be a non-empty string")
	}
	cfg.Path = path

	return cfg, nil
}

// Fetch reads the whole export into memory, one map per data row.
// A row shorter than the header contributes only the columns it has; extra
// cells beyond the header are dropped. Values are raw text, untouched here:
// normalization happens downstream.
func (m *CSVModule) Fetch(ctx context.Context) ([]map[string]string, error) {
	file, err := os.Open(m.path)
	if err != nil {
		return nil, errhandling.NewIOError(fmt.Sprintf("opening input %q", m.path), err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("failed to close input file",
				slog.String("path", m.path),
				slog.String("error", closeErr.Error()),
			)
		}
	}()

	// BOMOverride strips an optional UTF-8 BOM and passes everything else
	// through untouched.
	reader := csv.NewReader(transform.NewReader(file, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, errhandling.NewDataError(fmt.Sprintf("reading header of %q", m.path), err)
	}

	var records []map[string]string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errhandling.NewDataError(fmt.Sprintf("reading row of %q", m.path), err)
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			record[name] = row[i]
		}
		records = append(records, record)
	}

	logger.Debug("csv input fetched",
		slog.String("path", m.path),
		slog.Int("columns", len(header)),
		slog.Int("records", len(records)),
	)

	return records, nil
}

// Close releases resources (no-op: the file handle only lives inside Fetch).
func (m *CSVModule) Close() error {
	return nil
}

// Verify CSVModule implements Module
var _ Module = (*CSVModule)(nil)
