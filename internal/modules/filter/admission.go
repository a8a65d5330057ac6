// Package filter provides implementations for filter modules.
// Admission module keeps only rows that belong on the Previous Service list.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
	"github.com/jbec2912-cell/pervious-service-filter/internal/normalize"
	"github.com/jbec2912-cell/pervious-service-filter/internal/quote"
)

// Default admission thresholds.
const (
	// DefaultMaxYear keeps trades with TradeYear at or below this year.
	DefaultMaxYear = 2024
	// DefaultMinEquity discards rows with TradeEquity below this value.
	DefaultMinEquity = -6000.0
)

// AdmissionConfig represents the configuration for an admission filter module.
type AdmissionConfig struct {
	// MaxYear keeps vehicles with TradeYear <= this year
	MaxYear int `json:"maxYear"`
	// MinEquity discards rows with TradeEquity below this value
	MinEquity float64 `json:"minEquity"`
}

// AdmissionModule implements the Previous Service keep-predicate. A record
// is admitted when it has a usable first name, its trade year is not newer
// than MaxYear, its trade equity is not below MinEquity, and at least one
// phone column normalizes to a usable number. Checks run in that order and
// the first failure drops the record.
type AdmissionModule struct {
	maxYear   int
	minEquity float64
}

// NewAdmissionFromConfig creates a new admission filter module from configuration.
func NewAdmissionFromConfig(config AdmissionConfig) (*AdmissionModule, error) {
	logger.Debug("admission filter module initialized",
		slog.Int("max_year", config.MaxYear),
		slog.Float64("min_equity", config.MinEquity),
	)

	return &AdmissionModule{
		maxYear:   config.MaxYear,
		minEquity: config.MinEquity,
	}, nil
}

// ParseAdmissionConfig parses a raw configuration map into AdmissionConfig.
// Missing thresholds fall back to the defaults.
func ParseAdmissionConfig(config map[string]interface{}) (AdmissionConfig, error) {
	cfg := AdmissionConfig{
		MaxYear:   DefaultMaxYear,
		MinEquity: DefaultMinEquity,
	}

	if raw, ok := config["maxYear"]; ok {
		switch v := raw.(type) {
		case int:
			cfg.MaxYear = v
		case float64:
			cfg.MaxYear = int(v)
		default:
			return cfg, fmt.Errorf("'maxYear' must be an integer, got %T", raw)
		}
	}

	if raw, ok := config["minEquity"]; ok {
		switch v := raw.(type) {
		case float64:
			cfg.MinEquity = v
		case int:
			cfg.MinEquity = float64(v)
		default:
			return cfg, fmt.Errorf("'minEquity' must be a number, got %T", raw)
		}
	}

	return cfg, nil
}

// Process implements the filter.Module interface.
// It returns the admitted records in input order.
func (m *AdmissionModule) Process(ctx context.Context, records []map[string]string) ([]map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(records) == 0 {
		return records, nil
	}

	result := make([]map[string]string, 0, len(records))

	for i, record := range records {
		if i > 0 && i%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		if m.Keep(record) {
			result = append(result, record)
		}
	}

	logger.Debug("admission filter processed records",
		slog.Int("input_records", len(records)),
		slog.Int("admitted_records", len(result)),
	)

	return result, nil
}

// Keep reports whether a single record passes the admission checks.
//
// A year or equity column that is present but unparseable never drops the
// record on its own: the year check only applies to parseable years, and
// the equity check only to parseable amounts.
func (m *AdmissionModule) Keep(record map[string]string) bool {
	if quote.FirstName(record) == "" {
		return false
	}

	if yearStr := record[quote.TradeYear]; yearStr != "" {
		if year, err := strconv.Atoi(strings.TrimSpace(yearStr)); err == nil && year >= m.maxYear+1 {
			return false
		}
	}

	if equity, ok := normalize.ParseCurrency(record[quote.TradeEquity]); ok && equity < m.minEquity {
		return false
	}

	if _, ok := quote.ChoosePhone(record); !ok {
		return false
	}

	return true
}

// Verify interface compliance at compile time
var _ Module = (*AdmissionModule)(nil)
