// Package filter provides implementations for filter modules.
// This file implements the "set" filter module for setting or modifying record columns.
//
// The set filter mutates each record in place (same map reference is returned).
package filter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// SetConfig represents the configuration for a set filter module.
type SetConfig struct {
	// Target is the column name to set
	Target string `json:"target"`
	// Value is the literal value to set
	Value string `json:"value"`
}

// SetModule implements the set filter that sets or overwrites a single column
// on each record. Useful for stamping a constant onto an export, e.g. a
// source or campaign tag, before it reaches the output.
type SetModule struct {
	config SetConfig
}

// NewSetFromConfig creates a new set filter module from configuration.
func NewSetFromConfig(config SetConfig) (*SetModule, error) {
	if config.Target == "" {
		return nil, errors.New("target column name is required")
	}

	logger.Debug("set filter module initialized", "target", config.Target)

	return &SetModule{config: config}, nil
}

// Process implements the filter.Module interface.
// It sets or overwrites a single column on each record.
func (m *SetModule) Process(ctx context.Context, records []map[string]string) ([]map[string]string, error) {
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

		record[m.config.Target] = m.config.Value
		result = append(result, record)
	}

	return result, nil
}

// ParseSetConfig parses a raw configuration map into SetConfig.
func ParseSetConfig(config map[string]interface{}) (SetConfig, error) {
	var cfg SetConfig

	target, ok := config["target"].(string)
	if !ok || target == "" {
		return cfg, errors.New("'target' is required and must be a non-empty string")
	}
	cfg.Target = target

	raw, hasValue := config["value"]
	if !hasValue {
		return cfg, errors.New("'value' is required")
	}
	switch v := raw.(type) {
	case string:
		cfg.Value = v
	case nil:
		cfg.Value = ""
	case int:
		cfg.Value = fmt.Sprintf("%d", v)
	case float64:
		cfg.Value = fmt.Sprintf("%g", v)
	case bool:
		cfg.Value = fmt.Sprintf("%t", v)
	default:
		return cfg, fmt.Errorf("'value' must be a scalar, got %T", raw)
	}

	return cfg, nil
}

// Verify interface compliance at compile time
var _ Module = (*SetModule)(nil)
