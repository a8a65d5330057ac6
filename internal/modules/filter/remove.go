// Package filter provides implementations for filter modules.
// This file implements the "remove" filter module for removing columns from records.
//
// The remove filter mutates each record in place (same map reference is returned).
// If the target column does not exist, the record is left unchanged (no error).
package filter

import (
	"context"
	"errors"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// RemoveConfig represents the configuration for a remove filter module.
type RemoveConfig struct {
	// Target is a single column name to remove
	Target string `json:"target"`
	// Targets is a list of column names to remove
	Targets []string `json:"targets"`
}

// RemoveModule implements the remove filter that removes columns from each
// record. Useful for dropping sensitive export columns before they reach
// a script filter or a log line.
type RemoveModule struct {
	targets []string
}

// NewRemoveFromConfig creates a new remove filter module from configuration.
// It validates that at least one target is provided (either via Target or Targets).
func NewRemoveFromConfig(config RemoveConfig) (*RemoveModule, error) {
	targets := config.Targets

	// Support single target for convenience
	if config.Target != "" {
		targets = append(targets, config.Target)
	}

	if len(targets) == 0 {
		return nil, errors.New("at least one target column name is required")
	}

	// Remove duplicates while preserving order
	seen := make(map[string]bool)
	uniqueTargets := make([]string, 0, len(targets))
	for _, t := range targets {
		if t != "" && !seen[t] {
			seen[t] = true
			uniqueTargets = append(uniqueTargets, t)
		}
	}

	if len(uniqueTargets) == 0 {
		return nil, errors.New("at least one non-empty target column name is required")
	}

	logger.Debug("remove filter module initialized", "targets", uniqueTargets)

	return &RemoveModule{targets: uniqueTargets}, nil
}

// Process implements the filter.Module interface.
// It removes the configured columns from each record.
func (m *RemoveModule) Process(ctx context.Context, records []map[string]string) ([]map[string]string, error) {
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

		for _, target := range m.targets {
			delete(record, target)
		}
		result = append(result, record)
	}

	return result, nil
}

// ParseRemoveConfig parses a raw configuration map into RemoveConfig.
func ParseRemoveConfig(config map[string]interface{}) (RemoveConfig, error) {
	var cfg RemoveConfig

	if target, ok := config["target"].(string); ok && target != "" {
		cfg.Target = target
	}

	if targets, ok := config["targets"]; ok {
		switch v := targets.(type) {
		case []interface{}:
			cfg.Targets = make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					cfg.Targets = append(cfg.Targets, s)
				}
			}
		case []string:
			cfg.Targets = v
		}
	}

	if cfg.Target == "" && len(cfg.Targets) == 0 {
		return cfg, errors.New("'target' or 'targets' is required")
	}

	return cfg, nil
}

// Verify interface compliance at compile time
var _ Module = (*RemoveModule)(nil)
