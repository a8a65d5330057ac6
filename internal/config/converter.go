// Package config provides functionality for parsing and validating
// job configuration files (JSON/YAML).
package config

import (
	"fmt"

	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// Default admission thresholds applied when the job omits them.
const (
	DefaultMaxYear   = 2024
	DefaultMinEquity = -6000.0
)

// ConvertToJob converts parsed configuration data to a Job struct.
// The input data should have been validated against the schema before
// calling this function. Omitted thresholds fall back to the defaults,
// and an omitted output section falls back to a csv output writing the
// default destination.
//
// The configuration is expected to have this structure:
//
//	{
//	  "schemaVersion": "1.0.0",
//	  "job": {
//	    "name": "...",
//	    "maxYear": 2024,
//	    "minEquity": -6000,
//	    "input": {...},
//	    "filters": [...],
//	    "output": {...}
//	  }
//	}
func ConvertToJob(data map[string]interface{}) (*listing.Job, error) {
	if data == nil {
		return nil, fmt.Errorf("configuration data is nil")
	}

	jobData, ok := data["job"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'job' section")
	}

	job := &listing.Job{
		MaxYear:   DefaultMaxYear,
		MinEquity: DefaultMinEquity,
	}

	name, ok := jobData["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("missing required field 'job.name'")
	}
	job.Name = name

	if description, okDesc := jobData["description"].(string); okDesc {
		job.Description = description
	}

	if raw, okYear := jobData["maxYear"]; okYear {
		year, err := toInt(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid 'job.maxYear': %w", err)
		}
		job.MaxYear = year
	}

	if raw, okEquity := jobData["minEquity"]; okEquity {
		equity, err := toFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid 'job.minEquity': %w", err)
		}
		job.MinEquity = equity
	}

	inputData, ok := jobData["input"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'job.input' section")
	}
	inputConfig, err := convertModuleConfig(inputData)
	if err != nil {
		return nil, fmt.Errorf("invalid input config: %w", err)
	}
	job.Input = inputConfig

	if filtersData, okFilters := jobData["filters"].([]interface{}); okFilters {
		for i, filterData := range filtersData {
			filterMap, isMap := filterData.(map[string]interface{})
			if !isMap {
				return nil, fmt.Errorf("invalid filter at index %d", i)
			}
			filterConfig, convertErr := convertModuleConfig(filterMap)
			if convertErr != nil {
				return nil, fmt.Errorf("invalid filter at index %d: %w", i, convertErr)
			}
			job.Filters = append(job.Filters, *filterConfig)
		}
	}

	if outputData, okOutput := jobData["output"].(map[string]interface{}); okOutput {
		outputConfig, convertErr := convertModuleConfig(outputData)
		if convertErr != nil {
			return nil, fmt.Errorf("invalid output config: %w", convertErr)
		}
		job.Output = outputConfig
	} else {
		// Default sink: csv output at the standard destination.
		job.Output = &listing.ModuleConfig{
			Type:   "csv",
			Config: map[string]interface{}{},
		}
	}

	return job, nil
}

// convertModuleConfig converts a raw module configuration map to ModuleConfig.
func convertModuleConfig(data map[string]interface{}) (*listing.ModuleConfig, error) {
	moduleConfig := &listing.ModuleConfig{
		Config: make(map[string]interface{}),
	}

	moduleType, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required field 'type'")
	}
	moduleConfig.Type = moduleType

	// Copy all fields except 'type' to Config
	for key, value := range data {
		if key != "type" {
			moduleConfig.Config[key] = value
		}
	}

	return moduleConfig, nil
}

// toInt coerces a JSON or YAML scalar to an int.
func toInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

// toFloat coerces a JSON or YAML scalar to a float64.
func toFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
