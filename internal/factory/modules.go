// Package factory provides module creation functions for the run pipeline.
// It centralizes the logic for instantiating input, filter, and output
// modules from their configuration using the module registry.
//
// To add a new module type, see the documentation in internal/registry.
// You do NOT need to modify this factory; just register your constructor.
package factory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/input"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/internal/registry"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// CreateInputModule creates an input module instance from configuration.
// Uses the registry to look up the constructor by type. Unknown types are
// an error listing the registered alternatives.
func CreateInputModule(cfg *listing.ModuleConfig) (input.Module, error) {
	if cfg == nil {
		return nil, nil
	}

	constructor := registry.GetInputConstructor(cfg.Type)
	if constructor == nil {
		return nil, fmt.Errorf("unknown input module type %q (registered: %s)",
			cfg.Type, knownTypes(registry.ListInputTypes()))
	}

	return constructor(cfg)
}

// CreateFilterModules creates filter module instances from configuration.
// Modules are created in chain order; the first invalid configuration
// aborts with an error naming its index.
func CreateFilterModules(cfgs []listing.ModuleConfig) ([]filter.Module, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}

	modules := make([]filter.Module, 0, len(cfgs))
	for i, cfg := range cfgs {
		constructor := registry.GetFilterConstructor(cfg.Type)
		if constructor == nil {
			return nil, fmt.Errorf("unknown filter module type %q at index %d (registered: %s)",
				cfg.Type, i, knownTypes(registry.ListFilterTypes()))
		}
		module, err := constructor(cfg, i)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, nil
}

// CreateOutputModule creates an output module instance from configuration.
// Uses the registry to look up the constructor by type. Unknown types are
// an error listing the registered alternatives.
func CreateOutputModule(cfg *listing.ModuleConfig) (output.Module, error) {
	if cfg == nil {
		return nil, nil
	}

	constructor := registry.GetOutputConstructor(cfg.Type)
	if constructor == nil {
		return nil, fmt.Errorf("unknown output module type %q (registered: %s)",
			cfg.Type, knownTypes(registry.ListOutputTypes()))
	}

	return constructor(cfg)
}

// knownTypes formats a registry type list for error messages.
func knownTypes(types []string) string {
	if len(types) == 0 {
		return "none"
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
