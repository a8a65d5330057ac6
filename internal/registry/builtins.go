// Package registry provides module registries for the Previous Service runtime.
// This file registers all built-in modules during initialization.
package registry

import (
	"fmt"

	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/input"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

func init() {
	registerBuiltinInputModules()
	registerBuiltinFilterModules()
	registerBuiltinOutputModules()
}

// registerBuiltinInputModules registers all built-in input module types.
func registerBuiltinInputModules() {
	// csv - quote export file input
	RegisterInput("csv", func(cfg *listing.ModuleConfig) (input.Module, error) {
		if cfg == nil {
			return nil, nil
		}
		csvConfig, err := input.ParseCSVConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid csv input config: %w", err)
		}
		return input.NewCSVFromConfig(csvConfig)
	})
}

// registerBuiltinFilterModules registers all built-in filter module types.
func registerBuiltinFilterModules() {
	// admission - the Previous Service keep-predicate
	RegisterFilter("admission", func(cfg listing.ModuleConfig, index int) (filter.Module, error) {
		admissionConfig, err := filter.ParseAdmissionConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid admission config at index %d: %w", index, err)
		}
		return filter.NewAdmissionFromConfig(admissionConfig)
	})

	// condition - expression-based record filtering
	RegisterFilter("condition", func(cfg listing.ModuleConfig, index int) (filter.Module, error) {
		conditionConfig, err := filter.ParseConditionConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid condition config at index %d: %w", index, err)
		}
		module, err := filter.NewConditionFromConfig(conditionConfig)
		if err != nil {
			return nil, fmt.Errorf("invalid condition config at index %d: %w", index, err)
		}
		return module, nil
	})

	// set - set or overwrite a column on each record
	RegisterFilter("set", func(cfg listing.ModuleConfig, index int) (filter.Module, error) {
		setConfig, err := filter.ParseSetConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid set config at index %d: %w", index, err)
		}
		return filter.NewSetFromConfig(setConfig)
	})

	// remove - drop columns from each record
	RegisterFilter("remove", func(cfg listing.ModuleConfig, index int) (filter.Module, error) {
		removeConfig, err := filter.ParseRemoveConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid remove config at index %d: %w", index, err)
		}
		return filter.NewRemoveFromConfig(removeConfig)
	})

	// script - JavaScript transformation filter using Goja
	RegisterFilter("script", func(cfg listing.ModuleConfig, index int) (filter.Module, error) {
		scriptConfig, err := filter.ParseScriptConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid script config at index %d: %w", index, err)
		}
		module, err := filter.NewScriptFromConfig(scriptConfig)
		if err != nil {
			return nil, fmt.Errorf("invalid script config at index %d: %w", index, err)
		}
		return module, nil
	})
}

// registerBuiltinOutputModules registers all built-in output module types.
func registerBuiltinOutputModules() {
	// csv - Previous Service contact list output
	RegisterOutput("csv", func(cfg *listing.ModuleConfig) (output.Module, error) {
		if cfg == nil {
			return nil, nil
		}
		csvConfig, err := output.ParseCSVConfig(cfg.Config)
		if err != nil {
			return nil, fmt.Errorf("invalid csv output config: %w", err)
		}
		return output.NewCSVFromConfig(csvConfig)
	})
}
