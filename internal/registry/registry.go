// Package registry provides module registries for input, filter, and output modules.
//
// # Overview
//
// The registry enables extensible module registration for the Previous
// Service runtime. Instead of hard-coded switch statements, modules register
// their constructors by type string, so new module types can be added
// without modifying core factory code.
//
// # Adding a New Module
//
// To add a new module type (e.g., an "xlsx" input module):
//
//  1. Implement the appropriate interface (input.Module, filter.Module, or output.Module)
//  2. Create a constructor function matching the registry signature
//  3. Register the constructor in an init() function
//
// # Built-in Modules
//
// Built-in modules (csv input, admission, condition, set, remove, script
// filters, csv output) are registered automatically at startup via init().
package registry

import (
	"sync"

	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/input"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

// InputConstructor is a function that creates an input module from configuration.
// Returns an error if the configuration is invalid.
type InputConstructor func(cfg *listing.ModuleConfig) (input.Module, error)

// FilterConstructor is a function that creates a filter module from configuration.
// The constructor receives the ModuleConfig and the filter's index in the chain.
// Returns an error if the configuration is invalid.
type FilterConstructor func(cfg listing.ModuleConfig, index int) (filter.Module, error)

// OutputConstructor is a function that creates an output module from configuration.
// Returns an error if the configuration is invalid.
type OutputConstructor func(cfg *listing.ModuleConfig) (output.Module, error)

var (
	inputMu       sync.RWMutex
	inputRegistry = make(map[string]InputConstructor)
)

var (
	filterMu       sync.RWMutex
	filterRegistry = make(map[string]FilterConstructor)
)

var (
	outputMu       sync.RWMutex
	outputRegistry = make(map[string]OutputConstructor)
)

// RegisterInput registers an input module constructor by type string.
// Registering an already registered type overwrites the previous constructor.
// Safe for concurrent use; typically called from init() functions.
func RegisterInput(moduleType string, constructor InputConstructor) {
	inputMu.Lock()
	defer inputMu.Unlock()
	inputRegistry[moduleType] = constructor
}

// RegisterFilter registers a filter module constructor by type string.
// Registering an already registered type overwrites the previous constructor.
// Safe for concurrent use; typically called from init() functions.
func RegisterFilter(moduleType string, constructor FilterConstructor) {
	filterMu.Lock()
	defer filterMu.Unlock()
	filterRegistry[moduleType] = constructor
}

// RegisterOutput registers an output module constructor by type string.
// Registering an already registered type overwrites the previous constructor.
// Safe for concurrent use; typically called from init() functions.
func RegisterOutput(moduleType string, constructor OutputConstructor) {
	outputMu.Lock()
	defer outputMu.Unlock()
	outputRegistry[moduleType] = constructor
}

// GetInputConstructor returns the registered constructor for an input module type.
// Returns nil if no constructor is registered for the given type.
func GetInputConstructor(moduleType string) InputConstructor {
	inputMu.RLock()
	defer inputMu.RUnlock()
	return inputRegistry[moduleType]
}

// GetFilterConstructor returns the registered constructor for a filter module type.
// Returns nil if no constructor is registered for the given type.
func GetFilterConstructor(moduleType string) FilterConstructor {
	filterMu.RLock()
	defer filterMu.RUnlock()
	return filterRegistry[moduleType]
}

// GetOutputConstructor returns the registered constructor for an output module type.
// Returns nil if no constructor is registered for the given type.
func GetOutputConstructor(moduleType string) OutputConstructor {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return outputRegistry[moduleType]
}

// ListInputTypes returns all registered input module type names.
func ListInputTypes() []string {
	inputMu.RLock()
	defer inputMu.RUnlock()
	types := make([]string, 0, len(inputRegistry))
	for t := range inputRegistry {
		types = append(types, t)
	}
	return types
}

// ListFilterTypes returns all registered filter module type names.
func ListFilterTypes() []string {
	filterMu.RLock()
	defer filterMu.RUnlock()
	types := make([]string, 0, len(filterRegistry))
	for t := range filterRegistry {
		types = append(types, t)
	}
	return types
}

// ListOutputTypes returns all registered output module type names.
func ListOutputTypes() []string {
	outputMu.RLock()
	defer outputMu.RUnlock()
	types := make([]string, 0, len(outputRegistry))
	for t := range outputRegistry {
		types = append(types, t)
	}
	return types
}

// ClearRegistries removes all registered constructors.
// This is intended for testing purposes only.
func ClearRegistries() {
	inputMu.Lock()
	inputRegistry = make(map[string]InputConstructor)
	inputMu.Unlock()

	filterMu.Lock()
	filterRegistry = make(map[string]FilterConstructor)
	filterMu.Unlock()

	outputMu.Lock()
	outputRegistry = make(map[string]OutputConstructor)
	outputMu.Unlock()
}
