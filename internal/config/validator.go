package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// The job schema ships inside the binary so validation needs no files on disk.
//
//go:embed schema/job-schema.json
var embeddedSchema []byte

const schemaURL = "https://github.com/jbec2912-cell/pervious-service-filter/schemas/job/v1.0.0/job-schema.json"

// jobSchema compiles the embedded schema once per process.
var jobSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc interface{}
	if err := json.Unmarshal(embeddedSchema, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidateConfig validates parsed job data against the embedded schema.
// Returns a ValidationResult with validation status and any errors.
func ValidateConfig(data map[string]interface{}) *ValidationResult {
	if len(data) == 0 {
		msg := "job data is empty"
		if data == nil {
			msg = "job data is nil"
		}
		return &ValidationResult{Errors: []ValidationError{{
			Path:    "/",
			Type:    "required",
			Message: msg,
		}}}
	}

	schema, err := jobSchema()
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Path:    "/",
			Type:    "schema",
			Message: fmt.Sprintf("failed to load schema: %v", err),
		}}}
	}

	if err := schema.Validate(data); err != nil {
		result := &ValidationResult{}
		if detailed, ok := err.(*jsonschema.ValidationError); ok {
			result.Errors = flattenValidationError(detailed)
		} else {
			result.Errors = []ValidationError{{
				Path:    "/",
				Type:    "validation",
				Message: err.Error(),
			}}
		}
		return result
	}

	return &ValidationResult{Valid: true}
}

// flattenValidationError walks the cause tree, keeping one ValidationError per
// leaf with a concrete violated keyword.
func flattenValidationError(err *jsonschema.ValidationError) []ValidationError {
	var errors []ValidationError

	if err.ErrorKind != nil {
		errors = append(errors, ValidationError{
			Path:    instancePath(err.InstanceLocation),
			Type:    violatedKeyword(err),
			Message: err.Error(),
		})
	}

	for _, cause := range err.Causes {
		errors = append(errors, flattenValidationError(cause)...)
	}

	return errors
}

// instancePath formats the instance location as a JSON pointer style path.
func instancePath(loc []string) string {
	if len(loc) == 0 {
		return "/"
	}
	return "/" + strings.Join(loc, "/")
}

// violatedKeyword maps a validation error onto the schema keyword it tripped.
func violatedKeyword(err *jsonschema.ValidationError) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "required"):
		return "required"
	case strings.Contains(msg, "type"):
		return "type"
	case strings.Contains(msg, "pattern"):
		return "pattern"
	case strings.Contains(msg, "enum"):
		return "enum"
	case strings.Contains(msg, "minimum") || strings.Contains(msg, "maximum"):
		return "range"
	case strings.Contains(msg, "format"):
		return "format"
	case strings.Contains(msg, "additionalproperties"):
		return "additionalProperties"
	default:
		return "validation"
	}
}
