// Package config provides functionality for parsing and validating
// job configuration files (JSON/YAML).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseConfig reads, parses, and schema-validates a job file. The format is
// taken from the file extension; extensionless files are sniffed, trying JSON
// before YAML since every JSON document is also valid YAML.
func ParseConfig(filepath string) *Result {
	result := &Result{FilePath: filepath}

	content, err := os.ReadFile(filepath)
	if err != nil {
		result.ParseErrors = append(result.ParseErrors, ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("failed to read file: %v", err),
			Type:    ErrorTypeIO,
		})
		return result
	}

	format := DetectFormat(filepath)
	if format == "" {
		format = sniffFormat(string(content))
	}
	if format == "" {
		result.ParseErrors = append(result.ParseErrors, ParseError{
			Path:    filepath,
			Message: "unable to detect job file format: not valid JSON or YAML",
			Type:    ErrorTypeFormat,
		})
		return result
	}

	finishParse(result, parseContent(string(content), format))

	// Errors from the content parsers carry no file path.
	for i := range result.ParseErrors {
		if result.ParseErrors[i].Path == "" {
			result.ParseErrors[i].Path = filepath
		}
	}
	return result
}

// ParseConfigString parses and schema-validates job content already in
// memory. An empty format means sniff the content.
func ParseConfigString(content string, format string) *Result {
	result := &Result{}

	if format == "" {
		format = sniffFormat(content)
		if format == "" {
			result.ParseErrors = append(result.ParseErrors, ParseError{
				Message: "unable to detect job file format: not valid JSON or YAML",
				Type:    ErrorTypeFormat,
			})
			return result
		}
	}

	finishParse(result, parseContent(content, format))
	return result
}

// finishParse copies the parse outcome into the result and, when parsing
// succeeded, runs schema validation.
func finishParse(result *Result, parsed *ParseResult) {
	result.Data = parsed.Data
	result.ParseErrors = parsed.Errors
	result.Format = parsed.Format

	if parsed.IsValid() {
		result.ValidationErrors = ValidateConfig(parsed.Data).Errors
	}
}

// parseContent dispatches to the format-specific parser.
func parseContent(content string, format string) *ParseResult {
	switch format {
	case "json":
		return parseJSON(content)
	case "yaml":
		return parseYAML(content)
	default:
		return &ParseResult{
			Format: format,
			Errors: []ParseError{{
				Message: fmt.Sprintf("unsupported format: %s", format),
				Type:    ErrorTypeFormat,
			}},
		}
	}
}

// DetectFormat detects the job file format from the file extension.
// Returns "json", "yaml", or empty string if the extension is unknown.
func DetectFormat(filepath string) string {
	switch strings.ToLower(path.Ext(filepath)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// sniffFormat guesses the format from content alone, JSON first.
func sniffFormat(content string) string {
	switch {
	case looksLikeJSON(content):
		return "json"
	case parsesAsYAML(content):
		return "yaml"
	default:
		return ""
	}
}

// looksLikeJSON reports whether the content starts like a JSON document.
func looksLikeJSON(content string) bool {
	content = strings.TrimSpace(content)
	return strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[")
}

// parsesAsYAML reports whether the content is a non-empty YAML document.
func parsesAsYAML(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	var data interface{}
	return yaml.Unmarshal([]byte(content), &data) == nil && data != nil
}

// parseJSON parses a JSON document into a job configuration map.
func parseJSON(content string) *ParseResult {
	result := &ParseResult{Format: "json"}

	content = strings.TrimSpace(content)
	if content == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected JSON object",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data interface{}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, jsonParseError(err, content))
		return result
	}

	switch doc := data.(type) {
	case nil:
		// null document: valid JSON, no job data
		return result
	case map[string]interface{}:
		result.Data = doc
		return result
	default:
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("invalid job file: expected JSON object, got %T", data),
			Type:    ErrorTypeFormat,
		})
		return result
	}
}

// jsonParseError extracts location details from a JSON unmarshaling error.
func jsonParseError(err error, content string) ParseError {
	parseErr := ParseError{
		Message: err.Error(),
		Type:    ErrorTypeSyntax,
	}

	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		parseErr.Offset = syntaxErr.Offset
		parseErr.Line, parseErr.Column = offsetToLineColumn(content, syntaxErr.Offset)
		parseErr.Message = fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}

	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		parseErr.Offset = typeErr.Offset
		parseErr.Line, parseErr.Column = offsetToLineColumn(content, typeErr.Offset)
		parseErr.Message = fmt.Sprintf("type error at field '%s': expected %s, got %s",
			typeErr.Field, typeErr.Type.String(), typeErr.Value)
	}

	return parseErr
}

// offsetToLineColumn converts a byte offset to line and column numbers (1-based).
func offsetToLineColumn(content string, offset int64) (line, column int) {
	if offset <= 0 {
		return 1, 1
	}

	line = 1
	column = 1
	for i := int64(0); i < offset && i < int64(len(content)); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// parseYAML parses a YAML document into a job configuration map.
func parseYAML(content string) *ParseResult {
	result := &ParseResult{Format: "yaml"}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected YAML document",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, yamlParseError(err))
		return result
	}

	switch doc := data.(type) {
	case nil:
		// null or comments-only document: valid YAML, no job data
		return result
	case map[string]interface{}:
		result.Data = doc
		return result
	default:
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("invalid job file: expected YAML mapping, got %T", data),
			Type:    ErrorTypeFormat,
		})
		return result
	}
}

// yamlParseError extracts location details from a YAML unmarshaling error.
// yaml.v3 does not expose positions structurally, but prefixes messages with
// "yaml: line N:".
func yamlParseError(err error) ParseError {
	parseErr := ParseError{
		Message: err.Error(),
		Type:    ErrorTypeSyntax,
	}

	if typeErr, ok := err.(*yaml.TypeError); ok {
		parseErr.Message = fmt.Sprintf("YAML type error: %s", strings.Join(typeErr.Errors, "; "))
	}

	if strings.Contains(err.Error(), "yaml: line ") {
		var line int
		if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
			parseErr.Line = line
		}
	}

	return parseErr
}
