package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validJSONConfig = `{
  "schemaVersion": "1.0.0",
  "job": {
    "name": "previous-service",
    "maxYear": 2024,
    "minEquity": -6000,
    "input": {"type": "csv", "path": "export.csv"},
    "output": {"type": "csv", "path": "out.csv"}
  }
}`

const validYAMLConfig = `schemaVersion: "1.0.0"
job:
  name: previous-service
  maxYear: 2024
  minEquity: -6000
  input:
    type: csv
    path: export.csv
  output:
    type: csv
    path: out.csv
`

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantType  string
	}{
		{
			name:      "valid object",
			content:   validJSONConfig,
			wantValid: true,
		},
		{
			name:      "empty content",
			content:   "",
			wantValid: false,
			wantType:  ErrorTypeSyntax,
		},
		{
			name:      "syntax error",
			content:   `{"job": `,
			wantValid: false,
			wantType:  ErrorTypeSyntax,
		},
		{
			name:      "array not object",
			content:   `[1, 2, 3]`,
			wantValid: false,
			wantType:  ErrorTypeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseJSON(tt.content)
			if result.IsValid() != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v (errors: %v)", result.IsValid(), tt.wantValid, result.Errors)
			}
			if !tt.wantValid && tt.wantType != "" {
				if len(result.Errors) == 0 || result.Errors[0].Type != tt.wantType {
					t.Errorf("error type = %v, want %s", result.Errors, tt.wantType)
				}
			}
		})
	}
}

func TestParseJSONSyntaxErrorHasLocation(t *testing.T) {
	result := parseJSON("{\n  \"job\": oops\n}")
	if result.IsValid() {
		t.Fatal("expected syntax error")
	}
	if result.Errors[0].Line != 2 {
		t.Errorf("line = %d, want 2", result.Errors[0].Line)
	}
}

func TestParseYAML(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
	}{
		{
			name:      "valid mapping",
			content:   validYAMLConfig,
			wantValid: true,
		},
		{
			name:      "empty content",
			content:   "   \n",
			wantValid: false,
		},
		{
			name:      "syntax error",
			content:   "job:\n  name: [unclosed",
			wantValid: false,
		},
		{
			name:      "scalar not mapping",
			content:   "just a string",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseYAML(tt.content)
			if result.IsValid() != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v (errors: %v)", result.IsValid(), tt.wantValid, result.Errors)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"job.json", "json"},
		{"job.yaml", "yaml"},
		{"job.yml", "yaml"},
		{"job.YAML", "yaml"},
		{"job.conf", ""},
		{"job", ""},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseConfigJSONFile(t *testing.T) {
	path := writeConfigFile(t, "job.json", validJSONConfig)

	result := ParseConfig(path)
	if !result.IsValid() {
		t.Fatalf("expected valid config, errors: %v", result.AllErrors())
	}
	if result.Format != "json" {
		t.Errorf("Format = %q, want json", result.Format)
	}
}

func TestParseConfigYAMLFile(t *testing.T) {
	path := writeConfigFile(t, "job.yaml", validYAMLConfig)

	result := ParseConfig(path)
	if !result.IsValid() {
		t.Fatalf("expected valid config, errors: %v", result.AllErrors())
	}
	if result.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", result.Format)
	}
}

func TestParseConfigAutoDetectsExtensionlessFile(t *testing.T) {
	path := writeConfigFile(t, "jobconfig", validJSONConfig)

	result := ParseConfig(path)
	if !result.IsValid() {
		t.Fatalf("expected valid config, errors: %v", result.AllErrors())
	}
	if result.Format != "json" {
		t.Errorf("Format = %q, want json", result.Format)
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	result := ParseConfig(filepath.Join(t.TempDir(), "nope.json"))
	if result.IsValid() {
		t.Fatal("expected io error")
	}
	if result.ParseErrors[0].Type != ErrorTypeIO {
		t.Errorf("error type = %q, want io", result.ParseErrors[0].Type)
	}
}

func TestParseConfigStringValidationFailure(t *testing.T) {
	// Parses fine but fails schema validation: missing job.name and input.
	result := ParseConfigString(`{"job": {}}`, "json")
	if len(result.ParseErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", result.ParseErrors)
	}
	if len(result.ValidationErrors) == 0 {
		t.Fatal("expected validation errors")
	}
}
