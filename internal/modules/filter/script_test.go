package filter

import (
	"context"
	"testing"
)

func TestNewScriptFromConfig_Validation(t *testing.T) {
	tests := []struct {
		name     string
		config   ScriptConfig
		wantErr  bool
		wantCode string
	}{
		{
			name:     "empty script",
			config:   ScriptConfig{Script: "   "},
			wantErr:  true,
			wantCode: ErrCodeScriptEmpty,
		},
		{
			name:     "nothing provided",
			config:   ScriptConfig{},
			wantErr:  true,
			wantCode: ErrCodeScriptEmpty,
		},
		{
			name:     "syntax error",
			config:   ScriptConfig{Script: "function transform(record) {"},
			wantErr:  true,
			wantCode: ErrCodeCompilationFailed,
		},
		{
			name:     "missing transform function",
			config:   ScriptConfig{Script: "var x = 1;"},
			wantErr:  true,
			wantCode: ErrCodeMissingTransform,
		},
		{
			name:     "transform not a function",
			config:   ScriptConfig{Script: "var transform = 42;"},
			wantErr:  true,
			wantCode: ErrCodeNotFunction,
		},
		{
			name:     "both script and file",
			config:   ScriptConfig{Script: "x", ScriptFile: "y.js"},
			wantErr:  true,
			wantCode: ErrCodeInvalidScriptFile,
		},
		{
			name:     "path traversal rejected",
			config:   ScriptConfig{ScriptFile: "../secrets/transform.js"},
			wantErr:  true,
			wantCode: ErrCodeInvalidScriptFile,
		},
		{
			name:    "valid script",
			config:  ScriptConfig{Script: "function transform(record) { return record; }"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScriptFromConfig(tt.config)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			scriptErr, ok := err.(*ScriptError)
			if !ok {
				t.Fatalf("expected *ScriptError, got %T", err)
			}
			if scriptErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", scriptErr.Code, tt.wantCode)
			}
		})
	}
}

func TestScriptProcessTransformsRecords(t *testing.T) {
	module, err := NewScriptFromConfig(ScriptConfig{
		Script: `function transform(record) {
			record.TradeModel = record.TradeModel.toUpperCase();
			return record;
		}`,
	})
	if err != nil {
		t.Fatalf("NewScriptFromConfig: %v", err)
	}

	result, err := module.Process(context.Background(), []map[string]string{
		{"TradeModel": "sedan", "TradeVIN": "A1"},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result[0]["TradeModel"] != "SEDAN" {
		t.Errorf("TradeModel = %q, want %q", result[0]["TradeModel"], "SEDAN")
	}
	if result[0]["TradeVIN"] != "A1" {
		t.Errorf("untouched column lost: %v", result[0])
	}
}

func TestScriptProcessRejectsNonObjectReturn(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"returns null", "function transform(record) { return null; }"},
		{"returns array", "function transform(record) { return [1, 2]; }"},
		{"returns string", "function transform(record) { return 'nope'; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, err := NewScriptFromConfig(ScriptConfig{Script: tt.script})
			if err != nil {
				t.Fatalf("NewScriptFromConfig: %v", err)
			}

			_, err = module.Process(context.Background(), []map[string]string{{"a": "1"}})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			scriptErr, ok := err.(*ScriptError)
			if !ok {
				t.Fatalf("expected *ScriptError, got %T", err)
			}
			if scriptErr.Code != ErrCodeExecutionFailed {
				t.Errorf("code = %q, want %q", scriptErr.Code, ErrCodeExecutionFailed)
			}
		})
	}
}

func TestScriptProcessOnErrorSkip(t *testing.T) {
	module, err := NewScriptFromConfig(ScriptConfig{
		Script: `function transform(record) {
			if (record.bad === "yes") { throw new Error("boom"); }
			return record;
		}`,
		OnError: OnErrorSkip,
	})
	if err != nil {
		t.Fatalf("NewScriptFromConfig: %v", err)
	}

	result, err := module.Process(context.Background(), []map[string]string{
		{"TradeVIN": "A1", "bad": "yes"},
		{"TradeVIN": "B2", "bad": "no"},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result) != 1 || result[0]["TradeVIN"] != "B2" {
		t.Errorf("got %v, want only B2", result)
	}
}

func TestScriptProcessOnErrorLogKeepsOriginal(t *testing.T) {
	module, err := NewScriptFromConfig(ScriptConfig{
		Script:  `function transform(record) { throw new Error("boom"); }`,
		OnError: OnErrorLog,
	})
	if err != nil {
		t.Fatalf("NewScriptFromConfig: %v", err)
	}

	result, err := module.Process(context.Background(), []map[string]string{
		{"TradeVIN": "A1"},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result) != 1 || result[0]["TradeVIN"] != "A1" {
		t.Errorf("log mode should keep original record, got %v", result)
	}
}

func TestScriptProcessStringifiesValues(t *testing.T) {
	module, err := NewScriptFromConfig(ScriptConfig{
		Script: `function transform(record) {
			return { count: 3, empty: null, name: record.name };
		}`,
	})
	if err != nil {
		t.Fatalf("NewScriptFromConfig: %v", err)
	}

	result, err := module.Process(context.Background(), []map[string]string{
		{"name": "john"},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result[0]["count"] != "3" {
		t.Errorf("count = %q, want %q", result[0]["count"], "3")
	}
	if result[0]["empty"] != "" {
		t.Errorf("empty = %q, want empty string", result[0]["empty"])
	}
	if result[0]["name"] != "john" {
		t.Errorf("name = %q, want %q", result[0]["name"], "john")
	}
}
