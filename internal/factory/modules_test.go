package factory

import (
	"strings"
	"testing"

	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

func TestCreateInputModule(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *listing.ModuleConfig
		wantErr string
		wantNil bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantNil: true,
		},
		{
			name: "csv input",
			cfg: &listing.ModuleConfig{
				Type:   "csv",
				Config: map[string]interface{}{"path": "export.csv"},
			},
		},
		{
			name:    "unknown type",
			cfg:     &listing.ModuleConfig{Type: "xlsx"},
			wantErr: "unknown input module type",
		},
		{
			name:    "missing path",
			cfg:     &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{}},
			wantErr: "'path' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, err := CreateInputModule(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil != (module == nil) {
				t.Errorf("module nil = %v, want %v", module == nil, tt.wantNil)
			}
		})
	}
}

func TestCreateFilterModules(t *testing.T) {
	tests := []struct {
		name      string
		cfgs      []listing.ModuleConfig
		wantErr   string
		wantCount int
	}{
		{
			name:      "no filters",
			cfgs:      nil,
			wantCount: 0,
		},
		{
			name: "admission with defaults",
			cfgs: []listing.ModuleConfig{
				{Type: "admission", Config: map[string]interface{}{}},
			},
			wantCount: 1,
		},
		{
			name: "full chain",
			cfgs: []listing.ModuleConfig{
				{Type: "admission", Config: map[string]interface{}{"maxYear": 2024, "minEquity": -6000.0}},
				{Type: "condition", Config: map[string]interface{}{"expression": `TradeModel != ""`}},
				{Type: "set", Config: map[string]interface{}{"target": "source", "value": "quote"}},
				{Type: "remove", Config: map[string]interface{}{"target": "CustomerSSN"}},
				{Type: "script", Config: map[string]interface{}{"script": "function transform(r) { return r; }"}},
			},
			wantCount: 5,
		},
		{
			name: "unknown type names index",
			cfgs: []listing.ModuleConfig{
				{Type: "admission", Config: map[string]interface{}{}},
				{Type: "bogus"},
			},
			wantErr: "unknown filter module type \"bogus\" at index 1",
		},
		{
			name: "invalid config propagates",
			cfgs: []listing.ModuleConfig{
				{Type: "condition", Config: map[string]interface{}{}},
			},
			wantErr: "'expression' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := CreateFilterModules(tt.cfgs)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(modules) != tt.wantCount {
				t.Errorf("got %d modules, want %d", len(modules), tt.wantCount)
			}
		})
	}
}

func TestCreateOutputModule(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *listing.ModuleConfig
		wantErr string
		wantNil bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantNil: true,
		},
		{
			name: "csv output with default path",
			cfg:  &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{}},
		},
		{
			name:    "unknown type",
			cfg:     &listing.ModuleConfig{Type: "webhook"},
			wantErr: "unknown output module type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, err := CreateOutputModule(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil != (module == nil) {
				t.Errorf("module nil = %v, want %v", module == nil, tt.wantNil)
			}
		})
	}
}
