package config

import (
	"os"
	"testing"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

func TestLoadConfig(t *testing.T) {
	content := `
pipeline: true
initiationInterval: 1
pipelineDepth: 14
unrollFactor: 2
resourceBudgets:
  adder: 8
  multiplier: 2
module: "fir_filter"
outDir: "out"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	cfg, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PipelineDepth != 14 {
		t.Errorf("Expected PipelineDepth = 14, got %d", cfg.PipelineDepth)
	}
	if cfg.UnrollFactor != 2 {
		t.Errorf("Expected UnrollFactor = 2, got %d", cfg.UnrollFactor)
	}
	if cfg.Module != "fir_filter" {
		t.Errorf("Expected Module = fir_filter, got %s", cfg.Module)
	}
	if got := cfg.ResourceBudgets["multiplier"]; got != 2 {
		t.Errorf("Expected multiplier budget = 2, got %d", got)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Valid config",
			cfg: Config{
				Pipeline: true, InitiationInterval: 1, PipelineDepth: 5, UnrollFactor: 1,
				Module: "m",
			},
			wantErr: false,
		},
		{
			name: "Invalid pipeline depth",
			cfg: Config{
				Pipeline: true, InitiationInterval: 1, PipelineDepth: 0, UnrollFactor: 1,
				Module: "m",
			},
			wantErr: true,
		},
		{
			name: "Invalid initiation interval",
			cfg: Config{
				Pipeline: true, InitiationInterval: 0, PipelineDepth: 5, UnrollFactor: 1,
				Module: "m",
			},
			wantErr: true,
		},
		{
			name: "Unknown resource class",
			cfg: Config{
				Pipeline: true, InitiationInterval: 1, PipelineDepth: 5, UnrollFactor: 1,
				ResourceBudgets: map[string]int{"gpu": 4},
				Module:          "m",
			},
			wantErr: true,
		},
		{
			name: "Non-positive resource budget",
			cfg: Config{
				Pipeline: true, InitiationInterval: 1, PipelineDepth: 5, UnrollFactor: 1,
				ResourceBudgets: map[string]int{"adder": 0},
				Module:          "m",
			},
			wantErr: true,
		},
		{
			name:    "Missing module name",
			cfg:     Config{Pipeline: false},
			wantErr: true,
		},
		{
			name:    "Non-pipelined config skips pipeline field validation",
			cfg:     Config{Pipeline: false, Module: "m"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateConfig(&tt.cfg); (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatalf("DefaultConfig() returned nil")
	}
	if cfg.PipelineDepth != 5 {
		t.Errorf("Expected default PipelineDepth = 5, got %d", cfg.PipelineDepth)
	}
	if cfg.Module != "hls_module" {
		t.Errorf("Expected default Module = hls_module, got %s", cfg.Module)
	}
	if err := validateConfig(cfg); err != nil {
		t.Errorf("DefaultConfig() should validate cleanly, got %v", err)
	}
}

func TestBudgetsFillsUnspecifiedFromDefaults(t *testing.T) {
	cfg := &Config{ResourceBudgets: map[string]int{"multiplier": 1}}
	budgets := cfg.Budgets()

	if got := budgets[ir.ResourceMultiplier]; got != 1 {
		t.Errorf("multiplier budget = %d, want 1 (overridden)", got)
	}
	if got := budgets[ir.ResourceAdder]; got != 100 {
		t.Errorf("adder budget = %d, want 100 (default, unspecified)", got)
	}
}
