package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jasonKoogler/hlsc/internal/ir"
	"github.com/jasonKoogler/hlsc/internal/schedule"
)

// Config represents the compiler's build configuration: the target
// pipeline shape and the per-resource-class budgets the scheduler must
// respect.
type Config struct {
	// Pipeline configuration (§4, passed to Graph.EnablePipeline).
	Pipeline           bool `yaml:"pipeline"`
	InitiationInterval int  `yaml:"initiationInterval"`
	PipelineDepth      int  `yaml:"pipelineDepth"`
	UnrollFactor       int  `yaml:"unrollFactor"`

	// ResourceBudgets is configuration, not hard-coded scheduling
	// policy (§4.5): per-cycle capacity for each bounded resource
	// class, keyed by name rather than ir.ResourceClass so it
	// round-trips through YAML.
	ResourceBudgets map[string]int `yaml:"resourceBudgets"`

	// Module is the name given to the emitted RTL module; OutDir is
	// the output directory convention named in §6
	// (<out_dir>/<module>.v).
	Module string `yaml:"module"`
	OutDir string `yaml:"outDir"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateConfig checks if the configuration is valid.
func validateConfig(cfg *Config) error {
	if cfg.Pipeline {
		if cfg.InitiationInterval <= 0 {
			return fmt.Errorf("initiation interval must be positive")
		}
		if cfg.PipelineDepth <= 0 {
			return fmt.Errorf("pipeline depth must be positive")
		}
		if cfg.UnrollFactor <= 0 {
			return fmt.Errorf("unroll factor must be positive")
		}
	}

	for class, budget := range cfg.ResourceBudgets {
		if _, ok := resourceClassNames[class]; !ok {
			return fmt.Errorf("unknown resource class: %s", class)
		}
		if budget <= 0 {
			return fmt.Errorf("resource budget for %s must be positive", class)
		}
	}

	if cfg.Module == "" {
		return fmt.Errorf("module name must not be empty")
	}

	return nil
}

// resourceClassNames maps the YAML names accepted in ResourceBudgets
// to the ir.ResourceClass they configure.
var resourceClassNames = map[string]ir.ResourceClass{
	"adder":      ir.ResourceAdder,
	"multiplier": ir.ResourceMultiplier,
	"divider":    ir.ResourceDivider,
	"memory":     ir.ResourceMemory,
}

// Budgets converts the YAML-friendly ResourceBudgets map into the
// schedule package's keyed-by-ResourceClass form, filling in any class
// left unspecified from the compiled-in defaults.
func (cfg *Config) Budgets() schedule.ResourceBudgets {
	out := schedule.ResourceBudgets{
		ir.ResourceAdder:      100,
		ir.ResourceMultiplier: 12,
		ir.ResourceDivider:    4,
		ir.ResourceMemory:     8,
	}
	for name, budget := range cfg.ResourceBudgets {
		if class, ok := resourceClassNames[name]; ok {
			out[class] = budget
		}
	}
	return out
}

// DefaultConfig returns a default configuration: pipelining enabled
// with a modest depth, and the §4.5 reference resource budgets.
func DefaultConfig() *Config {
	return &Config{
		Pipeline:           true,
		InitiationInterval: 1,
		PipelineDepth:      5,
		UnrollFactor:       1,

		ResourceBudgets: map[string]int{
			"adder":      100,
			"multiplier": 12,
			"divider":    4,
			"memory":     8,
		},

		Module: "hls_module",
		OutDir: "build",
	}
}
