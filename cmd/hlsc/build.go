package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jasonKoogler/hlsc/internal/config"
	"github.com/jasonKoogler/hlsc/internal/hlsexpr"
	"github.com/jasonKoogler/hlsc/internal/rtl"
	"github.com/jasonKoogler/hlsc/internal/schedule"
)

type buildOptions struct {
	configPath string
	outDir     string
	module     string
}

func newBuildCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build <expr-file>",
		Short: "Build a graph, schedule it, and emit Verilog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file (optional)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Output directory (overrides the config file)")
	cmd.Flags().StringVar(&opts.module, "module", "", "Emitted module name (overrides the config file)")

	return cmd
}

func runBuild(exprPath string, opts *buildOptions) error {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
	}
	if opts.outDir != "" {
		cfg.OutDir = opts.outDir
	}
	if opts.module != "" {
		cfg.Module = opts.module
	}

	src, err := os.ReadFile(exprPath)
	if err != nil {
		return fmt.Errorf("reading expression file: %w", err)
	}

	fn, err := hlsexpr.Parse(cfg.Module, string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", exprPath, err)
	}

	if cfg.Pipeline && !fn.Graph.PipelineConfig.Enable {
		fn.PipelineAdvanced(cfg.InitiationInterval, cfg.PipelineDepth, cfg.UnrollFactor)
	}

	if err := schedule.SchedulePipeline(fn.Graph, cfg.Budgets()); err != nil {
		return fmt.Errorf("scheduling pipeline: %w", err)
	}

	verilog := rtl.GenerateModule(fn.Graph, cfg.Module)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutDir, cfg.Module+".v")
	if err := os.WriteFile(outPath, []byte(verilog), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	logger.Printf("wrote %s (%d stages)", outPath, len(fn.Graph.PipelineStages))
	return nil
}
