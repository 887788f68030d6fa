package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasonKoogler/hlsc/internal/hlsexpr"
)

type evalOptions struct {
	inputs map[string]string
}

func newEvalCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &evalOptions{inputs: make(map[string]string)}

	cmd := &cobra.Command{
		Use:   "eval <expr-file>",
		Short: "Run the software reference evaluator and print output port values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0], opts)
		},
	}

	cmd.Flags().StringToStringVar(&opts.inputs, "input", nil, "Input port binding, repeatable (name=value)")

	return cmd
}

func runEval(exprPath string, opts *evalOptions) error {
	src, err := os.ReadFile(exprPath)
	if err != nil {
		return fmt.Errorf("reading expression file: %w", err)
	}

	fn, err := hlsexpr.Parse(strings.TrimSuffix(exprPath, ".hls"), string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", exprPath, err)
	}

	ev := hlsexpr.NewEvaluator()
	for name, raw := range opts.inputs {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for input %q: %w", name, err)
		}
		ev.SetInput(fn.Graph, name, value)
	}

	outputs, err := ev.Run(fn.Graph)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", exprPath, err)
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %d\n", name, outputs[name])
	}

	return nil
}
