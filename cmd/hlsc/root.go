package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// logger is the CLI's log output; the eval and version subcommands
// print their results directly with fmt. Library packages under
// internal/ir, internal/schedule, and internal/rtl never log; they
// only return errors.
var logger = log.New(os.Stdout, "", log.LstdFlags)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "hlsc",
		Short:         "hlsc compiles a small dataflow IR into pipelined synthesizable Verilog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logger.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newEvalCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
