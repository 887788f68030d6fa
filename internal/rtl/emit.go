package rtl

import (
	"strings"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// GenerateModule is the emitter's sole entry point (§6): it returns a
// single synthesizable Verilog module named moduleName. It dispatches
// to the pipelined code path when pipelining is enabled and the graph
// carries a non-empty stage list, and to the simple combinational
// code path otherwise. The emitter never returns an error — a
// malformed graph yields malformed RTL, per §4.8 — callers that need
// validation should run the software evaluator first.
func GenerateModule(g *ir.Graph, moduleName string) string {
	var b strings.Builder

	analysis := Analyze(g)
	writeFilePreamble(&b, analysis)
	writeModuleHeader(&b, moduleName, analysis)

	if g.PipelineConfig.Enable && len(g.PipelineStages) > 0 {
		switch analysis.Pattern {
		case PatternMAC:
			writeMACPipeline(&b, analysis)
		case PatternSimpleArithmetic:
			writeArithmeticPipeline(&b, analysis, g)
		default:
			writeGenericPipeline(&b, g)
		}
	} else {
		writeSimpleModule(&b, g)
	}

	b.WriteString("\nendmodule\n")
	return b.String()
}
