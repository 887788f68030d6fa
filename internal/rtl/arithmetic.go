package rtl

import (
	"fmt"
	"strings"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// writeArithmeticPipeline emits the shorter 3-stage variant for the
// SimpleArithmetic pattern (§4.8): input registration, a single
// combinational compute stage (the whole expression tree is small
// enough — at most one multiply, at most two adds — to inline), and
// an output latch. Shares the same handshake protocol as every other
// pattern.
func writeArithmeticPipeline(b *strings.Builder, analysis Analysis, g *ir.Graph) {
	inputs := analysis.Inputs
	stores := storeOperands(g)

	writeControlHandshake(b, analysis.LogicalStages)

	b.WriteString("    // Pipeline registers — Stage 0 (input registration)\n")
	for _, in := range inputs {
		fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s_reg0;\n", in)
	}
	b.WriteString("\n")

	b.WriteString("    // Pipeline registers — Stage 1 (compute)\n")
	for _, s := range stores {
		fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s_reg1;\n", s.Name)
	}
	b.WriteString("\n")

	b.WriteString("    // Stage 0: input registration\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	for _, in := range inputs {
		fmt.Fprintf(b, "            %s_reg0 <= {DATA_WIDTH{1'b0}};\n", in)
	}
	b.WriteString("        end else if (pipeline_valid[0]) begin\n")
	for _, in := range inputs {
		fmt.Fprintf(b, "            %s_reg0 <= %s;\n", in, in)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")

	b.WriteString("    // Stage 1: compute\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	for _, s := range stores {
		fmt.Fprintf(b, "            %s_reg1 <= {DATA_WIDTH{1'b0}};\n", s.Name)
	}
	b.WriteString("        end else if (pipeline_valid[1]) begin\n")
	for _, s := range stores {
		fmt.Fprintf(b, "            %s_reg1 <= %s;\n", s.Name, verilogOperand(g, s.Value, "_reg0"))
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")

	b.WriteString("    // Stage 2: output latch\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	for _, s := range stores {
		fmt.Fprintf(b, "            %s <= {DATA_WIDTH{1'b0}};\n", s.Name)
	}
	b.WriteString("        end else if (pipeline_valid[2]) begin\n")
	for _, s := range stores {
		fmt.Fprintf(b, "            %s <= %s_reg1;\n", s.Name, s.Name)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n")
}
