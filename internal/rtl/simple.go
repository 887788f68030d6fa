package rtl

import (
	"fmt"
	"strings"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// writeSimpleModule emits the non-pipelined code path: a three-state
// handshake (IDLE/COMPUTE/DONE) wrapped around a purely combinational
// datapath, used when pipelining is disabled or the graph carries no
// stage list (§4.8, §6: generate_module dispatches here in that case).
func writeSimpleModule(b *strings.Builder, g *ir.Graph) {
	stores := storeOperands(g)

	b.WriteString("    // Non-pipelined control state machine\n")
	b.WriteString("    reg [1:0] state;\n")
	b.WriteString("    localparam IDLE = 2'b00, COMPUTE = 2'b01, DONE = 2'b10;\n")
	b.WriteString("\n")
	b.WriteString("    assign ap_idle = (state == IDLE);\n")
	b.WriteString("    assign ap_ready = (state == IDLE);\n")
	b.WriteString("\n")

	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	b.WriteString("            state <= IDLE;\n")
	b.WriteString("            ap_done <= 1'b0;\n")
	for _, s := range stores {
		fmt.Fprintf(b, "            %s <= {DATA_WIDTH{1'b0}};\n", s.Name)
	}
	b.WriteString("        end else begin\n")
	b.WriteString("            case (state)\n")
	b.WriteString("                IDLE: begin\n")
	b.WriteString("                    ap_done <= 1'b0;\n")
	b.WriteString("                    if (ap_start) begin\n")
	b.WriteString("                        state <= COMPUTE;\n")
	b.WriteString("                    end\n")
	b.WriteString("                end\n")
	b.WriteString("                COMPUTE: begin\n")
	for _, s := range stores {
		fmt.Fprintf(b, "                    %s <= %s;\n", s.Name, verilogOperand(g, s.Value, ""))
	}
	b.WriteString("                    state <= DONE;\n")
	b.WriteString("                end\n")
	b.WriteString("                DONE: begin\n")
	b.WriteString("                    ap_done <= 1'b1;\n")
	b.WriteString("                    state <= IDLE;\n")
	b.WriteString("                end\n")
	b.WriteString("                default: state <= IDLE;\n")
	b.WriteString("            endcase\n")
	b.WriteString("        end\n")
	b.WriteString("    end\n")
}
