package rtl

import (
	"fmt"
	"strings"
)

// DataWidth and AddrWidth are the module parameter defaults named in
// §4.8 and §6. Every emitted module declares them as overridable
// Verilog parameters; these constants only seed that declaration.
const (
	DataWidth = 32
	AddrWidth = 16
)

// writeModuleHeader emits the module declaration: parameters, the
// always-present clock/reset/handshake ports, then one input per
// distinct Load port name and one output per distinct Store port
// name, both in insertion order (§4.8, §6).
func writeModuleHeader(b *strings.Builder, moduleName string, analysis Analysis) {
	fmt.Fprintf(b, "module %s #(\n", moduleName)
	fmt.Fprintf(b, "    parameter integer DATA_WIDTH = %d,\n", DataWidth)
	fmt.Fprintf(b, "    parameter integer ADDR_WIDTH = %d\n", AddrWidth)
	b.WriteString(") (\n")

	b.WriteString("    // Clock and reset\n")
	b.WriteString("    input  wire                    ap_clk,\n")
	b.WriteString("    input  wire                    ap_rst_n,\n")
	b.WriteString("\n")
	b.WriteString("    // Control handshake\n")
	b.WriteString("    input  wire                    ap_start,\n")
	b.WriteString("    output reg                      ap_done,\n")
	b.WriteString("    output wire                     ap_idle,\n")
	b.WriteString("    output wire                     ap_ready")

	hasData := len(analysis.Inputs) > 0 || len(analysis.Outputs) > 0
	if hasData {
		b.WriteString(",\n")
	} else {
		b.WriteString("\n")
	}

	if len(analysis.Inputs) > 0 {
		b.WriteString("\n    // Data inputs\n")
		for _, name := range analysis.Inputs {
			fmt.Fprintf(b, "    input  wire [DATA_WIDTH-1:0]   %s,\n", name)
		}
	}

	if len(analysis.Outputs) > 0 {
		b.WriteString("\n    // Data outputs\n")
		for i, name := range analysis.Outputs {
			comma := ","
			if i == len(analysis.Outputs)-1 {
				comma = ""
			}
			fmt.Fprintf(b, "    output reg  [DATA_WIDTH-1:0]   %s%s\n", name, comma)
		}
	}

	b.WriteString(");\n\n")
}

// writeFilePreamble emits the comment banner and the
// translate_off/translate_on-wrapped timescale directive common to
// every emitted module, pipelined or not.
func writeFilePreamble(b *strings.Builder, analysis Analysis) {
	b.WriteString("// Generated RTL — FPGA target\n")
	b.WriteString("// Vendor: Xilinx Vivado HLS compatible\n")
	if analysis.LogicalStages > 0 {
		fmt.Fprintf(b, "// Pipeline: %d-stage %s implementation\n", analysis.LogicalStages, analysis.Pattern)
	}
	b.WriteString("// synthesis translate_off\n")
	b.WriteString("`timescale 1ns / 1ps\n")
	b.WriteString("// synthesis translate_on\n\n")
}
