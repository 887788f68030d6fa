package rtl

import (
	"fmt"
	"strings"
)

// writeMACPipeline emits the canonical 5-stage multiply-accumulate
// pipeline (§4.8): two parallel products from the first four input
// ports, their sum, a final accumulation against a fifth input by
// convention, and an output latch. Hand-readable by design — this is
// the whole point of pattern-directed emission over the generic
// fallback.
func writeMACPipeline(b *strings.Builder, analysis Analysis) {
	inputs := analysis.Inputs
	passthrough := []string{}
	if len(inputs) > 4 {
		passthrough = inputs[4:]
	}

	writeControlHandshake(b, analysis.LogicalStages)

	b.WriteString("    // Pipeline registers — Stage 0 (input registration)\n")
	for _, in := range inputs {
		fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s_reg0;\n", in)
	}
	b.WriteString("\n")

	b.WriteString("    // Pipeline registers — Stage 1 (parallel multiplication)\n")
	b.WriteString("    reg [DATA_WIDTH-1:0] mult_ab_reg1, mult_cd_reg1;\n")
	for _, in := range passthrough {
		fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s_reg1;\n", in)
	}
	b.WriteString("\n")

	b.WriteString("    // Pipeline registers — Stage 2 (first addition)\n")
	b.WriteString("    reg [DATA_WIDTH-1:0] add_mult_reg2;\n")
	for _, in := range passthrough {
		fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s_reg2;\n", in)
	}
	b.WriteString("\n")

	b.WriteString("    // Pipeline registers — Stage 3 (final accumulation)\n")
	b.WriteString("    reg [DATA_WIDTH-1:0] result_reg3;\n")
	b.WriteString("\n")

	writeMACStage0(b, inputs)
	writeMACStage1(b, inputs, passthrough)
	writeMACStage2(b, passthrough)
	writeMACStage3(b, passthrough)
	writeMACStage4(b, analysis.Outputs)
}

func writeMACStage0(b *strings.Builder, inputs []string) {
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
}

func writeMACStage1(b *strings.Builder, inputs, passthrough []string) {
	b.WriteString("    // Stage 1: parallel multiplication\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	b.WriteString("            mult_ab_reg1 <= {DATA_WIDTH{1'b0}};\n")
	b.WriteString("            mult_cd_reg1 <= {DATA_WIDTH{1'b0}};\n")
	for _, in := range passthrough {
		fmt.Fprintf(b, "            %s_reg1 <= {DATA_WIDTH{1'b0}};\n", in)
	}
	b.WriteString("        end else if (pipeline_valid[1]) begin\n")
	b.WriteString("            (* USE_DSP = \"yes\", DSP_A_INPUT = \"DIRECT\", DSP_B_INPUT = \"DIRECT\" *)\n")
	if len(inputs) >= 2 {
		fmt.Fprintf(b, "            mult_ab_reg1 <= %s_reg0 * %s_reg0;\n", inputs[0], inputs[1])
	} else {
		b.WriteString("            mult_ab_reg1 <= {DATA_WIDTH{1'b0}};\n")
	}
	b.WriteString("            (* USE_DSP = \"yes\", DSP_A_INPUT = \"DIRECT\", DSP_B_INPUT = \"DIRECT\" *)\n")
	if len(inputs) >= 4 {
		fmt.Fprintf(b, "            mult_cd_reg1 <= %s_reg0 * %s_reg0;\n", inputs[2], inputs[3])
	} else {
		b.WriteString("            mult_cd_reg1 <= {DATA_WIDTH{1'b0}};\n")
	}
	for _, in := range passthrough {
		fmt.Fprintf(b, "            %s_reg1 <= %s_reg0;  // pass through\n", in, in)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")
}

func writeMACStage2(b *strings.Builder, passthrough []string) {
	b.WriteString("    // Stage 2: first addition (mult_ab + mult_cd)\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	b.WriteString("            add_mult_reg2 <= {DATA_WIDTH{1'b0}};\n")
	for _, in := range passthrough {
		fmt.Fprintf(b, "            %s_reg2 <= {DATA_WIDTH{1'b0}};\n", in)
	}
	b.WriteString("        end else if (pipeline_valid[2]) begin\n")
	b.WriteString("            add_mult_reg2 <= mult_ab_reg1 + mult_cd_reg1;\n")
	for _, in := range passthrough {
		fmt.Fprintf(b, "            %s_reg2 <= %s_reg1;  // pass through\n", in, in)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")
}

func writeMACStage3(b *strings.Builder, passthrough []string) {
	accumuland := "32'd0"
	if len(passthrough) > 0 {
		accumuland = passthrough[0] + "_reg2"
	}

	b.WriteString("    // Stage 3: final accumulation\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	b.WriteString("            result_reg3 <= {DATA_WIDTH{1'b0}};\n")
	b.WriteString("        end else if (pipeline_valid[3]) begin\n")
	fmt.Fprintf(b, "            result_reg3 <= add_mult_reg2 + %s;\n", accumuland)
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")
}

func writeMACStage4(b *strings.Builder, outputs []string) {
	b.WriteString("    // Stage 4: output latch\n")
	b.WriteString("    always @(posedge ap_clk) begin\n")
	b.WriteString("        if (!ap_rst_n) begin\n")
	for _, out := range outputs {
		fmt.Fprintf(b, "            %s <= {DATA_WIDTH{1'b0}};\n", out)
	}
	b.WriteString("        end else if (pipeline_valid[4]) begin\n")
	for _, out := range outputs {
		fmt.Fprintf(b, "            %s <= result_reg3;\n", out)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n")
}
