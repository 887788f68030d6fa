package rtl

import (
	"fmt"
	"strings"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// writeGenericPipeline is the Complex-pattern fallback: instead of a
// hand-shaped datapath it emits one register per value-producing node
// and one clocked always-block per scheduled stage, gated by that
// stage's valid bit (§4.8). Cross-stage operand references resolve
// through the register-chain discipline fixed in §9: a direct
// (one-stage) producer is read from its own register, a producer more
// than one stage back is read from the chain element landing in the
// immediately preceding stage.
func writeGenericPipeline(b *strings.Builder, g *ir.Graph) {
	stages := g.PipelineStages
	writeControlHandshake(b, len(stages))

	nodeStage := make(map[ir.NodeID]int, len(g.Nodes))
	nodeByID := make(map[ir.NodeID]ir.Node, len(g.Nodes))
	for _, node := range g.Nodes {
		nodeByID[node.ID] = node
	}
	for _, stage := range stages {
		for _, id := range stage.Operations {
			nodeStage[id] = stage.Stage
		}
	}

	regName := func(id ir.NodeID) string { return fmt.Sprintf("n%d_reg", id) }

	operandReg := func(value ir.ValueID, consumerStage int) string {
		producerID := g.ValueMap[value]
		producerStage := nodeStage[producerID]
		gap := consumerStage - producerStage
		if gap <= 1 {
			return regName(producerID)
		}
		chain := g.RegisterChains[value]
		idx := gap - 2
		if idx >= 0 && idx < len(chain) {
			return regName(chain[idx])
		}
		return regName(producerID)
	}

	b.WriteString("    // Per-node pipeline registers (generic fallback)\n")
	for _, node := range g.Nodes {
		if node.Op.ProducesValue() {
			fmt.Fprintf(b, "    reg [DATA_WIDTH-1:0] %s;\n", regName(node.ID))
		}
	}
	b.WriteString("\n")

	for _, stage := range stages {
		fmt.Fprintf(b, "    // Stage %d (cycle %d)\n", stage.Stage, stage.Cycle)
		b.WriteString("    always @(posedge ap_clk) begin\n")
		b.WriteString("        if (!ap_rst_n) begin\n")
		for _, id := range stage.Operations {
			node := nodeByID[id]
			switch {
			case node.Op.ProducesValue():
				fmt.Fprintf(b, "            %s <= {DATA_WIDTH{1'b0}};\n", regName(id))
			case node.Op.Kind == ir.OpStore:
				fmt.Fprintf(b, "            %s <= {DATA_WIDTH{1'b0}};\n", node.Op.Name)
			}
		}
		fmt.Fprintf(b, "        end else if (pipeline_valid[%d]) begin\n", stage.Stage)
		for _, id := range stage.Operations {
			node := nodeByID[id]
			op := node.Op
			switch op.Kind {
			case ir.OpConst:
				fmt.Fprintf(b, "            %s <= %d;\n", regName(id), op.ConstVal)
			case ir.OpLoad:
				fmt.Fprintf(b, "            %s <= %s;\n", regName(id), op.Name)
			case ir.OpStore:
				fmt.Fprintf(b, "            %s <= %s;\n", op.Name, operandReg(op.A, stage.Stage))
			case ir.OpPipelineRegister:
				fmt.Fprintf(b, "            %s <= %s;\n", regName(id), operandReg(op.A, stage.Stage))
			case ir.OpAdd:
				fmt.Fprintf(b, "            %s <= %s + %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpSub:
				fmt.Fprintf(b, "            %s <= %s - %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpMul:
				b.WriteString("            (* USE_DSP = \"yes\" *)\n")
				fmt.Fprintf(b, "            %s <= %s * %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpDiv:
				fmt.Fprintf(b, "            %s <= %s / %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpAnd:
				fmt.Fprintf(b, "            %s <= %s & %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpOr:
				fmt.Fprintf(b, "            %s <= %s | %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpNot:
				fmt.Fprintf(b, "            %s <= ~%s;\n", regName(id), operandReg(op.A, stage.Stage))
			case ir.OpCmpLt:
				fmt.Fprintf(b, "            %s <= (%s < %s);\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpCmpEq:
				fmt.Fprintf(b, "            %s <= (%s == %s);\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage))
			case ir.OpMux:
				fmt.Fprintf(b, "            %s <= %s ? %s : %s;\n", regName(id), operandReg(op.A, stage.Stage), operandReg(op.B, stage.Stage), operandReg(op.C, stage.Stage))
			case ir.OpPipelineBarrier, ir.OpNop:
				// No register, no assignment.
			}
		}
		b.WriteString("        end\n")
		b.WriteString("    end\n\n")
	}
}
