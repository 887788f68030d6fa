package rtl

import (
	"fmt"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// verilogOperand recursively renders the combinational expression that
// computes value v, reading register inputs by name with the given
// suffix (e.g. "_reg0") and descending through Add/Sub/Mul/And/Or/Not
// operands. Used by the simple-arithmetic pattern, whose single
// compute stage is small enough to inline as one expression rather
// than materialize a wire per node.
func verilogOperand(g *ir.Graph, v ir.ValueID, regSuffix string) string {
	nodeID, ok := g.ValueMap[v]
	if !ok {
		return "32'd0"
	}
	node, ok := g.Node(nodeID)
	if !ok {
		return "32'd0"
	}

	op := node.Op
	switch op.Kind {
	case ir.OpConst:
		return fmt.Sprintf("%d", op.ConstVal)
	case ir.OpLoad:
		return op.Name + regSuffix
	case ir.OpAdd:
		return fmt.Sprintf("(%s + %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpSub:
		return fmt.Sprintf("(%s - %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpMul:
		return fmt.Sprintf("(%s * %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpAnd:
		return fmt.Sprintf("(%s & %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpOr:
		return fmt.Sprintf("(%s | %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpNot:
		return fmt.Sprintf("(~%s)", verilogOperand(g, op.A, regSuffix))
	case ir.OpCmpLt:
		return fmt.Sprintf("(%s < %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpCmpEq:
		return fmt.Sprintf("(%s == %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix))
	case ir.OpMux:
		return fmt.Sprintf("(%s ? %s : %s)", verilogOperand(g, op.A, regSuffix), verilogOperand(g, op.B, regSuffix), verilogOperand(g, op.C, regSuffix))
	default:
		return "32'd0"
	}
}

// storeOperands returns, for every Store node in insertion order, the
// port name and the value it writes.
func storeOperands(g *ir.Graph) []struct {
	Name string
	Value ir.ValueID
} {
	var stores []struct {
		Name  string
		Value ir.ValueID
	}
	for _, node := range g.Nodes {
		if node.Op.Kind == ir.OpStore {
			stores = append(stores, struct {
				Name  string
				Value ir.ValueID
			}{Name: node.Op.Name, Value: node.Op.A})
		}
	}
	return stores
}
