package hlsexpr

import (
	"fmt"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// Evaluator is a software reference model for an ir.Graph: it
// interprets the graph's operations directly, without scheduling or
// RTL, so generated hardware can be checked against a known-good
// result. Unset inputs and unresolved operands default to zero.
type Evaluator struct {
	values map[ir.ValueID]int64
}

// NewEvaluator returns an evaluator with no inputs set.
func NewEvaluator() *Evaluator {
	return &Evaluator{values: make(map[ir.ValueID]int64)}
}

// SetInput binds value to every Load node in g named name.
func (e *Evaluator) SetInput(g *ir.Graph, name string, value int64) {
	for _, node := range g.Nodes {
		if node.Op.Kind == ir.OpLoad && node.Op.Name == name && node.HasOut {
			e.values[node.Output] = value
		}
	}
}

// Run walks g's nodes in order and returns the named Store outputs.
// It assumes nodes already appear in dependency order, which holds
// for every graph a builder produces since operands must exist before
// an operation referencing them can be added.
func (e *Evaluator) Run(g *ir.Graph) (map[string]int64, error) {
	outputs := make(map[string]int64)

	for _, node := range g.Nodes {
		op := node.Op
		switch op.Kind {
		case ir.OpConst:
			if node.HasOut {
				e.values[node.Output] = op.ConstVal
			}
		case ir.OpLoad:
			if node.HasOut {
				if _, set := e.values[node.Output]; !set {
					e.values[node.Output] = 0
				}
			}
		case ir.OpAdd:
			e.setBinary(node, func(a, b int64) int64 { return a + b })
		case ir.OpSub:
			e.setBinary(node, func(a, b int64) int64 { return a - b })
		case ir.OpMul:
			e.setBinary(node, func(a, b int64) int64 { return a * b })
		case ir.OpDiv:
			if e.values[op.B] == 0 {
				return nil, fmt.Errorf("division by zero evaluating node %d", node.ID)
			}
			e.setBinary(node, func(a, b int64) int64 { return a / b })
		case ir.OpAnd:
			e.setBinary(node, func(a, b int64) int64 { return a & b })
		case ir.OpOr:
			e.setBinary(node, func(a, b int64) int64 { return a | b })
		case ir.OpNot:
			if node.HasOut {
				if e.values[op.A] == 0 {
					e.values[node.Output] = 1
				} else {
					e.values[node.Output] = 0
				}
			}
		case ir.OpCmpLt:
			e.setBinary(node, func(a, b int64) int64 {
				if a < b {
					return 1
				}
				return 0
			})
		case ir.OpCmpEq:
			e.setBinary(node, func(a, b int64) int64 {
				if a == b {
					return 1
				}
				return 0
			})
		case ir.OpMux:
			if node.HasOut {
				if e.values[op.A] != 0 {
					e.values[node.Output] = e.values[op.B]
				} else {
					e.values[node.Output] = e.values[op.C]
				}
			}
		case ir.OpStore:
			outputs[op.Name] = e.values[op.A]
		case ir.OpPipelineRegister:
			if node.HasOut {
				e.values[node.Output] = e.values[op.A]
			}
		case ir.OpPipelineBarrier, ir.OpNop:
			// no value produced
		}
	}

	return outputs, nil
}

func (e *Evaluator) setBinary(node ir.Node, fn func(a, b int64) int64) {
	if !node.HasOut {
		return
	}
	e.values[node.Output] = fn(e.values[node.Op.A], e.values[node.Op.B])
}
