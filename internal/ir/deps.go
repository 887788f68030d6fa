package ir

import "fmt"

// InvalidOperandError reports that a node's operand references a value
// with no producer in the graph's value→producer map (§7:
// InvalidOperand(node, value)). Normal construction through
// AddNodeWithOutput/AddNode rules this out with a debug-assertion
// panic (§4.1); Dependencies re-checks it defensively since it is the
// first pass to walk every operand of every node and is the pass the
// scheduler's error taxonomy attributes this failure to.
type InvalidOperandError struct {
	Node  NodeID
	Value ValueID
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("ir: node %d references unknown operand value %d", e.Node, e.Value)
}

// Dependencies returns, for every node in the graph, the set of node
// identifiers it depends on. The producer of each operand value is
// looked up in the value→producer map; nodes with no operand values
// (Load, Const, Nop, PipelineBarrier) depend on nothing. This is the
// input to scheduling (§4.2).
//
// Returns an *InvalidOperandError if any operand has no producer in
// the value map.
func Dependencies(g *Graph) (map[NodeID][]NodeID, error) {
	deps := make(map[NodeID][]NodeID, len(g.Nodes))
	for _, node := range g.Nodes {
		operands := node.Op.Operands()
		if len(operands) == 0 {
			deps[node.ID] = nil
			continue
		}
		nodeDeps := make([]NodeID, 0, len(operands))
		for _, operand := range operands {
			producer, ok := g.ValueMap[operand]
			if !ok {
				return nil, &InvalidOperandError{Node: node.ID, Value: operand}
			}
			nodeDeps = append(nodeDeps, producer)
		}
		deps[node.ID] = nodeDeps
	}
	return deps, nil
}
