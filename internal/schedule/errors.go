package schedule

import (
	"errors"
	"fmt"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// ErrCycleDetected indicates the dependency graph built from a Graph
// is not a DAG. Given the builder's acyclicity invariant (§3) this
// should be unreachable; it is still checked defensively (§4.3).
var ErrCycleDetected = errors.New("schedule: cycle detected in dependency graph")

// ResourceInfeasibleError reports that the resource-constrained
// scheduler could not place a node within [ASAP, ALAP] even after
// horizon extension (§4.5, §7).
type ResourceInfeasibleError struct {
	Node ir.NodeID
}

func (e *ResourceInfeasibleError) Error() string {
	return fmt.Sprintf("schedule: resource infeasible for node %d", e.Node)
}

// InvalidOperandError reports that an operation referenced an unknown
// value (§7). SchedulePipeline returns it, converted from the
// *ir.InvalidOperandError that ir.Dependencies reports; graphs built
// through the ir construction methods cannot reach it, since those
// panic on an unknown operand first.
type InvalidOperandError struct {
	Node  ir.NodeID
	Value ir.ValueID
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("schedule: node %d references unknown operand value %d", e.Node, e.Value)
}
