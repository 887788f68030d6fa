// Package schedule implements the ASAP/ALAP and resource-constrained
// list scheduler: it assigns every node in a Graph to a cycle honoring
// a target initiation interval and pipeline depth, inserts
// pipeline-register nodes on multi-cycle edges, and materializes the
// final stage list.
package schedule

import (
	"errors"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// SchedulePipeline is the scheduler's entry point (§6). It is a no-op
// if pipelining is disabled on the graph. On success it mutates g in
// place: it appends PipelineRegister nodes (§4.6) and fills
// g.PipelineStages (§4.7). On failure it returns a descriptive error
// and performs no partial mutation rollback (§7); callers that need
// atomicity should snapshot the node count before calling and truncate
// g.Nodes on error.
func SchedulePipeline(g *ir.Graph, budgets ResourceBudgets) error {
	if !g.PipelineConfig.Enable {
		return nil
	}

	deps, err := ir.Dependencies(g)
	if err != nil {
		var invalid *ir.InvalidOperandError
		if errors.As(err, &invalid) {
			return &InvalidOperandError{Node: invalid.Node, Value: invalid.Value}
		}
		return err
	}

	asap, err := ASAPSchedule(g, deps)
	if err != nil {
		return err
	}

	alap := ALAPSchedule(g, asap)

	final, err := resourceConstrainedSchedule(g, deps, asap, alap, budgets)
	if err != nil {
		return err
	}

	full := insertPipelineRegisters(g, final)

	g.PipelineStages = materializeStages(full)

	return nil
}
