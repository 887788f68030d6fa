package schedule

import (
	"sort"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// materializeStages groups scheduled nodes by cycle, sorts the groups
// by cycle ascending, and assigns dense zero-based stage indices
// (§4.7). Empty cycles are skipped rather than recorded.
func materializeStages(schedule map[ir.NodeID]int) []ir.PipelineStage {
	byCycle := make(map[int][]ir.NodeID)
	for node, cycle := range schedule {
		byCycle[cycle] = append(byCycle[cycle], node)
	}

	cycles := make([]int, 0, len(byCycle))
	for c := range byCycle {
		cycles = append(cycles, c)
	}
	sort.Ints(cycles)

	stages := make([]ir.PipelineStage, 0, len(cycles))
	for stageIdx, cycle := range cycles {
		ops := byCycle[cycle]
		sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
		stages = append(stages, ir.PipelineStage{
			Stage:      stageIdx,
			Cycle:      cycle,
			Operations: ops,
		})
	}
	return stages
}
