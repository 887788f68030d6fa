package schedule

import (
	"sort"

	"github.com/jasonKoogler/hlsc/internal/ir"
)

// insertPipelineRegisters finds every value whose producer and some
// consumer are ≥2 *stages* apart and inserts a chain of
// PipelineRegister nodes on that value (§4.6). The original consumer
// is not rewired: the graph records the chain in RegisterChains so a
// downstream reader (the RTL emitter) can look up the right
// cross-stage register by stage offset, the discipline fixed in §9.
//
// "Stage" here means the dense, zero-based index §4.7 assigns to each
// distinct occupied cycle — the same notion the worked mobility
// example in §8 reasons in ("a chain of length 0 on the later
// multiplier and length 1 on the earlier"), not the raw cycle number.
// Scheduling can leave cycles with no node scheduled in them (e.g. a
// resource-delayed consumer skips ahead); those empty cycles don't
// count as stage boundaries a value needs to cross.
//
// The traversal walks a snapshot of the node list taken before any
// insertion, so register nodes are never themselves candidates for
// further register insertion within this pass.
//
// Returns a schedule map covering both the original nodes (copied from
// final) and the newly inserted register nodes, for stage
// materialization.
func insertPipelineRegisters(g *ir.Graph, final map[ir.NodeID]int) map[ir.NodeID]int {
	snapshot := make([]ir.Node, len(g.Nodes))
	copy(snapshot, g.Nodes)

	full := make(map[ir.NodeID]int, len(final))
	for id, cycle := range final {
		full[id] = cycle
	}

	cycleToStage, sortedCycles := denseStageIndex(final)

	// maxGap[v] is the largest (consumerStage - producerStage) seen
	// across all consumers of v.
	maxGap := make(map[ir.ValueID]int)

	for _, node := range snapshot {
		consumerCycle, ok := final[node.ID]
		if !ok {
			continue
		}
		consumerStage := cycleToStage[consumerCycle]
		for _, operand := range node.Op.Operands() {
			producerNode, ok := g.ValueMap[operand]
			if !ok {
				continue
			}
			producerCycle, ok := final[producerNode]
			if !ok {
				continue
			}
			gap := consumerStage - cycleToStage[producerCycle]
			if gap >= 2 && gap > maxGap[operand] {
				maxGap[operand] = gap
			}
		}
	}

	// Deterministic iteration over the values needing a chain.
	values := make([]ir.ValueID, 0, len(maxGap))
	for v := range maxGap {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	for _, v := range values {
		gap := maxGap[v]
		producerNode := g.ValueMap[v]
		producerStage := cycleToStage[final[producerNode]]

		chainLen := gap - 1
		chain := make([]ir.NodeID, 0, chainLen)
		current := v
		for i := 0; i < chainLen; i++ {
			next := g.InsertPipelineRegister(current)
			nodeID := g.ValueMap[next]
			cycle := sortedCycles[producerStage+1+i]
			full[nodeID] = cycle
			chain = append(chain, nodeID)
			current = next
		}
		g.RegisterChains[v] = chain
	}

	return full
}

// denseStageIndex assigns each distinct cycle present in schedule a
// zero-based index in ascending order, mirroring the stage indices
// materializeStages (§4.7) will later assign to the same cycles.
func denseStageIndex(schedule map[ir.NodeID]int) (map[int]int, []int) {
	seen := make(map[int]bool)
	for _, cycle := range schedule {
		seen[cycle] = true
	}
	cycles := make([]int, 0, len(seen))
	for c := range seen {
		cycles = append(cycles, c)
	}
	sort.Ints(cycles)

	index := make(map[int]int, len(cycles))
	for i, c := range cycles {
		index[c] = i
	}
	return index, cycles
}
