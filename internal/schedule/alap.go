package schedule

import "github.com/jasonKoogler/hlsc/internal/ir"

// ALAPSchedule computes the latest cycle at which each node may
// execute without extending the overall schedule beyond the target
// horizon (§4.4).
//
// The horizon is the minimum of the maximum observed ASAP cycle and
// the pipeline's target depth. Per node, slack equals horizon minus
// the node's ASAP cycle, clamped to zero; ALAP equals ASAP plus slack.
// This is deliberately the simpler, non-reverse-topological form named
// in §4.4/§9: it is used only as a mobility bound for list scheduling,
// which re-enforces precedence by walking nodes in topological order.
func ALAPSchedule(g *ir.Graph, asap map[ir.NodeID]int) map[ir.NodeID]int {
	maxCycle := 0
	for _, c := range asap {
		if c > maxCycle {
			maxCycle = c
		}
	}

	horizon := maxCycle
	if depth := g.PipelineConfig.PipelineDepth; depth < horizon {
		horizon = depth
	}

	alap := make(map[ir.NodeID]int, len(asap))
	for _, node := range g.Nodes {
		asapTime := asap[node.ID]
		slack := horizon - asapTime
		if slack < 0 {
			slack = 0
		}
		alap[node.ID] = asapTime + slack
	}
	return alap
}
