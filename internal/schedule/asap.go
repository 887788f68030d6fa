package schedule

import "github.com/jasonKoogler/hlsc/internal/ir"

// ASAPSchedule computes the earliest cycle at which each node may
// execute given its data dependencies (§4.3). It is a Kahn-style
// topological traversal: zero-dependency nodes start at cycle 0; a
// consumer's candidate cycle is the maximum over all its producers'
// finish cycles (cycle + latency); a node is scheduled as soon as its
// outstanding-dependency count reaches zero.
//
// Returns ErrCycleDetected if any node remains unscheduled, which
// should not occur given the graph's acyclicity invariant.
func ASAPSchedule(g *ir.Graph, deps map[ir.NodeID][]ir.NodeID) (map[ir.NodeID]int, error) {
	schedule := make(map[ir.NodeID]int, len(g.Nodes))

	// consumers[p] lists nodes that depend on p, built once so the
	// traversal is O(N+E) rather than re-scanning all nodes per pop.
	consumers := make(map[ir.NodeID][]ir.NodeID, len(g.Nodes))
	remaining := make(map[ir.NodeID]int, len(g.Nodes))

	for _, node := range g.Nodes {
		d := deps[node.ID]
		remaining[node.ID] = len(d)
		for _, p := range d {
			consumers[p] = append(consumers[p], node.ID)
		}
	}

	type queued struct {
		node  ir.NodeID
		cycle int
	}
	var queue []queued
	for _, node := range g.Nodes {
		if remaining[node.ID] == 0 {
			queue = append(queue, queued{node.ID, 0})
		}
	}

	nodeByID := make(map[ir.NodeID]ir.Node, len(g.Nodes))
	for _, node := range g.Nodes {
		nodeByID[node.ID] = node
	}
	pendingStart := make(map[ir.NodeID]int, len(g.Nodes))

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		node := nodeByID[item.node]
		latency := node.Op.Latency()
		finish := item.cycle + latency

		schedule[item.node] = item.cycle

		for _, consumer := range consumers[item.node] {
			remaining[consumer]--
			if remaining[consumer] == 0 {
				// A consumer may have multiple producers finishing at
				// different cycles; take the max already recorded, if
				// any, by tracking it alongside remaining.
				candidate := finish
				if prior, ok := pendingStart[consumer]; ok && prior > candidate {
					candidate = prior
				}
				queue = append(queue, queued{consumer, candidate})
				delete(pendingStart, consumer)
			} else {
				if prior, ok := pendingStart[consumer]; !ok || finish > prior {
					pendingStart[consumer] = finish
				}
			}
		}
	}

	if len(schedule) != len(g.Nodes) {
		return nil, ErrCycleDetected
	}
	return schedule, nil
}
