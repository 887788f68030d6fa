package schedule

import "github.com/jasonKoogler/hlsc/internal/ir"

// maxHorizonExtensions bounds how many times resourceConstrainedSchedule
// will push a node's scan window past its ALAP cycle looking for a
// free slot (§4.5 behavior (a): extend the horizon by one cycle and
// retry). A node that still can't be placed after this many
// extensions is reported as resource-infeasible rather than looping
// forever.
const maxHorizonExtensions = 4096

// resourceConstrainedSchedule list-schedules nodes by ascending
// mobility (ALAP−ASAP) among the currently-ready set — nodes whose
// producers have already been placed — ties broken by insertion
// order (§4.5 step 1). Walking only the ready set, rather than a
// single flat sort over every node, is what lets the scheduler
// "re-enforce precedence implicitly" (§4.4): a node's scan window
// starts no earlier than the actual (possibly resource-delayed) finish
// cycle of every producer already placed, even when that is later
// than the node's own static ASAP/ALAP bound — the window is extended
// past ALAP in that case exactly as the budget-exhaustion case does.
func resourceConstrainedSchedule(g *ir.Graph, deps map[ir.NodeID][]ir.NodeID, asap, alap map[ir.NodeID]int, budgets ResourceBudgets) (map[ir.NodeID]int, error) {
	final := make(map[ir.NodeID]int, len(g.Nodes))
	usage := make(map[int]map[ir.ResourceClass]int)

	nodeByID := make(map[ir.NodeID]ir.Node, len(g.Nodes))
	consumers := make(map[ir.NodeID][]ir.NodeID, len(g.Nodes))
	remaining := make(map[ir.NodeID]int, len(g.Nodes))

	for _, node := range g.Nodes {
		nodeByID[node.ID] = node
		d := deps[node.ID]
		remaining[node.ID] = len(d)
		for _, p := range d {
			consumers[p] = append(consumers[p], node.ID)
		}
	}

	var ready []ir.NodeID
	for _, node := range g.Nodes {
		if remaining[node.ID] == 0 {
			ready = append(ready, node.ID)
		}
	}

	for len(final) < len(g.Nodes) {
		if len(ready) == 0 {
			return nil, ErrCycleDetected
		}

		bestIdx := 0
		bestMobility := alap[ready[0]] - asap[ready[0]]
		for i := 1; i < len(ready); i++ {
			m := alap[ready[i]] - asap[ready[i]]
			if m < bestMobility || (m == bestMobility && ready[i] < ready[bestIdx]) {
				bestMobility = m
				bestIdx = i
			}
		}
		nodeID := ready[bestIdx]
		ready = append(ready[:bestIdx], ready[bestIdx+1:]...)

		node := nodeByID[nodeID]
		class := node.Op.ResourceClass()

		start := asap[nodeID]
		for _, p := range deps[nodeID] {
			producerCycle, ok := final[p]
			if !ok {
				continue
			}
			finish := producerCycle + nodeByID[p].Op.Latency()
			if finish > start {
				start = finish
			}
		}
		end := alap[nodeID]
		if end < start {
			end = start
		}

		placed := false
		cycle := start
		extensions := 0
		for !placed {
			if cycle > end {
				if extensions >= maxHorizonExtensions {
					return nil, &ResourceInfeasibleError{Node: nodeID}
				}
				end++
				extensions++
				continue
			}

			budget := budgets.capacity(class)
			cycleUsage := usage[cycle]
			if cycleUsage == nil {
				cycleUsage = make(map[ir.ResourceClass]int)
				usage[cycle] = cycleUsage
			}
			if cycleUsage[class] < budget {
				cycleUsage[class]++
				final[nodeID] = cycle
				placed = true
				break
			}
			cycle++
		}

		for _, c := range consumers[nodeID] {
			remaining[c]--
			if remaining[c] == 0 {
				ready = append(ready, c)
			}
		}
	}

	return final, nil
}
