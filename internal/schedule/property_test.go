package schedule

import (
	"fmt"
	"testing"

	"github.com/jasonKoogler/hlsc/internal/ir"
	"pgregory.net/rapid"
)

// binaryKinds are the binary operations used to build random graphs;
// Div and Mux are left out so generated graphs stay small and fast to
// schedule (Div's latency of 18 would dominate every horizon).
var binaryKinds = []func(a, b ir.ValueID) ir.Operation{
	ir.NewAdd, ir.NewSub, ir.NewMul, ir.NewAnd, ir.NewOr, ir.NewCmpLt, ir.NewCmpEq,
}

// graphPlan is a plain-data recipe for a random DAG: a handful of
// Const sources followed by a chain of binary ops, each reading two
// previously produced values, exactly the shape a real expression
// builder produces (every operand refers to an earlier node, by
// construction). Keeping the recipe separate from the *ir.Graph lets a
// single rapid draw be replayed into two independent graph instances.
type graphPlan struct {
	consts []int64
	ops    []struct {
		kindIdx, aIdx, bIdx int
	}
	depth int
}

func drawGraphPlan(t *rapid.T) graphPlan {
	var plan graphPlan

	constCount := rapid.IntRange(2, 6).Draw(t, "constCount")
	for i := 0; i < constCount; i++ {
		plan.consts = append(plan.consts, rapid.Int64Range(-100, 100).Draw(t, fmt.Sprintf("const_%d", i)))
	}

	opCount := rapid.IntRange(1, 10).Draw(t, "opCount")
	produced := constCount
	for i := 0; i < opCount; i++ {
		aIdx := rapid.IntRange(0, produced-1).Draw(t, fmt.Sprintf("a_%d", i))
		bIdx := rapid.IntRange(0, produced-1).Draw(t, fmt.Sprintf("b_%d", i))
		kindIdx := rapid.IntRange(0, len(binaryKinds)-1).Draw(t, fmt.Sprintf("kind_%d", i))
		plan.ops = append(plan.ops, struct{ kindIdx, aIdx, bIdx int }{kindIdx, aIdx, bIdx})
		produced++
	}

	plan.depth = rapid.IntRange(2, 16).Draw(t, "depth")
	return plan
}

func (plan graphPlan) build() *ir.Graph {
	g := ir.NewGraph()
	values := make([]ir.ValueID, 0, len(plan.consts)+len(plan.ops))
	for _, c := range plan.consts {
		values = append(values, g.AddNodeWithOutput(ir.NewConst(c)))
	}
	for _, op := range plan.ops {
		kind := binaryKinds[op.kindIdx]
		v := g.AddNodeWithOutput(kind(values[op.aIdx], values[op.bIdx]))
		values = append(values, v)
	}
	g.EnablePipeline(1, plan.depth, 1)
	return g
}

func buildRandomGraph(t *rapid.T) *ir.Graph {
	return drawGraphPlan(t).build()
}

func buildRandomBudgets(t *rapid.T) ResourceBudgets {
	return ResourceBudgets{
		ir.ResourceAdder:      rapid.IntRange(1, 4).Draw(t, "adderBudget"),
		ir.ResourceMultiplier: rapid.IntRange(1, 4).Draw(t, "multiplierBudget"),
		ir.ResourceDivider:    rapid.IntRange(1, 2).Draw(t, "dividerBudget"),
		ir.ResourceMemory:     rapid.IntRange(1, 4).Draw(t, "memoryBudget"),
	}
}

// cycleMap flattens a scheduled graph's stages into node->cycle,
// covering both original nodes and any inserted pipeline registers.
func cycleMap(g *ir.Graph) map[ir.NodeID]int {
	m := make(map[ir.NodeID]int)
	for _, stage := range g.PipelineStages {
		for _, node := range stage.Operations {
			m[node] = stage.Cycle
		}
	}
	return m
}

// TestPropertyScheduleRespectsDataDependencies checks the core §8
// invariant: every consumer starts no earlier than its producer
// finishes, for every original edge in the graph (register chains
// exist precisely to preserve this across stage boundaries).
func TestPropertyScheduleRespectsDataDependencies(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := buildRandomGraph(t)
		budgets := buildRandomBudgets(t)

		if err := SchedulePipeline(g, budgets); err != nil {
			return // resource-infeasible draws are valid, just uninteresting here
		}

		cycles := cycleMap(g)
		deps, err := ir.Dependencies(g)
		if err != nil {
			t.Fatalf("Dependencies: %v", err)
		}
		nodeByID := make(map[ir.NodeID]ir.Node, len(g.Nodes))
		for _, node := range g.Nodes {
			nodeByID[node.ID] = node
		}

		for _, node := range g.Nodes {
			consumerCycle, ok := cycles[node.ID]
			if !ok {
				t.Fatalf("node %d missing from final schedule", node.ID)
			}
			for _, producerID := range deps[node.ID] {
				producerCycle, ok := cycles[producerID]
				if !ok {
					t.Fatalf("producer node %d missing from final schedule", producerID)
				}
				finish := producerCycle + nodeByID[producerID].Op.Latency()
				if consumerCycle < finish {
					t.Fatalf("node %d scheduled at cycle %d, before producer %d finishes at %d",
						node.ID, consumerCycle, producerID, finish)
				}
			}
		}
	})
}

// TestPropertyScheduleHonorsResourceBudgets checks that no cycle ever
// hosts more operations of a bounded resource class than its budget
// allows.
func TestPropertyScheduleHonorsResourceBudgets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := buildRandomGraph(t)
		budgets := buildRandomBudgets(t)

		if err := SchedulePipeline(g, budgets); err != nil {
			return
		}

		usage := make(map[int]map[ir.ResourceClass]int)
		for _, stage := range g.PipelineStages {
			for _, nodeID := range stage.Operations {
				node, ok := g.Node(nodeID)
				if !ok {
					continue
				}
				class := node.Op.ResourceClass()
				if class == ir.ResourceLogic || class == ir.ResourceNone {
					continue
				}
				if usage[stage.Cycle] == nil {
					usage[stage.Cycle] = make(map[ir.ResourceClass]int)
				}
				usage[stage.Cycle][class]++
			}
		}

		for cycle, byClass := range usage {
			for class, count := range byClass {
				if count > budgets.capacity(class) {
					t.Fatalf("cycle %d: %d %s operations exceed budget %d", cycle, count, class, budgets.capacity(class))
				}
			}
		}
	})
}

// TestPropertyScheduleIsDeterministic checks that scheduling the same
// graph twice, from the same unscheduled starting point, produces an
// identical stage assignment — required for the emitter's output to be
// reproducible.
func TestPropertyScheduleIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plan := drawGraphPlan(t)
		budgets := buildRandomBudgets(t)

		g1 := plan.build()
		g2 := plan.build()

		err1 := SchedulePipeline(g1, budgets)
		err2 := SchedulePipeline(g2, budgets)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("nondeterministic feasibility: err1=%v err2=%v", err1, err2)
		}
		if err1 != nil {
			return
		}

		c1, c2 := cycleMap(g1), cycleMap(g2)
		if len(c1) != len(c2) {
			t.Fatalf("schedule size mismatch: %d vs %d", len(c1), len(c2))
		}
		for node, cycle := range c1 {
			if c2[node] != cycle {
				t.Fatalf("node %d: cycle %d vs %d across identical runs", node, cycle, c2[node])
			}
		}
	})
}
