// Package ir implements the intermediate dataflow graph: a static
// single-assignment operation graph with explicit value identity, a
// fixed operation vocabulary, and per-operation latency.
package ir

import "fmt"

// ValueID is an opaque dense integer identifier denoting a wire
// produced by exactly one operation. Values are immutable; their
// identity never changes.
type ValueID int

// NodeID identifies a node's position in a graph's node list.
type NodeID int

// OpKind enumerates the fixed operation vocabulary. The vocabulary is
// closed: no caller may introduce a new kind.
type OpKind int

const (
	OpConst OpKind = iota
	OpLoad
	OpStore
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpNot
	OpCmpLt
	OpCmpEq
	OpMux
	OpPipelineRegister
	OpPipelineBarrier
	OpNop
)

func (k OpKind) String() string {
	switch k {
	case OpConst:
		return "Const"
	case OpLoad:
		return "Load"
	case OpStore:
		return "Store"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpNot:
		return "Not"
	case OpCmpLt:
		return "CmpLt"
	case OpCmpEq:
		return "CmpEq"
	case OpMux:
		return "Mux"
	case OpPipelineRegister:
		return "PipelineRegister"
	case OpPipelineBarrier:
		return "PipelineBarrier"
	case OpNop:
		return "Nop"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// ResourceClass identifies the scheduling resource an operation
// consumes. Only classes with a finite budget matter to the scheduler;
// Logic and None are unbounded.
type ResourceClass int

const (
	ResourceLogic ResourceClass = iota
	ResourceAdder
	ResourceMultiplier
	ResourceDivider
	ResourceMemory
	ResourceNone
)

func (r ResourceClass) String() string {
	switch r {
	case ResourceLogic:
		return "logic"
	case ResourceAdder:
		return "adder"
	case ResourceMultiplier:
		return "multiplier"
	case ResourceDivider:
		return "divider"
	case ResourceMemory:
		return "memory"
	case ResourceNone:
		return "none"
	default:
		return "unknown"
	}
}

// Operation is a closed, tagged union over the vocabulary in the
// operation table. Only the fields relevant to Kind are meaningful;
// operand slots that don't apply to a given Kind are left zero.
//
// A, B, C hold operand ValueIDs in the role order of the table
// (binary ops: A, B; Mux: A=sel, B=t, C=f; unary ops and
// PipelineRegister: A; Store: A=value). Name holds the Load/Store
// port name. ConstVal holds the Const literal.
type Operation struct {
	Kind     OpKind
	A, B, C  ValueID
	Name     string
	ConstVal int64
}

func NewConst(v int64) Operation          { return Operation{Kind: OpConst, ConstVal: v} }
func NewLoad(name string) Operation       { return Operation{Kind: OpLoad, Name: name} }
func NewStore(name string, v ValueID) Operation {
	return Operation{Kind: OpStore, Name: name, A: v}
}
func NewAdd(a, b ValueID) Operation  { return Operation{Kind: OpAdd, A: a, B: b} }
func NewSub(a, b ValueID) Operation  { return Operation{Kind: OpSub, A: a, B: b} }
func NewMul(a, b ValueID) Operation  { return Operation{Kind: OpMul, A: a, B: b} }
func NewDiv(a, b ValueID) Operation  { return Operation{Kind: OpDiv, A: a, B: b} }
func NewAnd(a, b ValueID) Operation  { return Operation{Kind: OpAnd, A: a, B: b} }
func NewOr(a, b ValueID) Operation   { return Operation{Kind: OpOr, A: a, B: b} }
func NewNot(a ValueID) Operation     { return Operation{Kind: OpNot, A: a} }
func NewCmpLt(a, b ValueID) Operation { return Operation{Kind: OpCmpLt, A: a, B: b} }
func NewCmpEq(a, b ValueID) Operation { return Operation{Kind: OpCmpEq, A: a, B: b} }
func NewMux(sel, t, f ValueID) Operation {
	return Operation{Kind: OpMux, A: sel, B: t, C: f}
}
func NewPipelineRegister(v ValueID) Operation { return Operation{Kind: OpPipelineRegister, A: v} }
func NewPipelineBarrier() Operation            { return Operation{Kind: OpPipelineBarrier} }
func NewNop() Operation                        { return Operation{Kind: OpNop} }

// ProducesValue reports whether this operation's node yields an
// output value. Only Store and PipelineBarrier/Nop are sinks.
func (op Operation) ProducesValue() bool {
	switch op.Kind {
	case OpStore, OpPipelineBarrier, OpNop:
		return false
	default:
		return true
	}
}

// Latency returns the operation's cycle count per the operation table.
func (op Operation) Latency() int {
	switch op.Kind {
	case OpConst:
		return 0
	case OpLoad:
		return 2
	case OpStore:
		return 1
	case OpAdd, OpSub:
		return 1
	case OpMul:
		return 3
	case OpDiv:
		return 18
	case OpAnd, OpOr, OpNot:
		return 1
	case OpCmpLt, OpCmpEq:
		return 1
	case OpMux:
		return 1
	case OpPipelineRegister:
		return 1
	case OpPipelineBarrier:
		return 0
	case OpNop:
		return 0
	default:
		return 0
	}
}

// ResourceClass returns the scheduling resource class an operation
// consumes, per the §4.5 resource budget table.
func (op Operation) ResourceClass() ResourceClass {
	switch op.Kind {
	case OpAdd, OpSub:
		return ResourceAdder
	case OpMul:
		return ResourceMultiplier
	case OpDiv:
		return ResourceDivider
	case OpLoad, OpStore:
		return ResourceMemory
	case OpPipelineBarrier, OpNop:
		return ResourceNone
	default:
		return ResourceLogic
	}
}

// Operands returns the operand ValueIDs this operation reads, in role
// order, for the arities named in §4.2: Mux has three, Store one,
// unary ops one, binary ops two, sources (Load, Const, Nop,
// PipelineBarrier) none.
func (op Operation) Operands() []ValueID {
	switch op.Kind {
	case OpConst, OpLoad, OpNop, OpPipelineBarrier:
		return nil
	case OpNot, OpPipelineRegister, OpStore:
		return []ValueID{op.A}
	case OpAdd, OpSub, OpMul, OpDiv, OpAnd, OpOr, OpCmpLt, OpCmpEq:
		return []ValueID{op.A, op.B}
	case OpMux:
		return []ValueID{op.A, op.B, op.C}
	default:
		return nil
	}
}

// Node is a tuple of (node identifier, operation, optional produced
// value). Every node except sinks (Store, PipelineBarrier, Nop)
// produces exactly one value.
type Node struct {
	ID     NodeID
	Op     Operation
	Output ValueID
	HasOut bool
}

// PipelineConfig is the four-field pipeline configuration.
type PipelineConfig struct {
	Enable             bool
	InitiationInterval int
	PipelineDepth      int
	UnrollFactor       int
}

// PipelineStage is a tuple (stage index, cycle, set of nodes scheduled
// at that cycle).
type PipelineStage struct {
	Stage      int
	Cycle      int
	Operations []NodeID
}

// Graph is the ordered sequence of nodes, the value→producer map, the
// pipeline configuration, and the (possibly empty) ordered stage list.
// Insertion order of Nodes is preserved and significant: it defines
// evaluation order for the software evaluator and the default
// traversal order for every other pass.
type Graph struct {
	Nodes          []Node
	ValueMap       map[ValueID]NodeID // value -> producing node
	PipelineConfig PipelineConfig
	PipelineStages []PipelineStage

	// RegisterChains records, for each original value that crosses a
	// stage boundary, the ordered chain of PipelineRegister node
	// identifiers carrying it forward one stage at a time. Chain[i] is
	// the register holding the value delayed to the dense stage index
	// producerStage+1+i. Populated by the scheduler (§4.6); empty
	// until scheduling runs. The emitter uses this instead of
	// rewiring consumers, per the discipline fixed in §9.
	RegisterChains map[ValueID][]NodeID

	nextValue ValueID
	nextNode  NodeID
}

// NewGraph returns an empty graph with no pipelining enabled.
func NewGraph() *Graph {
	return &Graph{
		ValueMap:       make(map[ValueID]NodeID),
		RegisterChains: make(map[ValueID][]NodeID),
		PipelineConfig: PipelineConfig{
			Enable:             false,
			InitiationInterval: 1,
			PipelineDepth:      1,
			UnrollFactor:       1,
		},
	}
}

// NewValue mints a fresh value identifier.
func (g *Graph) NewValue() ValueID {
	id := g.nextValue
	g.nextValue++
	return id
}

// AddNodeWithOutput appends a node for an operation that produces a
// value, mints that value, and records the producer. It panics (a
// debug-assertion-style failure, per §4.1) if op does not produce a
// value or if any operand references a value not yet present in the
// graph — malformed operand references are a caller bug.
func (g *Graph) AddNodeWithOutput(op Operation) ValueID {
	if !op.ProducesValue() {
		panic(fmt.Sprintf("ir: AddNodeWithOutput called with sink operation %s", op.Kind))
	}
	g.assertOperandsKnown(op)

	out := g.NewValue()
	node := Node{ID: g.nextNode, Op: op, Output: out, HasOut: true}
	g.nextNode++
	g.ValueMap[out] = node.ID
	g.Nodes = append(g.Nodes, node)
	return out
}

// AddNode appends a node for a sink operation (no produced value) and
// returns its node identifier.
func (g *Graph) AddNode(op Operation) NodeID {
	if op.ProducesValue() {
		panic(fmt.Sprintf("ir: AddNode called with value-producing operation %s", op.Kind))
	}
	g.assertOperandsKnown(op)

	node := Node{ID: g.nextNode, Op: op}
	id := node.ID
	g.nextNode++
	g.Nodes = append(g.Nodes, node)
	return id
}

func (g *Graph) assertOperandsKnown(op Operation) {
	for _, operand := range op.Operands() {
		if _, ok := g.ValueMap[operand]; !ok {
			panic(fmt.Sprintf("ir: operand %d of operation %s is not produced by any prior node", operand, op.Kind))
		}
	}
}

// EnablePipeline updates the graph's pipeline configuration.
func (g *Graph) EnablePipeline(ii, depth, unroll int) {
	g.PipelineConfig = PipelineConfig{
		Enable:             true,
		InitiationInterval: ii,
		PipelineDepth:      depth,
		UnrollFactor:       unroll,
	}
}

// InsertPipelineRegister appends a PipelineRegister(v) node and returns
// its fresh output value.
func (g *Graph) InsertPipelineRegister(v ValueID) ValueID {
	return g.AddNodeWithOutput(NewPipelineRegister(v))
}

// OperationLatency returns op's cycle count per the operation table.
// Kept as a graph method (rather than a free function) to mirror the
// teacher's and the original's placement of latency lookup alongside
// graph construction.
func (g *Graph) OperationLatency(op Operation) int {
	return op.Latency()
}

// Node looks up a node by its identifier. It is O(1) because node IDs
// are assigned densely from zero in insertion order.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if int(id) < 0 || int(id) >= len(g.Nodes) {
		return Node{}, false
	}
	n := g.Nodes[id]
	if n.ID != id {
		// Defensive: should never happen given dense assignment.
		for _, candidate := range g.Nodes {
			if candidate.ID == id {
				return candidate, true
			}
		}
		return Node{}, false
	}
	return n, true
}
