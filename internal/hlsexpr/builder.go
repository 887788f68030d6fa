// Package hlsexpr is a minimal expression builder and software
// evaluator standing in for the external "expression builder" and
// "software evaluator" collaborators named in spec.md. It exists only
// to drive the CLI end-to-end; its only surface syntax is the minimal
// s-expression form read by Parse (parse.go).
package hlsexpr

import "github.com/jasonKoogler/hlsc/internal/ir"

// Function builds a single computation as an IR graph, mirroring the
// HLSFunction/HLSValue chaining style the pack examples use for fluent
// graph construction.
type Function struct {
	Graph *ir.Graph
	Name  string
}

// New starts a new named function with pipelining disabled.
func New(name string) *Function {
	return &Function{Graph: ir.NewGraph(), Name: name}
}

// Pipeline enables pipelining with a default depth and unroll factor,
// leaving only the initiation interval to the caller.
func (f *Function) Pipeline(ii int) *Function {
	f.Graph.EnablePipeline(ii, 8, 1)
	return f
}

// PipelineAdvanced enables pipelining with full control over depth and
// unroll factor.
func (f *Function) PipelineAdvanced(ii, depth, unroll int) *Function {
	f.Graph.EnablePipeline(ii, depth, unroll)
	return f
}

// Input declares an input port and returns the value it produces.
func (f *Function) Input(name string) Value {
	v := f.Graph.AddNodeWithOutput(ir.NewLoad(name))
	return Value{id: v, fn: f}
}

// Const returns a constant value.
func (f *Function) Const(value int64) Value {
	v := f.Graph.AddNodeWithOutput(ir.NewConst(value))
	return Value{id: v, fn: f}
}

// Output declares an output port bound to value.
func (f *Function) Output(name string, value Value) {
	f.Graph.AddNode(ir.NewStore(name, value.id))
}

// Value is a handle to a value produced somewhere in the function's
// graph. Its methods build new nodes and return the value they
// produce, so expressions chain the way arithmetic reads.
type Value struct {
	id ir.ValueID
	fn *Function
}

// ID returns the underlying graph value identifier.
func (v Value) ID() ir.ValueID { return v.id }

func (v Value) Add(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewAdd(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Sub(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewSub(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Mul(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewMul(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Div(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewDiv(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) And(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewAnd(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Or(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewOr(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Not() Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewNot(v.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) CmpLt(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewCmpLt(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) CmpEq(other Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewCmpEq(v.id, other.id))
	return Value{id: id, fn: v.fn}
}

func (v Value) Mux(whenTrue, whenFalse Value) Value {
	id := v.fn.Graph.AddNodeWithOutput(ir.NewMux(v.id, whenTrue.id, whenFalse.id))
	return Value{id: id, fn: v.fn}
}

// PipelineReg explicitly inserts a pipeline register after v.
func (v Value) PipelineReg() Value {
	id := v.fn.Graph.InsertPipelineRegister(v.id)
	return Value{id: id, fn: v.fn}
}
