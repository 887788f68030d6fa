package ir

import "testing"

func TestNewGraphDefaults(t *testing.T) {
	g := NewGraph()

	if g.PipelineConfig.Enable {
		t.Errorf("new graph should have pipelining disabled")
	}
	if len(g.PipelineStages) != 0 {
		t.Errorf("new graph should have no pipeline stages, got %d", len(g.PipelineStages))
	}
	if g.ValueMap == nil {
		t.Errorf("ValueMap should be initialized")
	}
}

func TestAddNodeWithOutputMintsValue(t *testing.T) {
	g := NewGraph()

	v1 := g.AddNodeWithOutput(NewConst(42))
	v2 := g.AddNodeWithOutput(NewConst(7))

	if v1 == v2 {
		t.Errorf("distinct nodes should receive distinct values, got %d and %d", v1, v2)
	}

	producer, ok := g.ValueMap[v1]
	if !ok {
		t.Fatalf("value %d should have a producer recorded", v1)
	}
	node, ok := g.Node(producer)
	if !ok {
		t.Fatalf("producer node %d should exist", producer)
	}
	if node.Op.Kind != OpConst || node.Op.ConstVal != 42 {
		t.Errorf("producer of v1 should be Const(42), got %+v", node.Op)
	}
}

func TestAddNodeSinkHasNoOutput(t *testing.T) {
	g := NewGraph()
	v := g.AddNodeWithOutput(NewConst(1))
	id := g.AddNode(NewStore("out", v))

	node, ok := g.Node(id)
	if !ok {
		t.Fatalf("sink node should exist")
	}
	if node.HasOut {
		t.Errorf("Store node should not produce a value")
	}
}

func TestOperationLatencyTable(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want int
	}{
		{"Const", NewConst(0), 0},
		{"Load", NewLoad("x"), 2},
		{"Store", NewStore("x", 0), 1},
		{"Add", NewAdd(0, 0), 1},
		{"Sub", NewSub(0, 0), 1},
		{"Mul", NewMul(0, 0), 3},
		{"Div", NewDiv(0, 0), 18},
		{"And", NewAnd(0, 0), 1},
		{"Or", NewOr(0, 0), 1},
		{"Not", NewNot(0), 1},
		{"CmpLt", NewCmpLt(0, 0), 1},
		{"CmpEq", NewCmpEq(0, 0), 1},
		{"Mux", NewMux(0, 0, 0), 1},
		{"PipelineRegister", NewPipelineRegister(0), 1},
		{"PipelineBarrier", NewPipelineBarrier(), 0},
		{"Nop", NewNop(), 0},
	}

	g := NewGraph()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.OperationLatency(tt.op); got != tt.want {
				t.Errorf("latency of %s = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestOperationResourceClass(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want ResourceClass
	}{
		{"Add", NewAdd(0, 0), ResourceAdder},
		{"Sub", NewSub(0, 0), ResourceAdder},
		{"Mul", NewMul(0, 0), ResourceMultiplier},
		{"Div", NewDiv(0, 0), ResourceDivider},
		{"Load", NewLoad("x"), ResourceMemory},
		{"Store", NewStore("x", 0), ResourceMemory},
		{"And", NewAnd(0, 0), ResourceLogic},
		{"Mux", NewMux(0, 0, 0), ResourceLogic},
		{"Nop", NewNop(), ResourceNone},
		{"PipelineBarrier", NewPipelineBarrier(), ResourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.ResourceClass(); got != tt.want {
				t.Errorf("resource class of %s = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestOperandsArity(t *testing.T) {
	g := NewGraph()
	a := g.AddNodeWithOutput(NewConst(1))
	b := g.AddNodeWithOutput(NewConst(2))
	c := g.AddNodeWithOutput(NewConst(3))

	tests := []struct {
		name string
		op   Operation
		want int
	}{
		{"Const", NewConst(1), 0},
		{"Load", NewLoad("x"), 0},
		{"Nop", NewNop(), 0},
		{"PipelineBarrier", NewPipelineBarrier(), 0},
		{"Not", NewNot(a), 1},
		{"Store", NewStore("out", a), 1},
		{"PipelineRegister", NewPipelineRegister(a), 1},
		{"Add", NewAdd(a, b), 2},
		{"CmpLt", NewCmpLt(a, b), 2},
		{"Mux", NewMux(a, b, c), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.op.Operands()); got != tt.want {
				t.Errorf("%s operand count = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestAddNodeWithOutputPanicsOnUnknownOperand(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on unknown operand reference")
		}
	}()

	g := NewGraph()
	g.AddNodeWithOutput(NewAdd(999, 998))
}

func TestInsertPipelineRegisterChains(t *testing.T) {
	g := NewGraph()
	v := g.AddNodeWithOutput(NewConst(1))

	r1 := g.InsertPipelineRegister(v)
	r2 := g.InsertPipelineRegister(r1)

	node1, _ := g.Node(g.ValueMap[r1])
	node2, _ := g.Node(g.ValueMap[r2])

	if node1.Op.Kind != OpPipelineRegister || node1.Op.A != v {
		t.Errorf("first register should wrap v, got %+v", node1.Op)
	}
	if node2.Op.Kind != OpPipelineRegister || node2.Op.A != r1 {
		t.Errorf("second register should wrap r1, got %+v", node2.Op)
	}
}

func TestEnablePipelineUpdatesConfig(t *testing.T) {
	g := NewGraph()
	g.EnablePipeline(1, 5, 2)

	if !g.PipelineConfig.Enable {
		t.Fatalf("pipeline should be enabled")
	}
	if g.PipelineConfig.InitiationInterval != 1 || g.PipelineConfig.PipelineDepth != 5 || g.PipelineConfig.UnrollFactor != 2 {
		t.Errorf("unexpected pipeline config: %+v", g.PipelineConfig)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := NewGraph()
	a := g.AddNodeWithOutput(NewConst(1))
	b := g.AddNodeWithOutput(NewConst(2))
	_ = g.AddNodeWithOutput(NewAdd(a, b))

	for i, node := range g.Nodes {
		if int(node.ID) != i {
			t.Errorf("node at index %d has ID %d, insertion order not preserved", i, node.ID)
		}
	}
}
