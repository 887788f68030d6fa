package hlsexpr

import "testing"

func TestBuilderMACEvaluatesCorrectly(t *testing.T) {
	f := New("mac")
	a := f.Input("a")
	b := f.Input("b")
	c := f.Input("c")
	d := f.Input("d")
	e := f.Input("e")
	result := a.Mul(b).Add(c.Mul(d)).Add(e)
	f.Output("result", result)

	ev := NewEvaluator()
	ev.SetInput(f.Graph, "a", 2)
	ev.SetInput(f.Graph, "b", 3)
	ev.SetInput(f.Graph, "c", 4)
	ev.SetInput(f.Graph, "d", 5)
	ev.SetInput(f.Graph, "e", 7)

	outputs, err := ev.Run(f.Graph)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := outputs["result"], int64(2*3+4*5+7); got != want {
		t.Errorf("result = %d, want %d", got, want)
	}
}

func TestBuilderChainEvaluatesCorrectly(t *testing.T) {
	f := New("chain")
	a := f.Input("a")
	b := f.Input("b")
	c := f.Input("c")
	d := f.Input("d")
	result := a.Add(b).Mul(c.Add(d))
	f.Output("result", result)

	ev := NewEvaluator()
	ev.SetInput(f.Graph, "a", 1)
	ev.SetInput(f.Graph, "b", 2)
	ev.SetInput(f.Graph, "c", 3)
	ev.SetInput(f.Graph, "d", 4)

	outputs, err := ev.Run(f.Graph)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := outputs["result"], int64((1+2)*(3+4)); got != want {
		t.Errorf("result = %d, want %d", got, want)
	}
}

func TestEvaluatorDivisionByZero(t *testing.T) {
	f := New("div")
	a := f.Input("a")
	b := f.Input("b")
	f.Output("out", a.Div(b))

	ev := NewEvaluator()
	ev.SetInput(f.Graph, "a", 10)
	ev.SetInput(f.Graph, "b", 0)

	if _, err := ev.Run(f.Graph); err == nil {
		t.Fatalf("Run() expected division-by-zero error, got nil")
	}
}

func TestEvaluatorMux(t *testing.T) {
	tests := []struct {
		name   string
		sel    int64
		ifTrue int64
		ifFalse int64
		want   int64
	}{
		{"selects true branch", 1, 100, 200, 100},
		{"selects false branch", 0, 100, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New("mux")
			sel := f.Input("sel")
			tv := f.Input("t")
			fv := f.Input("f")
			f.Output("out", sel.Mux(tv, fv))

			ev := NewEvaluator()
			ev.SetInput(f.Graph, "sel", tt.sel)
			ev.SetInput(f.Graph, "t", tt.ifTrue)
			ev.SetInput(f.Graph, "f", tt.ifFalse)

			outputs, err := ev.Run(f.Graph)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := outputs["out"]; got != tt.want {
				t.Errorf("out = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuilderLogicalOps(t *testing.T) {
	f := New("logic")
	a := f.Input("a")
	b := f.Input("b")
	f.Output("conj", a.And(b))
	f.Output("disj", a.Or(b))
	f.Output("inv", a.Not())
	f.Output("eq", a.CmpEq(b))

	ev := NewEvaluator()
	ev.SetInput(f.Graph, "a", 1)
	ev.SetInput(f.Graph, "b", 0)

	outputs, err := ev.Run(f.Graph)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := outputs["conj"], int64(0); got != want {
		t.Errorf("conj = %d, want %d", got, want)
	}
	if got, want := outputs["disj"], int64(1); got != want {
		t.Errorf("disj = %d, want %d", got, want)
	}
	if got, want := outputs["inv"], int64(0); got != want {
		t.Errorf("inv = %d, want %d", got, want)
	}
	if got, want := outputs["eq"], int64(0); got != want {
		t.Errorf("eq = %d, want %d", got, want)
	}
}

func TestFunctionPipelineEnablesGraphConfig(t *testing.T) {
	f := New("p").Pipeline(1)
	if !f.Graph.PipelineConfig.Enable {
		t.Fatalf("Pipeline() did not enable pipelining")
	}
	if f.Graph.PipelineConfig.PipelineDepth != 8 {
		t.Errorf("PipelineDepth = %d, want default 8", f.Graph.PipelineConfig.PipelineDepth)
	}
}
