// Package rtl turns a scheduled graph into synthesizable Verilog text:
// a pattern-directed code generator producing an HLS-style clocked
// module with standard start/done/idle/ready handshake ports,
// per-stage valid tracking, and stage-register assignments.
package rtl

import "github.com/jasonKoogler/hlsc/internal/ir"

// Pattern classifies the shape of a computation for emission purposes.
// It never affects correctness, only how readable the emitted RTL is
// (§4.8): a recognized shape gets a bespoke stage-by-stage pipeline, an
// unrecognized one gets the generic fallback.
type Pattern int

const (
	PatternMAC Pattern = iota
	PatternSimpleArithmetic
	PatternComplex
)

func (p Pattern) String() string {
	switch p {
	case PatternMAC:
		return "MAC"
	case PatternSimpleArithmetic:
		return "arithmetic"
	case PatternComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Analysis is the result of scanning a graph's operations: the
// classified pattern, the logical stage count that pattern implies,
// and the ordered port lists derived from Load/Store names.
type Analysis struct {
	Pattern       Pattern
	LogicalStages int
	Inputs        []string
	Outputs       []string
}

// Analyze scans graph operations, counts Mul and Add nodes, and
// collects ordered input/output port names, classifying the result
// per §4.8: MAC needs at least two multiplies and two adds;
// SimpleArithmetic allows at most one multiply and two adds; anything
// else is Complex.
func Analyze(g *ir.Graph) Analysis {
	var mulCount, addCount int
	var inputs, outputs []string
	seenInput := make(map[string]bool)
	seenOutput := make(map[string]bool)

	for _, node := range g.Nodes {
		switch node.Op.Kind {
		case ir.OpMul:
			mulCount++
		case ir.OpAdd:
			addCount++
		case ir.OpLoad:
			if !seenInput[node.Op.Name] {
				seenInput[node.Op.Name] = true
				inputs = append(inputs, node.Op.Name)
			}
		case ir.OpStore:
			if !seenOutput[node.Op.Name] {
				seenOutput[node.Op.Name] = true
				outputs = append(outputs, node.Op.Name)
			}
		}
	}

	var pattern Pattern
	var stages int
	switch {
	case mulCount >= 2 && addCount >= 2:
		pattern = PatternMAC
		stages = 5
	case mulCount <= 1 && addCount <= 2:
		pattern = PatternSimpleArithmetic
		stages = 3
	default:
		pattern = PatternComplex
		stages = 4
	}

	return Analysis{
		Pattern:       pattern,
		LogicalStages: stages,
		Inputs:        inputs,
		Outputs:       outputs,
	}
}
