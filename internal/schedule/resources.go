package schedule

import "github.com/jasonKoogler/hlsc/internal/ir"

// ResourceBudgets holds the per-cycle capacity for each bounded
// resource class (§4.5). ResourceLogic and ResourceNone are treated as
// unbounded regardless of what is stored here.
type ResourceBudgets map[ir.ResourceClass]int

// DefaultResourceBudgets returns the target FPGA's approximate
// DSP/BRAM-derived budgets named in §4.5. These are configuration, not
// hard-coded scheduling policy: callers may override any entry.
func DefaultResourceBudgets() ResourceBudgets {
	return ResourceBudgets{
		ir.ResourceAdder:      100,
		ir.ResourceMultiplier: 12,
		ir.ResourceDivider:    4,
		ir.ResourceMemory:     8,
	}
}

// capacity returns the per-cycle budget for class, treating Logic and
// None as unbounded.
func (b ResourceBudgets) capacity(class ir.ResourceClass) int {
	if class == ir.ResourceLogic || class == ir.ResourceNone {
		return int(^uint(0) >> 1) // unbounded
	}
	if v, ok := b[class]; ok {
		return v
	}
	return 1
}
