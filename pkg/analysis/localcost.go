package analysis

import (
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
)

// Cost supplies the per-symbol and per-literal cost figures a CostAnalysis
// combines into a class's running estimate. It stands in for the Rust
// source's operator-overloaded LocalCost trait (Add/Sub/Ord on the cost
// type itself): Go has no operator overloading, so addition and the
// merge-time minimum are methods on the model rather than the value.
type Cost[C any] interface {
	SymbolCost(id lang.SymbolId) C
	LiteralCost(lit lang.Literal) C
	Add(a, b C) C
	Sub(a, b C) C
	Min(a, b C) C
	Less(a, b C) bool
	Zero() C
}

// ExpressionCost computes a term's cost bottom-up under model: a
// literal's own cost, a symbol's cost plus the sum of its children's
// costs, or the model's zero value for a pattern Variable (spec §4.4,
// mirroring the Rust trait's provided `expression_cost` default method).
func ExpressionCost[C any](model Cost[C], t lang.Term) C {
	switch v := t.(type) {
	case lang.LiteralTerm:
		return model.LiteralCost(v.Value)
	case lang.VariableTerm:
		return model.Zero()
	case lang.SymbolTerm:
		sum := model.SymbolCost(v.ID)
		for _, child := range v.Children {
			sum = model.Add(sum, ExpressionCost(model, child))
		}
		return sum
	default:
		panic("analysis: unknown lang.Term implementation")
	}
}

// LocalCost is the per-class analysis value: the cheapest cost found so
// far for any node built in this class, recomputed bottom-up from a
// node's own symbol/literal cost plus its children's current class
// costs (spec §4.4 — cost analyses read *current*, not frozen, child
// values, so a rebuild that moves a class's membership can lower its
// children's costs and must be allowed to lower this class's cost too).
type LocalCost[C any] struct {
	Value C
}

// CostAnalysis adapts a Cost[C] model into an egraph.Analysis[LocalCost[C]].
type CostAnalysis[C any] struct {
	Model Cost[C]
}

// Make implements egraph.Analysis.
func (a CostAnalysis[C]) Make(g *egraph.EGraph[LocalCost[C]], nodeID egraph.NodeId) LocalCost[C] {
	switch n := g.NodeByID(nodeID).(type) {
	case egraph.LiteralNode:
		return LocalCost[C]{Value: a.Model.LiteralCost(n.Value)}
	case egraph.SymbolNode:
		sum := a.Model.SymbolCost(n.ID)
		for _, child := range n.Children {
			childCost := g.ClassByID(child).Value
			sum = a.Model.Add(sum, childCost.Value)
		}
		return LocalCost[C]{Value: sum}
	default:
		panic("analysis: unknown egraph.Node implementation")
	}
}

// Merge implements egraph.Analysis: a merged class keeps the cheaper of
// its two candidates' costs.
func (a CostAnalysis[C]) Merge(x, y LocalCost[C]) LocalCost[C] {
	return LocalCost[C]{Value: a.Model.Min(x.Value, y.Value)}
}

// SimpleMathCost is the int-valued Cost model used by the worked example
// language (+, -, *, /, <<, sin), mirroring the reference costs used
// throughout the engine's test scenarios.
type SimpleMathCost struct {
	Lang *lang.Language
}

func (c SimpleMathCost) SymbolCost(id lang.SymbolId) int {
	switch c.Lang.GetSymbol(id) {
	case "+", "-":
		return 1
	case "*":
		return 4
	case "/":
		return 8
	case "<<":
		return 2
	case "sin":
		return 2
	default:
		return 1
	}
}

func (SimpleMathCost) LiteralCost(lang.Literal) int { return 1 }
func (SimpleMathCost) Add(a, b int) int             { return a + b }
func (SimpleMathCost) Sub(a, b int) int             { return a - b }
func (SimpleMathCost) Zero() int                    { return 0 }

func (SimpleMathCost) Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (SimpleMathCost) Less(a, b int) bool { return a < b }
