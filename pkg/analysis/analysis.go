// Package analysis provides the two concrete egraph.Analysis
// implementations named in the engine's data model: a trivial literal
// counter used mostly in tests, and a pluggable least-cost-so-far
// estimate consumed by extraction and the cost-directed scheduler.
package analysis

import (
	"github.com/exprsat/eqsat/pkg/egraph"
)

// LiteralCount counts the literal nodes held in a class: each node
// contributes 1 if it is a literal, 0 if it is a symbol application,
// summed across a merged class's member nodes.
type LiteralCount struct {
	Count int
}

// Make implements egraph.Analysis.
func (LiteralCount) Make(g *egraph.EGraph[LiteralCount], nodeID egraph.NodeId) LiteralCount {
	if _, ok := g.NodeByID(nodeID).(egraph.LiteralNode); ok {
		return LiteralCount{Count: 1}
	}
	return LiteralCount{Count: 0}
}

// Merge implements egraph.Analysis.
func (LiteralCount) Merge(a, b LiteralCount) LiteralCount {
	return LiteralCount{Count: a.Count + b.Count}
}
