// Package extract picks the cheapest ground term represented by an
// e-class, under a pluggable per-symbol/per-literal cost model, via the
// same fixed-point relaxation a cost Analysis uses internally — except
// here it runs once, after the fact, over the whole e-graph rather than
// incrementally on every insert/merge.
package extract

import (
	"github.com/exprsat/eqsat/pkg/analysis"
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
)

// Result is the outcome of an Extract call: the cheapest ground term
// found for the requested class, and its cost under the model.
type Result[C any] struct {
	Winner lang.Term
	Cost   C
}

func equal[C any](model analysis.Cost[C], a, b C) bool {
	return !model.Less(a, b) && !model.Less(b, a)
}

// nodeCost is the cost of node's own symbol/literal plus the sum of its
// children's *current* class costs; ok is false when some child's class
// has no cost yet (its cheapest node hasn't been found).
func nodeCost[C any](model analysis.Cost[C], n egraph.Node, classCosts map[egraph.ClassId]C) (C, bool) {
	switch v := n.(type) {
	case egraph.LiteralNode:
		return model.LiteralCost(v.Value), true
	case egraph.SymbolNode:
		sum := model.SymbolCost(v.ID)
		for _, child := range v.Children {
			c, ok := classCosts[child]
			if !ok {
				var zero C
				return zero, false
			}
			sum = model.Add(sum, c)
		}
		return sum, true
	default:
		panic("extract: unknown egraph.Node implementation")
	}
}

// calculateCosts repeatedly sweeps every class in g, recomputing any
// node whose children now all have a cost, until a full sweep makes no
// change. It returns, per class, the cheapest node found and that
// node's cost; a class absent from either map never became costable
// (e.g. it and everything it depends on contains no literal base case).
func calculateCosts[C any](g egraph.Reader, model analysis.Cost[C]) (map[egraph.ClassId]egraph.NodeId, map[egraph.ClassId]C) {
	classCosts := map[egraph.ClassId]C{}
	nodeCosts := map[egraph.NodeId]C{}
	cheapestNodes := map[egraph.ClassId]egraph.NodeId{}

	for workRemaining := true; workRemaining; {
		workRemaining = false

		for _, classID := range g.ClassIDs() {
			for _, nodeID := range g.NodesIn(classID) {
				cost, ok := nodeCost(model, g.NodeByID(nodeID), classCosts)
				if !ok {
					continue
				}
				if old, existed := nodeCosts[nodeID]; existed && equal(model, old, cost) {
					continue
				}
				nodeCosts[nodeID] = cost
				workRemaining = true
			}

			var (
				bestNode egraph.NodeId
				bestCost C
				haveBest bool
			)
			for _, nodeID := range g.NodesIn(classID) {
				cost, ok := nodeCosts[nodeID]
				if !ok {
					continue
				}
				if !haveBest || model.Less(cost, bestCost) {
					bestNode, bestCost, haveBest = nodeID, cost, true
				}
			}
			if haveBest {
				classCosts[classID] = bestCost
				cheapestNodes[classID] = bestNode
			}
		}
	}

	return cheapestNodes, classCosts
}

func extractExpression(g egraph.Reader, cheapestNodes map[egraph.ClassId]egraph.NodeId, classID egraph.ClassId) (lang.Term, bool) {
	nodeID, ok := cheapestNodes[classID]
	if !ok {
		return nil, false
	}
	switch n := g.NodeByID(nodeID).(type) {
	case egraph.LiteralNode:
		return lang.LiteralTerm{Value: n.Value}, true
	case egraph.SymbolNode:
		children := make([]lang.Term, len(n.Children))
		for i, childClass := range n.Children {
			child, ok := extractExpression(g, cheapestNodes, childClass)
			if !ok {
				return nil, false
			}
			children[i] = child
		}
		return lang.SymbolTerm{ID: n.ID, Children: children}, true
	default:
		panic("extract: unknown egraph.Node implementation")
	}
}

// Extract finds the cheapest ground term represented by classID's
// e-class under model. ok is false when that class's cost (or some
// class it transitively depends on) could never be determined.
func Extract[C any](g egraph.Reader, model analysis.Cost[C], classID egraph.ClassId) (Result[C], bool) {
	classID = g.Canonical(classID)
	cheapestNodes, classCosts := calculateCosts(g, model)

	cost, ok := classCosts[classID]
	if !ok {
		return Result[C]{}, false
	}
	winner, ok := extractExpression(g, cheapestNodes, classID)
	if !ok {
		return Result[C]{}, false
	}
	return Result[C]{Winner: winner, Cost: cost}, true
}
