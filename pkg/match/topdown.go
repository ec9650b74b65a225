package match

import (
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
)

// TopDownMatcher matches a pattern against every class by recursive
// descent: at a Symbol node it requires the same symbol and arity, then
// recurses into each child class independently and merges the
// cartesian product of the children's match sets, discarding
// combinations whose variable bindings conflict.
type TopDownMatcher struct{}

// TryMatch implements Matcher.
func (TopDownMatcher) TryMatch(g egraph.Reader, pattern lang.Term) []Match {
	var all []Match
	for _, cid := range g.ClassIDs() {
		all = append(all, tryMatchAtClass(g, cid, pattern)...)
	}
	return all
}

func tryMatchAtClass(g egraph.Reader, classID egraph.ClassId, pattern lang.Term) []Match {
	switch p := pattern.(type) {
	case lang.LiteralTerm:
		if classContainsLiteral(g, classID, p.Value) {
			return []Match{emptyMatch(classID)}
		}
		return nil

	case lang.VariableTerm:
		return []Match{{Root: classID, Substitution: map[lang.VariableId]egraph.ClassId{p.ID: classID}}}

	case lang.SymbolTerm:
		var out []Match
		for _, nid := range g.NodesIn(classID) {
			out = append(out, tryMatchSymbolAtNode(g, nid, p)...)
		}
		return out

	default:
		panic("match: unknown lang.Term implementation")
	}
}

func tryMatchSymbolAtNode(g egraph.Reader, nodeID egraph.NodeId, pattern lang.SymbolTerm) []Match {
	sn, ok := g.NodeByID(nodeID).(egraph.SymbolNode)
	if !ok || sn.ID != pattern.ID || len(sn.Children) != len(pattern.Children) {
		return nil
	}

	perChild := make([][]Match, len(sn.Children))
	for i, childClass := range sn.Children {
		perChild[i] = tryMatchAtClass(g, childClass, pattern.Children[i])
	}

	root := g.ContainingClass(nodeID)
	var out []Match
	for _, combo := range cartesianIndices(lengths(perChild)) {
		pieces := make([]Match, len(combo))
		for i, idx := range combo {
			pieces[i] = perChild[i][idx]
		}
		if merged, ok := mergeMultiple(root, pieces); ok {
			out = append(out, merged)
		}
	}
	return out
}
