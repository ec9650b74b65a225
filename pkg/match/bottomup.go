package match

import (
	"sort"

	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
)

// BottomUpMatcher matches a pattern by enumerating every possible
// class assignment for the pattern's variables (the cartesian product
// of "every variable x every class"), then checking, for each
// assignment, whether the fully-ground instantiation of the pattern
// exists somewhere in the e-graph's hash-cons structure.
type BottomUpMatcher struct{}

// TryMatch implements Matcher.
func (BottomUpMatcher) TryMatch(g egraph.Reader, pattern lang.Term) []Match {
	vars := sortedVariables(pattern.Variables())
	classIDs := g.ClassIDs()

	if len(vars) == 0 {
		root, ok := tryMatchGround(g, pattern, nil)
		if !ok {
			return nil
		}
		return []Match{emptyMatch(root)}
	}

	var out []Match
	for _, combo := range cartesianIndices(repeat(len(classIDs), len(vars))) {
		assign := make(map[lang.VariableId]egraph.ClassId, len(vars))
		for i, v := range vars {
			assign[v] = classIDs[combo[i]]
		}
		root, ok := tryMatchGround(g, pattern, assign)
		if !ok {
			continue
		}
		out = append(out, Match{Root: root, Substitution: assign})
	}
	return out
}

func tryMatchGround(g egraph.Reader, pattern lang.Term, assign map[lang.VariableId]egraph.ClassId) (egraph.ClassId, bool) {
	switch p := pattern.(type) {
	case lang.LiteralTerm:
		return findLiteral(g, p.Value)

	case lang.VariableTerm:
		c, ok := assign[p.ID]
		return c, ok

	case lang.SymbolTerm:
		children := make([]egraph.ClassId, len(p.Children))
		for i, c := range p.Children {
			cid, ok := tryMatchGround(g, c, assign)
			if !ok {
				return 0, false
			}
			children[i] = cid
		}
		return findSymbol(g, p.ID, children)

	default:
		panic("match: unknown lang.Term implementation")
	}
}

func sortedVariables(vars map[lang.VariableId]struct{}) []lang.VariableId {
	out := make([]lang.VariableId, 0, len(vars))
	for v := range vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
