// Package match implements pattern matching of Terms containing pattern
// Variables against the contents of an e-graph, via two independent
// matchers (top-down and bottom-up) that must agree on every match set.
package match

import (
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
)

// Match is a single successful match of a pattern against a class: the
// class the whole pattern matched (Root), and the class each pattern
// Variable was bound to (Substitution). This is the single unified Match
// type named in the engine's design notes, collapsing what were
// originally two independent representations (one for e-graph matching,
// one for ground-term-against-ground-term matching — the latter is out
// of scope here, since matching targets are always e-graph classes).
type Match struct {
	Root         egraph.ClassId
	Substitution map[lang.VariableId]egraph.ClassId
}

func emptyMatch(root egraph.ClassId) Match {
	return Match{Root: root, Substitution: map[lang.VariableId]egraph.ClassId{}}
}

// mergeWith combines m and other under a new root, failing if they bind
// the same variable to different classes.
func (m Match) mergeWith(root egraph.ClassId, other Match) (Match, bool) {
	merged := Match{Root: root, Substitution: make(map[lang.VariableId]egraph.ClassId, len(m.Substitution)+len(other.Substitution))}
	for v, c := range m.Substitution {
		merged.Substitution[v] = c
	}
	for v, c := range other.Substitution {
		if existing, ok := merged.Substitution[v]; ok && existing != c {
			return Match{}, false
		}
		merged.Substitution[v] = c
	}
	return merged, true
}

// mergeMultiple folds matches into one, in order, failing as soon as any
// pair conflicts.
func mergeMultiple(root egraph.ClassId, matches []Match) (Match, bool) {
	total := emptyMatch(root)
	for _, m := range matches {
		var ok bool
		total, ok = total.mergeWith(root, m)
		if !ok {
			return Match{}, false
		}
	}
	return total, true
}

// Matcher finds every way a pattern can match somewhere in an e-graph.
type Matcher interface {
	TryMatch(g egraph.Reader, pattern lang.Term) []Match
}
