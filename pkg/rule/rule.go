// Package rule implements rewrite rules: a pattern pair (LHS, RHS) and
// the application step that matches the LHS against an e-graph,
// substitutes each match's bindings into the RHS, inserts the result,
// and unions it with the matched class.
package rule

import (
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/match"
)

// Rule rewrites occurrences of From into To, substituting any pattern
// Variable shared between them.
type Rule struct {
	From lang.Term
	To   lang.Term
}

// New builds a rule from an already-parsed LHS/RHS pair.
func New(from, to lang.Term) Rule {
	return Rule{From: from, To: to}
}

// substitute turns a pattern (possibly containing Variables) plus a
// match's bindings into a MixedTerm ready for insertion: every Variable
// becomes a reference to its bound class, every Literal/Symbol is
// carried over structurally.
func substitute(pattern lang.Term, m match.Match) egraph.MixedTerm {
	switch p := pattern.(type) {
	case lang.LiteralTerm:
		return egraph.MixedLiteral{Value: p.Value}
	case lang.VariableTerm:
		return egraph.MixedClass{ID: m.Substitution[p.ID]}
	case lang.SymbolTerm:
		children := make([]egraph.MixedTerm, len(p.Children))
		for i, c := range p.Children {
			children[i] = substitute(c, m)
		}
		return egraph.MixedSymbol{ID: p.ID, Children: children}
	default:
		panic("rule: unknown lang.Term implementation")
	}
}

// Apply matches r.From against g using matcher, and for every match
// found, substitutes the bindings into r.To, inserts the result, and
// merges it with the matched root class. It returns the number of
// matches that caused a genuine change — a new node inserted or a
// merge that actually unioned two previously-distinct classes — which
// is also the count a Scheduler accumulates across its rule list
// (spec §4.6: Rule.apply returns a count of successful applications,
// gathered from every match collected up front, not a short-circuiting
// "did anything change" boolean).
func Apply(g egraph.Writer, r Rule, matcher match.Matcher) int {
	matches := matcher.TryMatch(g, r.From)

	count := 0
	for _, m := range matches {
		mixed := substitute(r.To, m)
		added := g.AddMixedExpression(mixed)
		merged := g.MergeClasses(m.Root, added.Value())
		if merged.IsNew() || added.IsNew() {
			count++
		}
	}
	return count
}
