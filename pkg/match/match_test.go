package match

import (
	"sort"
	"testing"

	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/google/go-cmp/cmp"
)

type trivialAnalysis struct{}

func (trivialAnalysis) Make(*egraph.EGraph[struct{}], egraph.NodeId) struct{} { return struct{}{} }
func (trivialAnalysis) Merge(struct{}, struct{}) struct{}                    { return struct{}{} }

func mathLang() *lang.Language {
	l := lang.NewLanguage()
	l.AddSymbol("+")
	l.AddSymbol("*")
	l.AddSymbol("sin")
	return l
}

// buildSample builds (* (+ 5 (sin (+ 5 3)))), where the literal 5 occurs
// twice and hash-conses to a single class, as does nothing else being
// shared. Returns the graph plus the language's symbol ids for
// convenience.
func buildSample(t *testing.T) (*egraph.EGraph[struct{}], *lang.Language, lang.SymbolId, lang.SymbolId, lang.SymbolId) {
	t.Helper()
	l := mathLang()
	plus, mul, sin := l.GetId("+"), l.GetId("*"), l.GetId("sin")

	inner := lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(5)},
		lang.LiteralTerm{Value: lang.NewInt(3)},
	}}
	outer := lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(5)},
		lang.SymbolTerm{ID: sin, Children: []lang.Term{inner}},
	}}
	root := lang.SymbolTerm{ID: mul, Children: []lang.Term{outer}}

	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(root)
	return g, l, plus, mul, sin
}

func bothMatchers() []Matcher {
	return []Matcher{TopDownMatcher{}, BottomUpMatcher{}}
}

func TestFindLiteral(t *testing.T) {
	g, _, _, _, _ := buildSample(t)
	pattern := lang.LiteralTerm{Value: lang.NewInt(5)}

	for _, m := range bothMatchers() {
		matches := m.TryMatch(g, pattern)
		if len(matches) != 1 {
			t.Fatalf("%T: len(matches) = %d, want 1", m, len(matches))
		}
		if len(matches[0].Substitution) != 0 {
			t.Fatalf("%T: literal match should carry no substitutions", m)
		}
	}
}

func TestFindSymbol(t *testing.T) {
	g, _, plus, _, sin := buildSample(t)
	pattern := lang.SymbolTerm{ID: sin, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{
			lang.LiteralTerm{Value: lang.NewInt(5)},
			lang.LiteralTerm{Value: lang.NewInt(3)},
		}},
	}}

	for _, m := range bothMatchers() {
		matches := m.TryMatch(g, pattern)
		if len(matches) != 1 {
			t.Fatalf("%T: len(matches) = %d, want 1", m, len(matches))
		}
	}
}

func TestNotFindSymbol(t *testing.T) {
	l := mathLang()
	plus, sin := l.GetId("+"), l.GetId("sin")

	inner := lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(5)},
		lang.LiteralTerm{Value: lang.NewInt(4)}, // differs from the pattern's 3
	}}
	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(lang.SymbolTerm{ID: sin, Children: []lang.Term{inner}})

	pattern := lang.SymbolTerm{ID: sin, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{
			lang.LiteralTerm{Value: lang.NewInt(5)},
			lang.LiteralTerm{Value: lang.NewInt(3)},
		}},
	}}

	for _, m := range bothMatchers() {
		if got := len(m.TryMatch(g, pattern)); got != 0 {
			t.Fatalf("%T: len(matches) = %d, want 0", m, got)
		}
	}
}

func TestMatchWithVariables(t *testing.T) {
	g, _, plus, _, _ := buildSample(t)
	pattern := lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(5)},
		lang.VariableTerm{ID: 0},
	}}

	for _, m := range bothMatchers() {
		matches := m.TryMatch(g, pattern)
		if len(matches) != 2 {
			t.Fatalf("%T: len(matches) = %d, want 2", m, len(matches))
		}
		for _, mt := range matches {
			if len(mt.Substitution) != 1 {
				t.Fatalf("%T: each match should bind exactly variable 0", m)
			}
		}
	}
}

func TestMatchWithRepeatedVariables(t *testing.T) {
	l := mathLang()
	plus, mul, sin := l.GetId("+"), l.GetId("*"), l.GetId("sin")

	sinFive := lang.SymbolTerm{ID: sin, Children: []lang.Term{lang.LiteralTerm{Value: lang.NewInt(5)}}}
	expr := lang.SymbolTerm{ID: mul, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{sinFive, sinFive}},
		lang.LiteralTerm{Value: lang.NewInt(3)},
	}}

	pattern := lang.SymbolTerm{ID: mul, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{lang.VariableTerm{ID: 0}, lang.VariableTerm{ID: 0}}},
		lang.VariableTerm{ID: 1},
	}}

	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(expr)

	for _, m := range bothMatchers() {
		matches := m.TryMatch(g, pattern)
		if len(matches) != 1 {
			t.Fatalf("%T: len(matches) = %d, want 1", m, len(matches))
		}
		if len(matches[0].Substitution) != 2 {
			t.Fatalf("%T: substitution len = %d, want 2", m, len(matches[0].Substitution))
		}
	}
}

func TestMatchWithRepeatedVariablesFail(t *testing.T) {
	l := mathLang()
	plus, mul := l.GetId("+"), l.GetId("*")

	expr := lang.SymbolTerm{ID: mul, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{
			lang.LiteralTerm{Value: lang.NewInt(8)},
			lang.LiteralTerm{Value: lang.NewInt(5)},
		}},
		lang.LiteralTerm{Value: lang.NewInt(3)},
	}}

	pattern := lang.SymbolTerm{ID: mul, Children: []lang.Term{
		lang.SymbolTerm{ID: plus, Children: []lang.Term{lang.VariableTerm{ID: 0}, lang.VariableTerm{ID: 0}}},
		lang.VariableTerm{ID: 1},
	}}

	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(expr)

	for _, m := range bothMatchers() {
		if got := len(m.TryMatch(g, pattern)); got != 0 {
			t.Fatalf("%T: len(matches) = %d, want 0", m, got)
		}
	}
}

// normalizedMatches sorts a match set into a deterministic order so two
// independently-produced sets (same matches, arbitrary order) compare
// equal under cmp.Diff.
func normalizedMatches(matches []Match) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Root != sorted[j].Root {
			return sorted[i].Root < sorted[j].Root
		}
		return len(sorted[i].Substitution) < len(sorted[j].Substitution)
	})
	return sorted
}

// TestMatchersAgree checks that TopDownMatcher and BottomUpMatcher find
// the same match set (up to ordering) for a literal pattern and three
// patterns with a variable, over the shared sample graph.
func TestMatchersAgree(t *testing.T) {
	g, l, plus, mul, sin := buildSample(t)

	patterns := []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(5)},
		lang.SymbolTerm{ID: sin, Children: []lang.Term{lang.VariableTerm{ID: 0}}},
		lang.SymbolTerm{ID: plus, Children: []lang.Term{
			lang.LiteralTerm{Value: lang.NewInt(5)},
			lang.VariableTerm{ID: 0},
		}},
		lang.SymbolTerm{ID: mul, Children: []lang.Term{lang.VariableTerm{ID: 0}}},
	}

	for _, pattern := range patterns {
		topDown := normalizedMatches(TopDownMatcher{}.TryMatch(g, pattern))
		bottomUp := normalizedMatches(BottomUpMatcher{}.TryMatch(g, pattern))
		if diff := cmp.Diff(topDown, bottomUp); diff != "" {
			t.Fatalf("pattern %s: TopDownMatcher and BottomUpMatcher disagree (-topdown +bottomup):\n%s",
				pattern.String(l, lang.PrintOptions{}), diff)
		}
	}
}
