package rule

import (
	"testing"

	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/match"
)

type trivialAnalysis struct{}

func (trivialAnalysis) Make(*egraph.EGraph[struct{}], egraph.NodeId) struct{} { return struct{}{} }
func (trivialAnalysis) Merge(struct{}, struct{}) struct{}                    { return struct{}{} }

func simpleMathLang() *lang.Language {
	l := lang.NewLanguage()
	l.AddSymbol("+")
	l.AddSymbol("*")
	l.AddSymbol("sin")
	return l
}

func TestSimpleRuleApplication(t *testing.T) {
	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(lang.LiteralTerm{Value: lang.NewInt(1)})

	r := New(lang.LiteralTerm{Value: lang.NewInt(1)}, lang.LiteralTerm{Value: lang.NewInt(2)})
	count := Apply(g, r, match.TopDownMatcher{})

	if count != 1 {
		t.Fatalf("Apply count = %d, want 1", count)
	}
	stats := g.Stats()
	if stats.ClassCount != 1 {
		t.Fatalf("ClassCount = %d, want 1", stats.ClassCount)
	}
	if stats.ActualNodes != 2 {
		t.Fatalf("ActualNodes = %d, want 2", stats.ActualNodes)
	}
}

func TestAdditionCommutative(t *testing.T) {
	l := simpleMathLang()
	plus, sin := l.GetId("+"), l.GetId("sin")

	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.LiteralTerm{Value: lang.NewInt(2)},
		lang.SymbolTerm{ID: sin, Children: []lang.Term{lang.LiteralTerm{Value: lang.NewInt(5)}}},
	}})

	r := New(
		lang.SymbolTerm{ID: plus, Children: []lang.Term{lang.VariableTerm{ID: 0}, lang.VariableTerm{ID: 1}}},
		lang.SymbolTerm{ID: plus, Children: []lang.Term{lang.VariableTerm{ID: 1}, lang.VariableTerm{ID: 0}}},
	)
	Apply(g, r, match.TopDownMatcher{})

	stats := g.Stats()
	if stats.ClassCount != 4 {
		t.Fatalf("ClassCount = %d, want 4", stats.ClassCount)
	}
	if stats.ActualNodes != 5 {
		t.Fatalf("ActualNodes = %d, want 5", stats.ActualNodes)
	}

	expected := lang.SymbolTerm{ID: plus, Children: []lang.Term{
		lang.SymbolTerm{ID: sin, Children: []lang.Term{lang.LiteralTerm{Value: lang.NewInt(5)}}},
		lang.LiteralTerm{Value: lang.NewInt(2)},
	}}
	if got := len(match.TopDownMatcher{}.TryMatch(g, expected)); got != 1 {
		t.Fatalf("post-apply match count = %d, want 1", got)
	}
}

func TestApplyNoMatchesReturnsZero(t *testing.T) {
	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(lang.LiteralTerm{Value: lang.NewInt(1)})

	r := New(lang.LiteralTerm{Value: lang.NewInt(99)}, lang.LiteralTerm{Value: lang.NewInt(2)})
	if got := Apply(g, r, match.TopDownMatcher{}); got != 0 {
		t.Fatalf("Apply count = %d, want 0 when the pattern matches nothing", got)
	}
}
