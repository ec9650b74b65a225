package saturate

import (
	"context"
	"testing"
	"time"

	"github.com/exprsat/eqsat/internal/parallel"
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/match"
	"github.com/exprsat/eqsat/pkg/rule"
	"github.com/exprsat/eqsat/pkg/schedule"
)

type trivialAnalysis struct{}

func (trivialAnalysis) Make(*egraph.EGraph[struct{}], egraph.NodeId) struct{} { return struct{}{} }
func (trivialAnalysis) Merge(struct{}, struct{}) struct{}                    { return struct{}{} }

func simpleMathLang() *lang.Language {
	l := lang.NewLanguage()
	l.AddSymbol("+")
	l.AddSymbol("-")
	l.AddSymbol("*")
	l.AddSymbol("/")
	l.AddSymbol("<<")
	l.AddSymbol("sin")
	return l
}

func intLit(v int64) lang.Term { return lang.LiteralTerm{Value: lang.NewInt(v)} }

func sym(l *lang.Language, name string, children ...lang.Term) lang.Term {
	return lang.SymbolTerm{ID: l.GetId(name), Children: children}
}

func variable(id lang.VariableId) lang.Term { return lang.VariableTerm{ID: id} }

// defaultRules mirrors the two-rule fixture shared by the limit-stopping
// scenarios: "(* $0 2) -> (<< $0 1)" and "(* $0 1) -> $0".
func defaultRules(l *lang.Language) []rule.Rule {
	return []rule.Rule{
		rule.New(sym(l, "*", variable(0), intLit(2)), sym(l, "<<", variable(0), intLit(1))),
		rule.New(sym(l, "*", variable(0), intLit(1)), variable(0)),
	}
}

func runDefault(g *egraph.EGraph[struct{}], rules []rule.Rule, cfg Config) StopReason {
	scheduler := schedule.NewRoundRobin(rules)
	return Saturate(g, cfg, scheduler, match.BottomUpMatcher{})
}

func TestSaturateClassical(t *testing.T) {
	l := simpleMathLang()
	rules := []rule.Rule{
		rule.New(sym(l, "*", variable(0), intLit(2)), sym(l, "<<", variable(0), intLit(1))),
		rule.New(sym(l, "*", variable(0), intLit(1)), variable(0)),
		rule.New(
			sym(l, "/", sym(l, "*", variable(0), variable(1)), variable(2)),
			sym(l, "*", variable(0), sym(l, "/", variable(1), variable(2))),
		),
		rule.New(sym(l, "/", variable(0), variable(0)), intLit(1)),
	}

	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(sym(l, "/", sym(l, "*", sym(l, "sin", intLit(5)), intLit(2)), intLit(2)))

	reason := runDefault(g, rules, Config{})
	if reason != Saturated {
		t.Fatalf("stop reason = %v, want Saturated", reason)
	}

	stats := g.Stats()
	if stats.ClassCount != 5 {
		t.Fatalf("ClassCount = %d, want 5", stats.ClassCount)
	}
	if stats.ActualNodes != 9 {
		t.Fatalf("ActualNodes = %d, want 9", stats.ActualNodes)
	}
}

func newStarExpr(l *lang.Language) *egraph.EGraph[struct{}] {
	g := egraph.New[struct{}](trivialAnalysis{})
	g.AddExpression(sym(l, "*", intLit(3), intLit(2)))
	return g
}

func TestSaturateStopsOnMaxApplications(t *testing.T) {
	l := simpleMathLang()
	rules := defaultRules(l)
	g := newStarExpr(l)

	limit := 1
	reason := runDefault(g, rules, Config{MaxApplications: &limit})
	if reason != MaxApplications {
		t.Fatalf("stop reason = %v, want MaxApplications", reason)
	}
}

func TestSaturateStopsOnTimeout(t *testing.T) {
	l := simpleMathLang()
	rules := defaultRules(l)
	g := newStarExpr(l)

	limit := time.Duration(0)
	reason := runDefault(g, rules, Config{TimeLimit: &limit})
	if reason != Timeout {
		t.Fatalf("stop reason = %v, want Timeout", reason)
	}
}

func TestSaturateStopsOnMaxNodes(t *testing.T) {
	l := simpleMathLang()
	rules := defaultRules(l)
	g := newStarExpr(l)

	limit := 4
	reason := runDefault(g, rules, Config{MaxNodes: &limit})
	if reason != MaxNodes {
		t.Fatalf("stop reason = %v, want MaxNodes", reason)
	}
}

func TestSaturateStopsOnMaxClasses(t *testing.T) {
	l := simpleMathLang()
	rules := defaultRules(l)
	g := newStarExpr(l)

	limit := 3
	reason := runDefault(g, rules, Config{MaxClasses: &limit})
	if reason != MaxClasses {
		t.Fatalf("stop reason = %v, want MaxClasses", reason)
	}
}

func TestSaturateManyRunsDisjointEGraphsConcurrently(t *testing.T) {
	l := simpleMathLang()
	rules := defaultRules(l)

	pool := parallel.NewWorkerPool(2)
	defer pool.Shutdown()

	applicationsLimit := 1
	runs := []Run{
		func() StopReason { return runDefault(newStarExpr(l), rules, Config{}) },
		func() StopReason { return runDefault(newStarExpr(l), rules, Config{MaxApplications: &applicationsLimit}) },
	}

	reasons, err := SaturateMany(context.Background(), pool, runs)
	if err != nil {
		t.Fatalf("SaturateMany returned error: %v", err)
	}
	if len(reasons) != 2 {
		t.Fatalf("len(reasons) = %d, want 2", len(reasons))
	}
	if reasons[0] != Saturated {
		t.Fatalf("reasons[0] = %v, want Saturated", reasons[0])
	}
	if reasons[1] != MaxApplications {
		t.Fatalf("reasons[1] = %v, want MaxApplications", reasons[1])
	}
}
