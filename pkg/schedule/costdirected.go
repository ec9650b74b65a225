package schedule

import (
	"sort"

	"github.com/exprsat/eqsat/pkg/analysis"
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/match"
	"github.com/exprsat/eqsat/pkg/rule"
)

// CostDirected orders its rule list by cost(rhs) - cost(lhs) ascending
// (rules that can only shrink a term come first, rules that may grow it
// come last) under a LocalCost model, and on each call tries rules in
// that order, returning the count for the first that applied.
//
// The order is computed once, at construction: re-sorting on every call
// is also spec-conformant, but this engine's rule lists don't change
// after a scheduler is built, so a per-call sort would just repeat the
// same comparison work for no behavioral difference.
type CostDirected[C any] struct {
	rules []rule.Rule
}

// ruleCost is cost(rhs) - cost(lhs) under model: negative for rules that
// only shrink a term, positive for rules that may grow it.
func ruleCost[C any](model analysis.Cost[C], r rule.Rule) C {
	return model.Sub(analysis.ExpressionCost(model, r.To), analysis.ExpressionCost(model, r.From))
}

// NewCostDirected sorts a copy of rules by ascending cost delta under
// model and returns a scheduler over that order.
func NewCostDirected[C any](rules []rule.Rule, model analysis.Cost[C]) *CostDirected[C] {
	sorted := make([]rule.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return model.Less(ruleCost(model, sorted[i]), ruleCost(model, sorted[j]))
	})
	return &CostDirected[C]{rules: sorted}
}

// ApplyNext implements Scheduler.
func (s *CostDirected[C]) ApplyNext(g egraph.Writer, matcher match.Matcher) int {
	for _, r := range s.rules {
		if applied := rule.Apply(g, r, matcher); applied > 0 {
			return applied
		}
	}
	return 0
}
