// Package schedule implements the scheduler capability: a policy that
// owns a rule list and chooses which rule to try next each time the
// saturator asks for progress.
package schedule

import (
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/match"
	"github.com/exprsat/eqsat/pkg/rule"
)

// Scheduler owns a rule list and a policy for picking among them.
// ApplyNext tries to make progress and returns how many applications it
// performed in this step; 0 means no rule in its schedule currently
// applies. A Scheduler never checks global resource limits — that is
// the Saturator's job (spec §4.7), keeping the scheduling model
// single-threaded and synchronous (no operation here ever suspends).
type Scheduler interface {
	ApplyNext(g egraph.Writer, matcher match.Matcher) int
}

// RoundRobin cycles through its rule list, starting at a cursor that
// advances by one past the first rule that made progress on each call.
type RoundRobin struct {
	rules     []rule.Rule
	nextIndex int
}

// NewRoundRobin builds a round-robin scheduler over rules.
func NewRoundRobin(rules []rule.Rule) *RoundRobin {
	return &RoundRobin{rules: rules}
}

// ApplyNext implements Scheduler.
func (s *RoundRobin) ApplyNext(g egraph.Writer, matcher match.Matcher) int {
	n := len(s.rules)
	if n == 0 {
		return 0
	}
	for offset := 0; offset < n; offset++ {
		idx := (s.nextIndex + offset) % n
		applied := rule.Apply(g, s.rules[idx], matcher)
		if applied > 0 {
			s.nextIndex = (idx + 1) % n
			return applied
		}
	}
	return 0
}
