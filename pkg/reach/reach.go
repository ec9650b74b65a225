// Package reach answers a narrower question than full saturation:
// "do these two terms become equal under this rule set", stopping as
// soon as their classes unify rather than running to a fixed point.
package reach

import (
	"time"

	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/match"
	"github.com/exprsat/eqsat/pkg/rule"
	"github.com/exprsat/eqsat/pkg/saturate"
	"github.com/exprsat/eqsat/pkg/schedule"
)

// StopReason records why a reachability attempt ended.
type StopReason struct {
	// Kind is one of the three outcomes below.
	Kind StopKind
	// ClassID is populated when Kind is ReachedCommonForm.
	ClassID egraph.ClassId
	// Limit is populated when Kind is Limit.
	Limit saturate.StopReason
}

// StopKind tags which arm of StopReason is populated.
type StopKind int

const (
	// ReachedCommonForm means the two roots' classes unified.
	ReachedCommonForm StopKind = iota
	// Limit means a configured saturate.Config bound was hit first.
	Limit
	// SaturatedNoUnification means no more rule applications were
	// possible and the classes still differ.
	SaturatedNoUnification
)

func (r StopReason) String() string {
	switch r.Kind {
	case ReachedCommonForm:
		return "ReachedCommonForm"
	case Limit:
		return "Limit(" + r.Limit.String() + ")"
	case SaturatedNoUnification:
		return "SaturatedNoUnification"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a TermsReachable run, including the final
// e-graph for further inspection (e.g. extracting the unified term).
type Result[A any] struct {
	EGraph       *egraph.EGraph[A]
	Reason       StopReason
	Applications int
	Duration     time.Duration
}

// TermsReachable seeds a fresh e-graph with exprA, adds exprB, and
// applies rules through a scheduler built by buildScheduler, checking
// after every step (and once before the first) whether the two terms'
// classes have unified. It stops at whichever comes first: unification,
// a cfg limit, or a step that applies nothing.
func TermsReachable[A any](
	rules []rule.Rule,
	exprA, exprB lang.Term,
	cfg saturate.Config,
	matcher match.Matcher,
	buildScheduler func([]rule.Rule) schedule.Scheduler,
	analysis egraph.Analysis[A],
) Result[A] {
	start := time.Now()

	g := egraph.New[A](analysis)
	aRoot := g.AddExpression(exprA)
	bRoot := g.AddExpression(exprB)
	aClass := g.Canonical(g.ContainingClass(aRoot))
	bClass := g.Canonical(g.ContainingClass(bRoot))

	scheduler := buildScheduler(rules)
	applications := 0

	var reason StopReason
	for {
		aClass = g.Canonical(aClass)
		bClass = g.Canonical(bClass)
		if aClass == bClass {
			reason = StopReason{Kind: ReachedCommonForm, ClassID: aClass}
			break
		}

		if limit, stopped := saturate.CheckLimits(g, applications, start, cfg); stopped {
			reason = StopReason{Kind: Limit, Limit: limit}
			break
		}

		applied := scheduler.ApplyNext(g, matcher)
		if applied == 0 {
			reason = StopReason{Kind: SaturatedNoUnification}
			break
		}
		applications += applied
	}

	return Result[A]{
		EGraph:       g,
		Reason:       reason,
		Applications: applications,
		Duration:     time.Since(start),
	}
}

// TermsReachableRoundRobin is the common case: a plain round-robin
// scheduler over rules.
func TermsReachableRoundRobin[A any](
	rules []rule.Rule,
	exprA, exprB lang.Term,
	cfg saturate.Config,
	matcher match.Matcher,
	analysis egraph.Analysis[A],
) Result[A] {
	return TermsReachable(rules, exprA, exprB, cfg, matcher, func(rs []rule.Rule) schedule.Scheduler {
		return schedule.NewRoundRobin(rs)
	}, analysis)
}
