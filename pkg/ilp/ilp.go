// Package ilp defines the narrow interface the abelian-path rewrite
// heuristic needs from an integer-programming solver, plus the
// heuristic itself. The solver is consumed through Solver — no solver
// implementation (an external ILP binding) lives in this module; the
// small BruteForceSolver here exists only as a test fixture for the
// dimensions this package's own tests exercise.
package ilp

import (
	"context"

	"github.com/exprsat/eqsat/internal/parallel"
	"github.com/exprsat/eqsat/pkg/batch"
	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/rule"
	"github.com/exprsat/eqsat/pkg/stringrw"
	"gonum.org/v1/gonum/mat"
)

// Solver finds the minimum-L1-norm nonnegative integer solution x to
// a*x = d (i.e. minimizes sum(x) subject to that equality and x >= 0,
// integer), or reports infeasibility.
type Solver interface {
	Solve(a *mat.Dense, d *mat.VecDense) (cost int, feasible bool)
}

// Bound is a nonnegative integer distance, or Infinity when no bound
// could be established (SinglyCompact<u32> in the grounding source).
type Bound struct {
	Finite bool
	Value  int
}

// FiniteBound wraps a concrete distance.
func FiniteBound(v int) Bound { return Bound{Finite: true, Value: v} }

// Infinity is the unreachable distance.
var Infinity = Bound{}

func (b Bound) lessThan(o Bound) bool {
	if !b.Finite {
		return false
	}
	if !o.Finite {
		return true
	}
	return b.Value < o.Value
}

func maxBound(a, b Bound) Bound {
	if a.lessThan(b) {
		return b
	}
	return a
}

func minBound(a, b Bound) Bound {
	if a.lessThan(b) {
		return a
	}
	return b
}

// BruteForceSolver enumerates every assignment in [0, MaxComponent]^n
// and keeps the cheapest feasible one. It exists purely to exercise
// Solver in this package's own tests on small systems — not a
// production ILP solver.
type BruteForceSolver struct {
	MaxComponent int
}

func (s BruteForceSolver) Solve(a *mat.Dense, d *mat.VecDense) (int, bool) {
	_, cols := a.Dims()
	rows := d.Len()

	if cols == 0 {
		for i := 0; i < rows; i++ {
			if d.AtVec(i) != 0 {
				return 0, false
			}
		}
		return 0, true
	}

	x := make([]int, cols)
	best := 0
	foundAny := false

	var search func(idx int)
	search = func(idx int) {
		if idx == cols {
			for r := 0; r < rows; r++ {
				sum := 0.0
				for c := 0; c < cols; c++ {
					sum += a.At(r, c) * float64(x[c])
				}
				if sum != d.AtVec(r) {
					return
				}
			}
			total := 0
			for _, v := range x {
				total += v
			}
			if !foundAny || total < best {
				best, foundAny = total, true
			}
			return
		}
		for v := 0; v <= s.MaxComponent; v++ {
			x[idx] = v
			search(idx + 1)
		}
	}
	search(0)

	return best, foundAny
}

// AbelianPathHeuristic estimates the rewrite distance from a current
// expression to a fixed target by, per shared variable, solving an ILP
// over the induced string rewriting system's abelianized matrix for
// every (current path, target path) pair ending at that variable.
type AbelianPathHeuristic struct {
	targetByVar   map[lang.VariableId][]stringrw.VariablePath
	abelianMatrix *mat.Dense
	stringLang    *lang.Language
	arities       *lang.Arities
	lang          *lang.Language
	solver        Solver
}

// NewAbelianPathHeuristic builds a heuristic fixed to target, under l's
// arities, for the rule set rules, using solver to answer each ILP.
func NewAbelianPathHeuristic(target lang.Term, l *lang.Language, arities *lang.Arities, rules []rule.Rule, solver Solver) *AbelianPathHeuristic {
	stringLang := stringrw.ToStringLanguage(l, arities)

	targetByVar := map[lang.VariableId][]stringrw.VariablePath{}
	for _, p := range stringrw.PathAbelianVectorsToVariables(target, l, stringLang, arities) {
		targetByVar[p.Variable] = append(targetByVar[p.Variable], p)
	}

	var induced []rule.Rule
	for _, r := range rules {
		induced = append(induced, stringrw.RuleToInducedRules(r, l, stringLang, arities)...)
	}
	matrix := stringrw.RulesToAbelianMatrix(induced, stringLang)

	return &AbelianPathHeuristic{
		targetByVar:   targetByVar,
		abelianMatrix: matrix,
		stringLang:    stringLang,
		arities:       arities,
		lang:          l,
		solver:        solver,
	}
}

func (h *AbelianPathHeuristic) solveILP(diff *mat.VecDense) Bound {
	_, cols := h.abelianMatrix.Dims()
	if cols == 0 {
		for i := 0; i < diff.Len(); i++ {
			if diff.AtVec(i) != 0 {
				return Infinity
			}
		}
		return FiniteBound(0)
	}
	cost, ok := h.solver.Solve(h.abelianMatrix, diff)
	if !ok {
		return Infinity
	}
	return FiniteBound(cost)
}

// LowerBound computes h(current) = max_v min_α max_ω θ(M_T, a(ω)-a(α))
// over variables v shared between current and the heuristic's target,
// α ranging over current's root-to-v paths and ω over the target's.
// Max over an empty path set is 0; min over an empty path set is
// Infinity, short-circuiting the whole result to Infinity.
func (h *AbelianPathHeuristic) LowerBound(current lang.Term) Bound {
	currentByVar := map[lang.VariableId][]stringrw.VariablePath{}
	for _, p := range stringrw.PathAbelianVectorsToVariables(current, h.lang, h.stringLang, h.arities) {
		currentByVar[p.Variable] = append(currentByVar[p.Variable], p)
	}

	allVars := map[lang.VariableId]struct{}{}
	for v := range currentByVar {
		allVars[v] = struct{}{}
	}
	for v := range h.targetByVar {
		allVars[v] = struct{}{}
	}

	maxOverVars := FiniteBound(0)

	for v := range allVars {
		currentPaths := currentByVar[v]
		targetPaths := h.targetByVar[v]

		minOverCurrent := Infinity
		for _, cp := range currentPaths {
			maxOverTarget := FiniteBound(0)
			for _, tp := range targetPaths {
				var diff mat.VecDense
				diff.SubVec(tp.Vector, cp.Vector)
				maxOverTarget = maxBound(maxOverTarget, h.solveILP(&diff))
			}
			minOverCurrent = minBound(minOverCurrent, maxOverTarget)
		}

		if !minOverCurrent.Finite {
			return Infinity
		}
		maxOverVars = maxBound(maxOverVars, minOverCurrent)
	}

	return maxOverVars
}

// pairResult is one (variable, current-path-index) group's max_ω θ
// value, computed by reducing over every target path for that
// variable.
type pairResult struct {
	variable lang.VariableId
	cpIndex  int
	value    Bound
}

// LowerBoundParallel computes the same value as LowerBound, but farms
// every (α, ω) path-pair's ILP call out to pool: per spec, each such
// pair is independent, so this is the one place the heuristic's inner
// loop is allowed to run across goroutines rather than in the calling
// thread.
func (h *AbelianPathHeuristic) LowerBoundParallel(ctx context.Context, pool *parallel.WorkerPool, current lang.Term) (Bound, error) {
	currentByVar := map[lang.VariableId][]stringrw.VariablePath{}
	for _, p := range stringrw.PathAbelianVectorsToVariables(current, h.lang, h.stringLang, h.arities) {
		currentByVar[p.Variable] = append(currentByVar[p.Variable], p)
	}

	allVars := map[lang.VariableId]struct{}{}
	for v := range currentByVar {
		allVars[v] = struct{}{}
	}
	for v := range h.targetByVar {
		allVars[v] = struct{}{}
	}

	var jobs []batch.Job[pairResult]
	for v := range allVars {
		for cpIndex, cp := range currentByVar[v] {
			v, cp, cpIndex := v, cp, cpIndex
			targetPaths := h.targetByVar[v]
			jobs = append(jobs, func() pairResult {
				maxOverTarget := FiniteBound(0)
				for _, tp := range targetPaths {
					var diff mat.VecDense
					diff.SubVec(tp.Vector, cp.Vector)
					maxOverTarget = maxBound(maxOverTarget, h.solveILP(&diff))
				}
				return pairResult{variable: v, cpIndex: cpIndex, value: maxOverTarget}
			})
		}
	}

	results, err := batch.Run(ctx, pool, jobs)
	if err != nil {
		return Bound{}, err
	}

	minOverCurrentByVar := map[lang.VariableId]Bound{}
	hasCurrentPath := map[lang.VariableId]bool{}
	for _, r := range results {
		hasCurrentPath[r.variable] = true
		if existing, ok := minOverCurrentByVar[r.variable]; ok {
			minOverCurrentByVar[r.variable] = minBound(existing, r.value)
		} else {
			minOverCurrentByVar[r.variable] = r.value
		}
	}

	maxOverVars := FiniteBound(0)
	for v := range allVars {
		if !hasCurrentPath[v] {
			return Infinity, nil
		}
		bound := minOverCurrentByVar[v]
		if !bound.Finite {
			return Infinity, nil
		}
		maxOverVars = maxBound(maxOverVars, bound)
	}

	return maxOverVars, nil
}
