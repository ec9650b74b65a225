// Package stringrw implements induced string rewriting: converting a
// language, its terms, and its rules into a "string" form where every
// symbol has arity 0 or 1, by splitting each n-ary symbol into n
// indexed unary symbols (one per child position) and walking every
// root-to-leaf path as its own unary chain. It also abelianises terms
// and rule sets into symbol-count vectors and a difference matrix,
// grounding the integer-programming heuristic in pkg/ilp.
package stringrw

import (
	"fmt"

	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/rule"
	"gonum.org/v1/gonum/mat"
)

// ToStringLanguage builds the induced unary-only language for lang
// under arities: 0- and 1-arity symbols pass through unchanged; an
// n-arity symbol (n > 1) becomes n indexed unary symbols name_1..name_n,
// one per child position.
func ToStringLanguage(l *lang.Language, arities *lang.Arities) *lang.Language {
	stringLang := lang.NewLanguage()

	for id := lang.SymbolId(0); int(id) < l.SymbolCount(); id++ {
		name := l.GetSymbol(id)
		arity, _ := arities.GetFirst(id) // undeclared defaults to arity 0

		switch {
		case arity <= 1:
			stringLang.AddSymbol(name)
		default:
			for i := 1; i <= arity; i++ {
				stringLang.AddSymbol(fmt.Sprintf("%s_%d", name, i))
			}
		}
	}

	return stringLang
}

// toStringSymbol maps a symbol applied at child position childIdx (0
// based) to its induced unary symbol: unchanged if arity <= 1,
// otherwise the childIdx+1'th indexed variant.
func toStringSymbol(id lang.SymbolId, childIdx int, l, stringLang *lang.Language, arity int) lang.SymbolId {
	name := l.GetSymbol(id)
	if arity <= 1 {
		return stringLang.GetId(name)
	}
	return stringLang.GetId(fmt.Sprintf("%s_%d", name, childIdx+1))
}

// buildPathExpression nests a flat root-to-leaf chain of terms into a
// single unary term: [a, b, c] becomes a(b(c)). Every non-final element
// must be a SymbolTerm (a one-child application in the string
// language); the final element is the path's leaf (literal, variable,
// or a 0-arity symbol).
func buildPathExpression(path []lang.Term) (lang.Term, bool) {
	if len(path) == 0 {
		return nil, false
	}
	result := path[len(path)-1]
	for i := len(path) - 2; i >= 0; i-- {
		sym, ok := path[i].(lang.SymbolTerm)
		if !ok {
			return nil, false
		}
		result = lang.SymbolTerm{ID: sym.ID, Children: []lang.Term{result}}
	}
	return result, true
}

// ExpressionToPaths enumerates every root-to-leaf path in expr as its
// own chain of induced unary symbols, terminated by the leaf
// (literal/variable/0-arity symbol) itself.
func ExpressionToPaths(expr lang.Term, l, stringLang *lang.Language, arities *lang.Arities) []lang.Term {
	var paths []lang.Term
	expressionToPaths(expr, l, stringLang, arities, nil, &paths)
	return paths
}

func expressionToPaths(expr lang.Term, l, stringLang *lang.Language, arities *lang.Arities, current []lang.Term, paths *[]lang.Term) {
	switch v := expr.(type) {
	case lang.LiteralTerm:
		appendPath(append(append([]lang.Term{}, current...), v), paths)
	case lang.VariableTerm:
		appendPath(append(append([]lang.Term{}, current...), v), paths)
	case lang.SymbolTerm:
		arity, ok := arities.GetFirst(v.ID)
		if !ok {
			arity = len(v.Children)
		}
		if len(v.Children) == 0 {
			leaf := lang.SymbolTerm{ID: v.ID}
			appendPath(append(append([]lang.Term{}, current...), leaf), paths)
			return
		}
		for childIdx, child := range v.Children {
			indexed := toStringSymbol(v.ID, childIdx, l, stringLang, arity)
			next := append(append([]lang.Term{}, current...), lang.SymbolTerm{ID: indexed})
			expressionToPaths(child, l, stringLang, arities, next, paths)
		}
	default:
		panic("stringrw: unknown lang.Term implementation")
	}
}

func appendPath(path []lang.Term, paths *[]lang.Term) {
	if expr, ok := buildPathExpression(path); ok {
		*paths = append(*paths, expr)
	}
}

// findVariableOccurrences maps each variable to every path (sequence of
// child indices) at which it occurs in expr.
func findVariableOccurrences(expr lang.Term) map[lang.VariableId][]lang.Path {
	out := map[lang.VariableId][]lang.Path{}
	for _, p := range expr.IterPaths() {
		sub, err := expr.SubtermAt(p)
		if err != nil {
			continue
		}
		if v, ok := sub.(lang.VariableTerm); ok {
			out[v.ID] = append(out[v.ID], p)
		}
	}
	return out
}

// pathToExpression walks expr down target, converting every symbol
// traversed into its induced unary form, and terminates the chain with
// varID. Returns false if target passes through a non-symbol; it does
// not check that the subterm target reaches is an occurrence of varID.
func pathToExpression(expr lang.Term, target lang.Path, l, stringLang *lang.Language, arities *lang.Arities, varID lang.VariableId) (lang.Term, bool) {
	current := expr
	var elements []lang.Term

	for _, childIdx := range target {
		sym, ok := current.(lang.SymbolTerm)
		if !ok {
			return nil, false
		}
		arity, ok := arities.GetFirst(sym.ID)
		if !ok {
			arity = len(sym.Children)
		}
		indexed := toStringSymbol(sym.ID, childIdx, l, stringLang, arity)
		elements = append(elements, lang.SymbolTerm{ID: indexed})

		if childIdx < 0 || childIdx >= len(sym.Children) {
			return nil, false
		}
		current = sym.Children[childIdx]
	}

	elements = append(elements, lang.VariableTerm{ID: varID})
	return buildPathExpression(elements)
}

// RuleToInducedRules expands a rule into its induced string rules: for
// every variable shared between LHS and RHS, and every pair of its
// occurrences (one on each side), a rule rewriting the path to the left
// occurrence into the path to the right occurrence.
func RuleToInducedRules(r rule.Rule, l, stringLang *lang.Language, arities *lang.Arities) []rule.Rule {
	leftVars := findVariableOccurrences(r.From)
	rightVars := findVariableOccurrences(r.To)

	var induced []rule.Rule
	for varID, leftPaths := range leftVars {
		rightPaths, ok := rightVars[varID]
		if !ok {
			continue
		}
		for _, leftPath := range leftPaths {
			for _, rightPath := range rightPaths {
				leftExpr, lok := pathToExpression(r.From, leftPath, l, stringLang, arities, varID)
				rightExpr, rok := pathToExpression(r.To, rightPath, l, stringLang, arities, varID)
				if lok && rok {
					induced = append(induced, rule.New(leftExpr, rightExpr))
				}
			}
		}
	}
	return induced
}

// VariablePath pairs a variable occurrence with the abelianized vector
// of the induced string-language path from its expression's root down
// to that occurrence.
type VariablePath struct {
	Variable lang.VariableId
	Vector   *mat.VecDense
}

// PathAbelianVectorsToVariables walks every root-to-leaf path in expr
// (as ExpressionToPaths does) but keeps only the paths terminating in a
// pattern Variable, abelianizing each one under the string language.
// This grounds the heuristic's "Ω^e_v, the set of paths from root to
// variable v" set.
func PathAbelianVectorsToVariables(expr lang.Term, l, stringLang *lang.Language, arities *lang.Arities) []VariablePath {
	var out []VariablePath
	pathsToVariables(expr, l, stringLang, arities, nil, &out)
	return out
}

func pathsToVariables(expr lang.Term, l, stringLang *lang.Language, arities *lang.Arities, current []lang.Term, out *[]VariablePath) {
	switch v := expr.(type) {
	case lang.LiteralTerm:
		return
	case lang.VariableTerm:
		if pathExpr, ok := buildPathExpression(append(append([]lang.Term{}, current...), v)); ok {
			*out = append(*out, VariablePath{Variable: v.ID, Vector: ExpressionToAbelianVector(pathExpr, stringLang)})
		}
	case lang.SymbolTerm:
		arity, ok := arities.GetFirst(v.ID)
		if !ok {
			arity = len(v.Children)
		}
		for childIdx, child := range v.Children {
			indexed := toStringSymbol(v.ID, childIdx, l, stringLang, arity)
			next := append(append([]lang.Term{}, current...), lang.SymbolTerm{ID: indexed})
			pathsToVariables(child, l, stringLang, arities, next, out)
		}
	default:
		panic("stringrw: unknown lang.Term implementation")
	}
}

// ExpressionToAbelianVector counts every symbol occurrence in expr,
// indexed by SymbolId; literals and variables don't contribute.
func ExpressionToAbelianVector(expr lang.Term, l *lang.Language) *mat.VecDense {
	counts := make([]float64, l.SymbolCount())
	countSymbols(expr, counts)
	return mat.NewVecDense(len(counts), counts)
}

func countSymbols(expr lang.Term, counts []float64) {
	switch v := expr.(type) {
	case lang.LiteralTerm, lang.VariableTerm:
		return
	case lang.SymbolTerm:
		counts[v.ID]++
		for _, child := range v.Children {
			countSymbols(child, counts)
		}
	default:
		panic("stringrw: unknown lang.Term implementation")
	}
}

// RulesToAbelianMatrix builds the symbols-by-rules TRS matrix A where
// A[i][j] is the change in symbol i's count from rule j's LHS to RHS
// (RHS count minus LHS count).
func RulesToAbelianMatrix(rules []rule.Rule, l *lang.Language) *mat.Dense {
	symbolCount := l.SymbolCount()
	ruleCount := len(rules)
	m := mat.NewDense(symbolCount, ruleCount, nil)

	for j, r := range rules {
		left := ExpressionToAbelianVector(r.From, l)
		right := ExpressionToAbelianVector(r.To, l)
		for i := 0; i < symbolCount; i++ {
			m.Set(i, j, right.AtVec(i)-left.AtVec(i))
		}
	}

	return m
}
