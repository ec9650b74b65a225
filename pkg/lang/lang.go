// Package lang implements the term model shared by patterns, rule
// templates, and e-graph inputs: symbols, literals, variables, paths, and
// the language table mapping symbol ids to names and declared arities.
package lang

import (
	"errors"
	"fmt"
	"strings"
)

// SymbolId identifies a function symbol in a Language by insertion order.
type SymbolId int

// VariableId identifies a pattern variable. Variables occur only in
// patterns (rule LHS/RHS); ground terms contain none.
type VariableId int

// LiteralKind tags which arm of Literal is populated.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralUInt
)

// Literal is the tagged union {Int(signed 64), UInt(unsigned 64)}. Two
// literals are equal by tag and value, which Go's == gives for free since
// every field is comparable.
type Literal struct {
	Kind    LiteralKind
	IntVal  int64
	UIntVal uint64
}

// NewInt builds a signed literal.
func NewInt(v int64) Literal { return Literal{Kind: LiteralInt, IntVal: v} }

// NewUInt builds an unsigned literal.
func NewUInt(v uint64) Literal { return Literal{Kind: LiteralUInt, UIntVal: v} }

func (l Literal) String() string {
	switch l.Kind {
	case LiteralUInt:
		return fmt.Sprintf("%du", l.UIntVal)
	default:
		return fmt.Sprintf("%d", l.IntVal)
	}
}

// Path is an ordered sequence of child indices from some root. Equality is
// structural (slice-of-int equality, checked element-wise by Equal).
type Path []int

// Equal reports structural equality between two paths.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ErrBadPath is returned when a path does not select a valid subterm.
var ErrBadPath = errors.New("lang: path does not select a subterm")

// ErrHasVariables is returned by WithoutVariables when the term is not
// ground.
var ErrHasVariables = errors.New("lang: term contains variables")

// Term is one of Literal, Variable(VariableId), or
// Symbol{id, children: ordered sequence of Terms}. A term with no
// Variable anywhere is "variable-free" (ground) and is the normal form of
// inputs to the e-graph; Mixed terms (rule RHS after substitution, whose
// children may be concrete subterms or existing e-graph ClassIds) are
// defined in package egraph, which owns ClassId.
type Term interface {
	isTerm()
	// SubtermAt follows child indices from the root, returning the
	// subterm found or ErrBadPath.
	SubtermAt(p Path) (Term, error)
	// IterPaths enumerates every subterm's path in pre-order.
	IterPaths() []Path
	// IterSubterms enumerates every subterm, same order as IterPaths.
	IterSubterms() []Term
	// Variables returns the set of VariableIds present.
	Variables() map[VariableId]struct{}
	// String renders the term in S-expression form.
	String(l *Language, opts PrintOptions) string
}

// PrintOptions controls cosmetic rendering of variables.
type PrintOptions struct {
	// CosmeticNames renders small variable ids as short names
	// ($0 -> x, $1 -> y, ...) instead of $N.
	CosmeticNames bool
}

var niceVariableNames = []string{"x", "y", "z", "w", "α", "β", "γ", "δ"}

func variableName(id VariableId, opts PrintOptions) string {
	if opts.CosmeticNames && int(id) >= 0 && int(id) < len(niceVariableNames) {
		return niceVariableNames[id]
	}
	return fmt.Sprintf("$%d", id)
}

// LiteralTerm is a Term holding a Literal leaf.
type LiteralTerm struct{ Value Literal }

func (LiteralTerm) isTerm() {}

func (t LiteralTerm) SubtermAt(p Path) (Term, error) {
	if len(p) == 0 {
		return t, nil
	}
	return nil, ErrBadPath
}

func (t LiteralTerm) IterPaths() []Path       { return []Path{{}} }
func (t LiteralTerm) IterSubterms() []Term    { return []Term{t} }
func (t LiteralTerm) Variables() map[VariableId]struct{} {
	return map[VariableId]struct{}{}
}
func (t LiteralTerm) String(l *Language, opts PrintOptions) string { return t.Value.String() }

// VariableTerm is a Term holding a pattern variable.
type VariableTerm struct{ ID VariableId }

func (VariableTerm) isTerm() {}

func (t VariableTerm) SubtermAt(p Path) (Term, error) {
	if len(p) == 0 {
		return t, nil
	}
	return nil, ErrBadPath
}

func (t VariableTerm) IterPaths() []Path    { return []Path{{}} }
func (t VariableTerm) IterSubterms() []Term { return []Term{t} }
func (t VariableTerm) Variables() map[VariableId]struct{} {
	return map[VariableId]struct{}{t.ID: {}}
}
func (t VariableTerm) String(l *Language, opts PrintOptions) string {
	return variableName(t.ID, opts)
}

// SymbolTerm is a Term applying a symbol to an ordered sequence of
// children, which are themselves Terms.
type SymbolTerm struct {
	ID       SymbolId
	Children []Term
}

func (SymbolTerm) isTerm() {}

func (t SymbolTerm) SubtermAt(p Path) (Term, error) {
	if len(p) == 0 {
		return t, nil
	}
	idx := p[0]
	if idx < 0 || idx >= len(t.Children) {
		return nil, ErrBadPath
	}
	return t.Children[idx].SubtermAt(p[1:])
}

func (t SymbolTerm) IterPaths() []Path {
	paths := []Path{{}}
	for i, child := range t.Children {
		for _, sub := range child.IterPaths() {
			full := make(Path, 0, len(sub)+1)
			full = append(full, i)
			full = append(full, sub...)
			paths = append(paths, full)
		}
	}
	return paths
}

func (t SymbolTerm) IterSubterms() []Term {
	subs := []Term{t}
	for _, child := range t.Children {
		subs = append(subs, child.IterSubterms()...)
	}
	return subs
}

func (t SymbolTerm) Variables() map[VariableId]struct{} {
	out := map[VariableId]struct{}{}
	for _, child := range t.Children {
		for v := range child.Variables() {
			out[v] = struct{}{}
		}
	}
	return out
}

func (t SymbolTerm) String(l *Language, opts PrintOptions) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(l.GetSymbol(t.ID))
	for _, child := range t.Children {
		b.WriteString(" ")
		b.WriteString(child.String(l, opts))
	}
	b.WriteString(")")
	return b.String()
}

// ApplyAtPath rebuilds a copy of t with f applied to the subterm at p.
// ErrBadPath if p does not select a subterm.
func ApplyAtPath(t Term, p Path, f func(Term) Term) (Term, error) {
	if len(p) == 0 {
		return f(t), nil
	}
	sym, ok := t.(SymbolTerm)
	if !ok {
		return nil, ErrBadPath
	}
	idx := p[0]
	if idx < 0 || idx >= len(sym.Children) {
		return nil, ErrBadPath
	}
	newChild, err := ApplyAtPath(sym.Children[idx], p[1:], f)
	if err != nil {
		return nil, err
	}
	children := make([]Term, len(sym.Children))
	copy(children, sym.Children)
	children[idx] = newChild
	return SymbolTerm{ID: sym.ID, Children: children}, nil
}

// WithoutVariables promotes t to a variable-free term, or returns
// ErrHasVariables if any Variable occurs within it.
func WithoutVariables(t Term) (Term, error) {
	switch v := t.(type) {
	case VariableTerm:
		return nil, ErrHasVariables
	case LiteralTerm:
		return v, nil
	case SymbolTerm:
		children := make([]Term, len(v.Children))
		for i, c := range v.Children {
			gc, err := WithoutVariables(c)
			if err != nil {
				return nil, err
			}
			children[i] = gc
		}
		return SymbolTerm{ID: v.ID, Children: children}, nil
	default:
		panic("lang: unknown Term implementation")
	}
}

// CommonVariables returns the variables shared by a and b.
func CommonVariables(a, b Term) map[VariableId]struct{} {
	av := a.Variables()
	bv := b.Variables()
	out := map[VariableId]struct{}{}
	for v := range av {
		if _, ok := bv[v]; ok {
			out[v] = struct{}{}
		}
	}
	return out
}
