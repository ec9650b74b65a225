package egraph

import "github.com/exprsat/eqsat/pkg/lang"

// MixedTerm is a term whose leaves may already refer to existing e-classes
// (spec §4.6: a rule's RHS, after substitution, is materialised as a term
// mixing brand-new structure with ClassIds bound by the match). It has no
// Variable case: by the time a RHS is ready for insertion every pattern
// variable has already been resolved to a class reference.
type MixedTerm interface {
	isMixedTerm()
}

// MixedLiteral wraps a literal leaf.
type MixedLiteral struct{ Value lang.Literal }

func (MixedLiteral) isMixedTerm() {}

// MixedSymbol applies a symbol to an ordered sequence of MixedTerm children.
type MixedSymbol struct {
	ID       lang.SymbolId
	Children []MixedTerm
}

func (MixedSymbol) isMixedTerm() {}

// MixedClass references an e-class that already exists, rather than
// constructing new structure.
type MixedClass struct{ ID ClassId }

func (MixedClass) isMixedTerm() {}

// AddMixedExpression inserts t, reusing existing classes wherever t
// bottoms out in a MixedClass and otherwise constructing new nodes. The
// returned Seen reports New only when this insertion added at least one
// genuinely new node anywhere in t; a MixedClass leaf alone always
// reports Old, as does a MixedSymbol/MixedLiteral whose hash-cons lookup
// finds every constructed node already present.
func (g *EGraph[A]) AddMixedExpression(t MixedTerm) Seen[ClassId] {
	switch v := t.(type) {
	case MixedClass:
		return OldSeen(g.Canonical(v.ID))

	case MixedLiteral:
		seen := g.AddNode(LiteralNode{Value: v.Value})
		cls := g.ContainingClass(seen.Value())
		if seen.IsNew() {
			return NewSeen(cls)
		}
		return OldSeen(cls)

	case MixedSymbol:
		children := make([]ClassId, len(v.Children))
		anyNew := false
		for i, c := range v.Children {
			childSeen := g.AddMixedExpression(c)
			children[i] = childSeen.Value()
			anyNew = anyNew || childSeen.IsNew()
		}
		seen := g.AddNode(SymbolNode{ID: v.ID, Children: children})
		cls := g.ContainingClass(seen.Value())
		if anyNew || seen.IsNew() {
			return NewSeen(cls)
		}
		return OldSeen(cls)

	default:
		panic("egraph: unknown MixedTerm implementation")
	}
}
