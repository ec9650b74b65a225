package egraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exprsat/eqsat/pkg/lang"
)

// NodeId is an opaque dense integer handle for an e-node. NodeId and
// ClassId coincide at creation time; thereafter ClassIds are
// canonicalised through Union-Find while NodeIds never change.
type NodeId int

// ClassId is an opaque dense integer handle for an e-class.
type ClassId int

// Node is either a Literal or a Symbol applied to an ordered sequence of
// (possibly stale, pre-canonicalisation) ClassIds.
type Node interface {
	isNode()
	structuralKey() string
}

// LiteralNode wraps a literal leaf.
type LiteralNode struct {
	Value lang.Literal
}

func (LiteralNode) isNode() {}

func (n LiteralNode) structuralKey() string {
	return fmt.Sprintf("L:%d:%d:%d", n.Value.Kind, n.Value.IntVal, n.Value.UIntVal)
}

// SymbolNode applies a symbol to an ordered sequence of class-id children.
// Between a merge and the next rebuild these children may be stale (not
// yet rewritten to their canonical form).
type SymbolNode struct {
	ID       lang.SymbolId
	Children []ClassId
}

func (SymbolNode) isNode() {}

func (n SymbolNode) structuralKey() string {
	var b strings.Builder
	b.WriteString("S:")
	b.WriteString(strconv.Itoa(int(n.ID)))
	for _, c := range n.Children {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(int(c)))
	}
	return b.String()
}
