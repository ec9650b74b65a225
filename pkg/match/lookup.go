package match

import "github.com/exprsat/eqsat/pkg/egraph"
import "github.com/exprsat/eqsat/pkg/lang"

// classContainsLiteral reports whether any node in classID is a literal
// equal to lit.
func classContainsLiteral(g egraph.Reader, classID egraph.ClassId, lit lang.Literal) bool {
	for _, nid := range g.NodesIn(g.Canonical(classID)) {
		if ln, ok := g.NodeByID(nid).(egraph.LiteralNode); ok && ln.Value == lit {
			return true
		}
	}
	return false
}

// findLiteral scans every class for one containing lit. The e-graph's
// Reader surface deliberately doesn't expose its internal hash-cons
// table, so this is a linear scan rather than an O(1) lookup; matching
// is not a hot loop relative to saturation's rule application itself.
func findLiteral(g egraph.Reader, lit lang.Literal) (egraph.ClassId, bool) {
	for _, cid := range g.ClassIDs() {
		if classContainsLiteral(g, cid, lit) {
			return cid, true
		}
	}
	return 0, false
}

// findSymbol scans for a symbol node with the given id and (already
// resolved) children classes, canonicalising both sides before
// comparison.
func findSymbol(g egraph.Reader, id lang.SymbolId, children []egraph.ClassId) (egraph.ClassId, bool) {
	for _, cid := range g.ClassIDs() {
		for _, nid := range g.NodesIn(cid) {
			sn, ok := g.NodeByID(nid).(egraph.SymbolNode)
			if !ok || sn.ID != id || len(sn.Children) != len(children) {
				continue
			}
			matched := true
			for i, c := range sn.Children {
				if g.Canonical(c) != g.Canonical(children[i]) {
					matched = false
					break
				}
			}
			if matched {
				return g.ContainingClass(nid), true
			}
		}
	}
	return 0, false
}
