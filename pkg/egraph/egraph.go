// Package egraph implements the hash-consed e-graph: nodes, classes,
// congruence-closure rebuild, and the narrow read/write capability
// interface the rest of the engine (matching, rule application,
// saturation, reachability, extraction) is built against.
package egraph

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/exprsat/eqsat/pkg/lang"
	"github.com/exprsat/eqsat/pkg/unionfind"
)

// Analysis computes a per-class lattice value A from a single node
// (which may inspect children's *current* class analyses) and combines
// two class summaries. Merge must be commutative, associative, and
// idempotent on equal inputs.
type Analysis[A any] interface {
	Make(g *EGraph[A], nodeID NodeId) A
	Merge(a, b A) A
}

// Class holds the node set, parent set, and analysis value for one
// e-class.
type Class[A any] struct {
	Nodes   map[NodeId]struct{}
	Parents map[NodeId]struct{}
	Value   A
}

// trivialData is the Union-Find payload: the analysis value lives in
// Class.Value, keyed by canonical ClassId, not in the Union-Find itself.
type trivialData struct{}

func (trivialData) Merge(trivialData) trivialData { return trivialData{} }

// EGraph is a hash-consed term e-graph over an analysis type A.
type EGraph[A any] struct {
	uf       *unionfind.UnionFind[trivialData]
	nodes    map[NodeId]Node
	classes  map[ClassId]*Class[A]
	hashcons map[string]NodeId
	analysis Analysis[A]

	// totalInserted counts every AddNode call that reached hash-consing,
	// including ones that returned Old; used by Stats.
	totalInserted int
}

// New returns an empty e-graph driven by analysis.
func New[A any](analysis Analysis[A]) *EGraph[A] {
	return &EGraph[A]{
		uf:       unionfind.New[trivialData](),
		nodes:    map[NodeId]Node{},
		classes:  map[ClassId]*Class[A]{},
		hashcons: map[string]NodeId{},
		analysis: analysis,
	}
}

// FromExpression builds a fresh e-graph and adds t (which must be
// variable-free) as its only content.
func FromExpression[A any](analysis Analysis[A], t lang.Term) *EGraph[A] {
	g := New(analysis)
	g.AddExpression(t)
	return g
}

// Canonical rewrites c through Union-Find to its canonical representative.
// All public operations that consume a ClassId must pass it through this
// helper before using it for comparison, lookup, or storage.
func (g *EGraph[A]) Canonical(c ClassId) ClassId {
	return ClassId(g.uf.Find(unionfind.SetId(c)))
}

// ContainingClass returns the canonical class currently holding node n.
// NodeId and ClassId coincide at creation, so the class that n was
// created in is simply Canonical(ClassId(n)).
func (g *EGraph[A]) ContainingClass(n NodeId) ClassId {
	return g.Canonical(ClassId(n))
}

// NodeByID returns the Node stored for n. Panics if n is unknown: a
// dangling NodeId is a caller bug.
func (g *EGraph[A]) NodeByID(n NodeId) Node {
	node, ok := g.nodes[n]
	if !ok {
		panic(fmt.Sprintf("egraph: dangling NodeId %d", n))
	}
	return node
}

// ClassByID returns the Class for a canonical ClassId. Panics if c is not
// a known canonical class.
func (g *EGraph[A]) ClassByID(c ClassId) *Class[A] {
	cls, ok := g.classes[c]
	if !ok {
		panic(fmt.Sprintf("egraph: unknown canonical ClassId %d", c))
	}
	return cls
}

// ClassIDs returns every canonical ClassId currently in the graph, in no
// particular order.
func (g *EGraph[A]) ClassIDs() []ClassId {
	ids := make([]ClassId, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	return ids
}

// NodesIn returns the NodeIds currently assigned to canonical class c.
func (g *EGraph[A]) NodesIn(c ClassId) []NodeId {
	cls := g.ClassByID(c)
	ids := make([]NodeId, 0, len(cls.Nodes))
	for id := range cls.Nodes {
		ids = append(ids, id)
	}
	return ids
}

func (g *EGraph[A]) canonicalizeNode(n Node) Node {
	sym, ok := n.(SymbolNode)
	if !ok {
		return n
	}
	children := make([]ClassId, len(sym.Children))
	for i, c := range sym.Children {
		children[i] = g.Canonical(c)
	}
	return SymbolNode{ID: sym.ID, Children: children}
}

// AddNode canonicalises n's children, looks it up by structural equality,
// and either returns the existing NodeId (Old) or creates a fresh
// singleton class for it (New).
func (g *EGraph[A]) AddNode(n Node) Seen[NodeId] {
	g.totalInserted++
	canon := g.canonicalizeNode(n)
	key := canon.structuralKey()
	if existing, ok := g.hashcons[key]; ok {
		return OldSeen(existing)
	}

	classID := ClassId(g.uf.Add(trivialData{}))
	nodeID := NodeId(classID)

	g.nodes[nodeID] = canon
	g.hashcons[key] = nodeID
	cls := &Class[A]{Nodes: map[NodeId]struct{}{nodeID: {}}, Parents: map[NodeId]struct{}{}}
	g.classes[classID] = cls
	cls.Value = g.analysis.Make(g, nodeID)

	if sym, ok := canon.(SymbolNode); ok {
		for _, child := range sym.Children {
			g.ClassByID(child).Parents[nodeID] = struct{}{}
		}
	}

	return NewSeen(nodeID)
}

// AddExpression recursively adds t's children, then t's root node. t must
// be variable-free; a Variable anywhere in t is a caller bug (ground
// terms are the only valid e-graph input) and panics.
func (g *EGraph[A]) AddExpression(t lang.Term) NodeId {
	switch v := t.(type) {
	case lang.LiteralTerm:
		return g.AddNode(LiteralNode{Value: v.Value}).Value()
	case lang.SymbolTerm:
		children := make([]ClassId, len(v.Children))
		for i, c := range v.Children {
			childNode := g.AddExpression(c)
			children[i] = g.ContainingClass(childNode)
		}
		return g.AddNode(SymbolNode{ID: v.ID, Children: children}).Value()
	default:
		panic("egraph: AddExpression requires a variable-free term")
	}
}

// MergeClasses unions a and b (b's canonical id survives, per the
// Union-Find's documented right-wins policy), folds the loser's nodes,
// parents, and analysis into the survivor, and restores congruence via
// rebuild.
func (g *EGraph[A]) MergeClasses(a, b ClassId) Seen[ClassId] {
	ca := g.Canonical(a)
	cb := g.Canonical(b)
	if ca == cb {
		return OldSeen(ca)
	}

	survivor := ClassId(g.uf.Union(unionfind.SetId(ca), unionfind.SetId(cb)))
	loser := ca
	if survivor == ca {
		loser = cb
	}

	loserClass := g.classes[loser]
	survivorClass := g.classes[survivor]
	for nid := range loserClass.Nodes {
		survivorClass.Nodes[nid] = struct{}{}
	}
	for nid := range loserClass.Parents {
		survivorClass.Parents[nid] = struct{}{}
	}
	survivorClass.Value = g.analysis.Merge(survivorClass.Value, loserClass.Value)
	delete(g.classes, loser)

	g.rebuild(survivor)
	return NewSeen(survivor)
}

func (g *EGraph[A]) updateHashcons(nid NodeId, oldNode Node) {
	newNode := g.nodes[nid]
	oldKey := oldNode.structuralKey()
	if g.hashcons[oldKey] == nid {
		delete(g.hashcons, oldKey)
	}
	g.hashcons[newNode.structuralKey()] = nid
}

// canonicalizeInPlace rewrites nid's stored Node through Union-Find and
// keeps the hash-cons map in step. No-op for literal nodes.
func (g *EGraph[A]) canonicalizeInPlace(nid NodeId) {
	old := g.nodes[nid]
	canon := g.canonicalizeNode(old)
	if canon.structuralKey() == old.structuralKey() {
		return
	}
	g.nodes[nid] = canon
	g.updateHashcons(nid, old)
}

// rebuild restores the post-merge invariants for the class that survived
// a merge (spec: canonicalise nodes, dedupe nodes by smallest surviving
// NodeId, canonicalise parents' children, then merge any parents that
// became structurally congruent — looping until a full scan finds no
// further congruence, since each such merge strictly decreases the
// number of classes and so the loop terminates), then recomputes the
// analysis for every class this touched, propagating upward through
// parents until the recomputed value stops changing (spec §4.4/invariant
// 5: analysis coherence after rebuild — a class's Make may read a
// child's *current* value, so a rebuild that moves class membership or
// rewrites a node's children must refresh every class whose children
// changed, not only the merge's survivor).
func (g *EGraph[A]) rebuild(classID ClassId) {
	touched := map[ClassId]struct{}{}

	for {
		classID = g.Canonical(classID)
		cls, ok := g.classes[classID]
		if !ok {
			break
		}
		touched[classID] = struct{}{}

		for nid := range cls.Nodes {
			g.canonicalizeInPlace(nid)
		}

		byKey := map[string][]NodeId{}
		for nid := range cls.Nodes {
			key := g.nodes[nid].structuralKey()
			byKey[key] = append(byKey[key], nid)
		}
		for _, ids := range byKey {
			if len(ids) < 2 {
				continue
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			winner := ids[0]
			for _, dup := range ids[1:] {
				delete(cls.Nodes, dup)
				if g.hashcons[g.nodes[dup].structuralKey()] == dup {
					g.hashcons[g.nodes[dup].structuralKey()] = winner
				}
			}
		}

		merged := false
		seen := map[string]ClassId{}
		for pid := range cls.Parents {
			g.canonicalizeInPlace(pid)
			key := g.nodes[pid].structuralKey()
			owner := g.ContainingClass(pid)
			touched[owner] = struct{}{}
			if other, ok := seen[key]; ok && other != owner {
				g.MergeClasses(other, owner)
				merged = true
				break
			}
			seen[key] = owner
		}
		if !merged {
			break
		}
	}

	g.propagateAnalysis(touched)
}

// recomputeValue derives classID's analysis value from scratch: Make on
// every node currently in the class (reading their children's *current*
// values), folded together with Merge. This is the authoritative value a
// freshly-built class with this exact node set would have.
func (g *EGraph[A]) recomputeValue(classID ClassId) A {
	cls := g.classes[classID]
	var result A
	first := true
	for nid := range cls.Nodes {
		v := g.analysis.Make(g, nid)
		if first {
			result = v
			first = false
		} else {
			result = g.analysis.Merge(result, v)
		}
	}
	return result
}

// propagateAnalysis recomputes the analysis value for every class in
// seed, then for each one whose value actually changed, enqueues its
// parents' owning classes and repeats — since a class's own Make may
// depend on a child's value, a change has to ripple upward until it no
// longer does.
func (g *EGraph[A]) propagateAnalysis(seed map[ClassId]struct{}) {
	worklist := make([]ClassId, 0, len(seed))
	for id := range seed {
		worklist = append(worklist, id)
	}

	visited := map[ClassId]struct{}{}
	for len(worklist) > 0 {
		id := g.Canonical(worklist[len(worklist)-1])
		worklist = worklist[:len(worklist)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		cls, ok := g.classes[id]
		if !ok {
			continue
		}

		newValue := g.recomputeValue(id)
		changed := !reflect.DeepEqual(cls.Value, newValue)
		cls.Value = newValue
		if changed {
			for pid := range cls.Parents {
				worklist = append(worklist, g.ContainingClass(pid))
			}
		}
	}
}

// Stats is a point-in-time snapshot of the graph's size, grounded on the
// corpus's pool-statistics idiom: total nodes ever inserted (including
// ones that turned out to already exist), the actual distinct nodes kept,
// and the class count.
type Stats struct {
	TotalInserted int
	ActualNodes   int
	ClassCount    int
}

// Stats returns a snapshot of the graph's current size.
func (g *EGraph[A]) Stats() Stats {
	actual := 0
	for _, cls := range g.classes {
		actual += len(cls.Nodes)
	}
	return Stats{
		TotalInserted: g.totalInserted,
		ActualNodes:   actual,
		ClassCount:    len(g.classes),
	}
}
