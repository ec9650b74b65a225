// Package unionfind implements a disjoint-set forest with path compression
// and an associative, commutative per-set data value.
//
// The merge policy is fixed and documented: union(a, b) always designates
// b's set as canonical. No ranks are stored; grandparent-halving during
// find keeps the amortised cost low without them.
package unionfind

// Data is the per-set value an UnionFind carries alongside its sets. Merge
// combines the losing set's data into the surviving set's data; it must be
// commutative and associative so the result is independent of union order.
type Data[D any] interface {
	Merge(other D) D
}

// SetId is an opaque dense integer handle for a set. Set and data ids
// coincide at creation time.
type SetId int

type node[D any] struct {
	isRoot bool
	// parent is only meaningful when !isRoot.
	parent SetId
	// data is only present when isRoot.
	data D
}

// UnionFind is a disjoint-set forest over SetIds, each singleton created
// with an owned D value. find on an id that was never added is a program
// bug and panics; the core never attempts to recover from a corrupt
// UnionFind.
type UnionFind[D Data[D]] struct {
	nodes []node[D]
}

// New returns an empty UnionFind.
func New[D Data[D]]() *UnionFind[D] {
	return &UnionFind[D]{}
}

// Add appends a new singleton set holding data and returns its id.
func (uf *UnionFind[D]) Add(data D) SetId {
	id := SetId(len(uf.nodes))
	uf.nodes = append(uf.nodes, node[D]{isRoot: true, data: data})
	return id
}

// Size returns the number of sets ever added (merged sets still count
// toward Size; only Find's canonical output shrinks).
func (uf *UnionFind[D]) Size() int {
	return len(uf.nodes)
}

func (uf *UnionFind[D]) checkId(id SetId) {
	if id < 0 || int(id) >= len(uf.nodes) {
		panic("unionfind: unknown SetId")
	}
}

// Find returns the canonical id of the set containing id, compressing the
// path by re-pointing id's node at its grandparent (or the root, if no
// grandparent exists) as it goes.
func (uf *UnionFind[D]) Find(id SetId) SetId {
	uf.checkId(id)
	n := &uf.nodes[id]
	if n.isRoot {
		return id
	}
	parent := n.parent
	grandparent := uf.parentOf(parent)
	n.parent = grandparent
	return uf.Find(grandparent)
}

// parentOf returns id's immediate parent pointer (itself, if id is a root).
func (uf *UnionFind[D]) parentOf(id SetId) SetId {
	n := &uf.nodes[id]
	if n.isRoot {
		return id
	}
	return n.parent
}

// Data returns the data held by the canonical representative of id's set.
func (uf *UnionFind[D]) Data(id SetId) D {
	canon := uf.Find(id)
	return uf.nodes[canon].data
}

// Union merges the sets containing a and b. If they are already the same
// set this is a no-op. Otherwise b's canonical id becomes the surviving
// representative (documented fixed policy: right wins); a's data is
// merged into b's via Data.Merge, and a's root node becomes a pointer to
// b's canonical id.
func (uf *UnionFind[D]) Union(a, b SetId) SetId {
	canonA := uf.Find(a)
	canonB := uf.Find(b)
	if canonA == canonB {
		return canonA
	}

	loser := uf.nodes[canonA]
	winner := &uf.nodes[canonB]
	winner.data = winner.data.Merge(loser.data)

	uf.nodes[canonA] = node[D]{isRoot: false, parent: canonB}

	return canonB
}

// Connected reports whether a and b belong to the same set.
func (uf *UnionFind[D]) Connected(a, b SetId) bool {
	return uf.Find(a) == uf.Find(b)
}
