package egraph

// Reader is the read-only subset of EGraph[A] that matching, reachability,
// and extraction need without being generic over the analysis type A
// themselves (spec §9: polymorphism over e-graph analyses is achieved
// through a capability-object boxed implementor, not a type parameter
// threaded through every consumer). Any *EGraph[A] for any A satisfies
// Reader.
type Reader interface {
	Canonical(c ClassId) ClassId
	ContainingClass(n NodeId) ClassId
	NodeByID(n NodeId) Node
	ClassIDs() []ClassId
	NodesIn(c ClassId) []NodeId
	Stats() Stats
}

// Writer is the mutating subset rule application and saturation need,
// again independent of the concrete analysis type A.
type Writer interface {
	Reader
	AddMixedExpression(t MixedTerm) Seen[ClassId]
	MergeClasses(a, b ClassId) Seen[ClassId]
}

var (
	_ Reader = (*EGraph[struct{}])(nil)
	_ Writer = (*EGraph[struct{}])(nil)
)
