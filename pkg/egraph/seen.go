package egraph

// Seen wraps an insertion result so callers can detect genuine graph
// growth: every insertion into an EGraph returns New(id) when the id was
// freshly created, or Old(id) when an equal entity already existed.
type Seen[T any] struct {
	value T
	isNew bool
}

// NewSeen wraps a freshly created value.
func NewSeen[T any](v T) Seen[T] { return Seen[T]{value: v, isNew: true} }

// OldSeen wraps a value that already existed.
func OldSeen[T any](v T) Seen[T] { return Seen[T]{value: v, isNew: false} }

// Value returns the wrapped id regardless of novelty.
func (s Seen[T]) Value() T { return s.value }

// IsNew reports whether the wrapped id was freshly created.
func (s Seen[T]) IsNew() bool { return s.isNew }
