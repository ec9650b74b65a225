package lang

import "fmt"

// Language maps SymbolIds to names, by insertion order, plus the arity
// sets legal for each symbol. There is no global language registry
// (spec §9 "Global mutable state: None") — every operation takes an
// explicit *Language value.
type Language struct {
	symbols []string
	ids     map[string]SymbolId
	arities Arities
}

// NewLanguage returns an empty language table.
func NewLanguage() *Language {
	return &Language{ids: map[string]SymbolId{}}
}

// AddSymbol appends name to the language and returns the language for
// chaining, matching the fluent builder idiom used throughout the
// corpus's constructors.
func (l *Language) AddSymbol(name string) *Language {
	id := SymbolId(len(l.symbols))
	l.symbols = append(l.symbols, name)
	l.ids[name] = id
	return l
}

// GetSymbol returns the name for id. Panics if id is out of range: an
// out-of-range SymbolId is a caller bug, not a recoverable condition.
func (l *Language) GetSymbol(id SymbolId) string {
	if int(id) < 0 || int(id) >= len(l.symbols) {
		panic(fmt.Sprintf("lang: unknown SymbolId %d", id))
	}
	return l.symbols[id]
}

// GetId looks up name's id, panicking if name is not present.
func (l *Language) GetId(name string) SymbolId {
	id, ok := l.TryGetId(name)
	if !ok {
		panic(fmt.Sprintf("lang: symbol not present in language: %s", name))
	}
	return id
}

// TryGetId looks up name's id without panicking.
func (l *Language) TryGetId(name string) (SymbolId, bool) {
	id, ok := l.ids[name]
	return id, ok
}

// SymbolCount returns the number of symbols in the language.
func (l *Language) SymbolCount() int { return len(l.symbols) }

// Arities returns the language's arity table.
func (l *Language) Arities() *Arities { return &l.arities }

// SetArities replaces the language's arity table.
func (l *Language) SetArities(a Arities) { l.arities = a }

// Arities maps SymbolIds to their allowed child counts. A symbol absent
// from the table has no declared arities: Get returns nil, GetFirst
// reports false, and HasArity is false for every n.
type Arities struct {
	m map[SymbolId][]int
}

// NewArities returns an empty Arities table.
func NewArities() Arities { return Arities{m: map[SymbolId][]int{}} }

// Set records the allowed arities for a symbol.
func (a *Arities) Set(id SymbolId, arities []int) {
	if a.m == nil {
		a.m = map[SymbolId][]int{}
	}
	a.m[id] = arities
}

// Get returns the allowed arities for id, or nil if undeclared.
func (a *Arities) Get(id SymbolId) []int {
	return a.m[id]
}

// GetFirst returns the first declared arity for id, or (0, false) if
// undeclared.
func (a *Arities) GetFirst(id SymbolId) (int, bool) {
	v, ok := a.m[id]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

// HasArity reports whether n is among id's declared arities.
func (a *Arities) HasArity(id SymbolId, n int) bool {
	for _, v := range a.m[id] {
		if v == n {
			return true
		}
	}
	return false
}

// ErrBadArity is returned by term construction helpers when a symbol is
// applied with an arity its declared arity set forbids (spec §7 "Shape
// error").
type ErrBadArity struct {
	Symbol SymbolId
	Arity  int
}

func (e *ErrBadArity) Error() string {
	return fmt.Sprintf("lang: symbol %d applied with arity %d, which is not declared", e.Symbol, e.Arity)
}

// NewSymbolTerm builds a SymbolTerm, checking it against arities when the
// symbol has a declared arity set. If arities is nil, or the symbol has
// no declared set, the arity is tolerated unchecked (spec §7: "rejected
// at term construction where arities are known; otherwise tolerated").
func NewSymbolTerm(id SymbolId, children []Term, arities *Arities) (Term, error) {
	if arities != nil {
		if decl := arities.Get(id); decl != nil && !arities.HasArity(id, len(children)) {
			return nil, &ErrBadArity{Symbol: id, Arity: len(children)}
		}
	}
	return SymbolTerm{ID: id, Children: children}, nil
}
