package unionfind

import "testing"

type noopData struct{}

func (noopData) Merge(noopData) noopData { return noopData{} }

type countData int

func (c countData) Merge(other countData) countData { return c + other }

func TestAddAndSize(t *testing.T) {
	uf := New[noopData]()
	uf.Add(noopData{})
	uf.Add(noopData{})
	uf.Add(noopData{})

	if uf.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", uf.Size())
	}
}

func TestUnionAndFind(t *testing.T) {
	uf := New[noopData]()
	for i := 0; i < 4; i++ {
		uf.Add(noopData{})
	}
	uf.Union(0, 2)
	uf.Union(3, 1)
	uf.Union(1, 0)

	if uf.Find(0) != uf.Find(1) || uf.Find(0) != uf.Find(2) || uf.Find(0) != uf.Find(3) {
		t.Fatalf("expected all four ids in one set")
	}
}

// TestPathCompression mirrors spec scenario 1: add(()) x3; union(0,1);
// union(1,2); find(0) must leave position 0 pointing directly at 2.
func TestPathCompression(t *testing.T) {
	uf := New[noopData]()
	for i := 0; i < 3; i++ {
		uf.Add(noopData{})
	}
	uf.Union(0, 1)
	uf.Union(1, 2)

	if got := uf.parentOf(0); got != 1 {
		t.Fatalf("before compression, parentOf(0) = %d, want 1", got)
	}

	canon := uf.Find(0)
	if canon != 2 {
		t.Fatalf("Find(0) = %d, want 2", canon)
	}
	if got := uf.parentOf(0); got != 2 {
		t.Fatalf("after Find, parentOf(0) = %d, want 2 (grandparent)", got)
	}
}

func TestUnionRightWins(t *testing.T) {
	uf := New[noopData]()
	a := uf.Add(noopData{})
	b := uf.Add(noopData{})

	canon := uf.Union(a, b)
	if canon != b {
		t.Fatalf("Union(a, b) canonical id = %d, want b = %d", canon, b)
	}
}

func TestUnionNoOpWhenAlreadyConnected(t *testing.T) {
	uf := New[noopData]()
	a := uf.Add(noopData{})
	b := uf.Add(noopData{})
	uf.Union(a, b)

	before := uf.Find(a)
	uf.Union(b, a)
	after := uf.Find(a)

	if before != after {
		t.Fatalf("redundant union changed canonical id: %d -> %d", before, after)
	}
}

func TestDataMergesOnUnion(t *testing.T) {
	uf := New[countData]()
	a := uf.Add(countData(1))
	b := uf.Add(countData(2))
	c := uf.Add(countData(3))

	uf.Union(a, b)
	canon := uf.Union(b, c)

	if got := uf.Data(canon); got != 6 {
		t.Fatalf("Data(canon) = %d, want 6", got)
	}
	// Every member must see the same merged data through its canonical id.
	if uf.Data(a) != 6 || uf.Data(b) != 6 {
		t.Fatalf("non-canonical members disagree on merged data")
	}
}

func TestConnected(t *testing.T) {
	uf := New[noopData]()
	a := uf.Add(noopData{})
	b := uf.Add(noopData{})
	c := uf.Add(noopData{})
	uf.Union(a, b)

	if !uf.Connected(a, b) {
		t.Fatalf("expected a and b connected")
	}
	if uf.Connected(a, c) {
		t.Fatalf("expected a and c not connected")
	}
}

func TestFindUnknownIdPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown SetId")
		}
	}()
	uf := New[noopData]()
	uf.Find(0)
}
