package property

import (
	"testing"

	"understory/dirty"
)

type fakeTree struct {
	parents map[uint32]uint32
	stores  map[uint32]*Store[uint32]
}

func newFakeTree() *fakeTree {
	return &fakeTree{parents: map[uint32]uint32{}, stores: map[uint32]*Store[uint32]{}}
}

func (f *fakeTree) lookup(key uint32) (uint32, bool) {
	p, ok := f.parents[key]
	return p, ok
}

func (f *fakeTree) store(key uint32) (*Store[uint32], bool) {
	s, ok := f.stores[key]
	return s, ok
}

func (f *fakeTree) storeFor(key uint32) *Store[uint32] {
	s, ok := f.stores[key]
	if !ok {
		s = NewStore[uint32](key)
		f.stores[key] = s
	}
	return s
}

// grandparent(1) -> parent(2) -> child(3); only grandparent sets a local
// color value. Inherited lookup from child must find it.
func TestWalkInheritedFindsAncestorValue(t *testing.T) {
	r := NewRegistry()
	color := Register(r, "color", NewMetadataBuilder("black").Inherits(true))

	tree := newFakeTree()
	tree.parents[3] = 2
	tree.parents[2] = 1
	SetLocal(tree.storeFor(1), color, "red")

	got, ok := WalkInherited(uint32(3), color, tree.lookup, tree.store)
	if !ok || got != "red" {
		t.Fatalf("WalkInherited = %v, %v; want red, true", got, ok)
	}
}

func TestWalkInheritedPrefersClosestAncestor(t *testing.T) {
	r := NewRegistry()
	color := Register(r, "color", NewMetadataBuilder("black").Inherits(true))

	tree := newFakeTree()
	tree.parents[3] = 2
	tree.parents[2] = 1
	SetLocal(tree.storeFor(1), color, "red")
	SetLocal(tree.storeFor(2), color, "blue")

	got, ok := WalkInherited(uint32(3), color, tree.lookup, tree.store)
	if !ok || got != "blue" {
		t.Fatalf("expected closest ancestor's value blue, got %v, %v", got, ok)
	}
}

func TestWalkInheritedReturnsFalseAtRootWithNoValue(t *testing.T) {
	r := NewRegistry()
	color := Register(r, "color", NewMetadataBuilder("black").Inherits(true))
	tree := newFakeTree()
	tree.parents[2] = 1

	_, ok := WalkInherited(uint32(2), color, tree.lookup, tree.store)
	if ok {
		t.Fatal("expected no inherited value when no ancestor has one")
	}
}

// grandparent(1) -> parent(2) -> child(3): parent has both a Local value
// and an Animation value; the Animation value must win at that ancestor.
func TestWalkInheritedPrefersAncestorAnimationOverAncestorLocal(t *testing.T) {
	r := NewRegistry()
	color := Register(r, "color", NewMetadataBuilder("black").Inherits(true))

	tree := newFakeTree()
	tree.parents[3] = 2
	tree.parents[2] = 1
	SetLocal(tree.storeFor(1), color, "red")
	SetLocal(tree.storeFor(2), color, "blue")
	SetAnimation(tree.storeFor(2), color, "green")

	got, ok := WalkInherited(uint32(3), color, tree.lookup, tree.store)
	if !ok || got != "green" {
		t.Fatalf("expected ancestor's animation value green, got %v, %v", got, ok)
	}
}

// A more distant ancestor's Local value must not beat a closer ancestor's
// Animation value.
func TestWalkInheritedAncestorAnimationBeatsMoreDistantLocal(t *testing.T) {
	r := NewRegistry()
	color := Register(r, "color", NewMetadataBuilder("black").Inherits(true))

	tree := newFakeTree()
	tree.parents[3] = 2
	tree.parents[2] = 1
	SetLocal(tree.storeFor(1), color, "from-root-local")
	SetAnimation(tree.storeFor(2), color, "from-parent-animation")

	got, ok := WalkInherited(uint32(3), color, tree.lookup, tree.store)
	if !ok || got != "from-parent-animation" {
		t.Fatalf("expected closer ancestor's animation value to beat a more distant ancestor's local value, got %v, %v", got, ok)
	}
}

func TestWalkInheritedRefAliasesAncestorStorage(t *testing.T) {
	r := NewRegistry()
	width := Register(r, "width", NewMetadataBuilder(0))
	tree := newFakeTree()
	tree.parents[2] = 1
	SetLocal(tree.storeFor(1), width, 7)

	ref, ok := WalkInheritedRef(uint32(2), width, tree.lookup, tree.store)
	if !ok || *ref != 7 {
		t.Fatalf("WalkInheritedRef = %v, %v; want 7, true", ref, ok)
	}
}

func TestSetLocalNotifyingReturnsAffectedChannels(t *testing.T) {
	r := NewRegistry()
	paint := dirty.NewChannel(1)
	bg := Register(r, "background", NewMetadataBuilder("white").AffectsChannels(paint.IntoSet()))
	s := NewStore[uint32](1)

	cs := SetLocalNotifying(s, r, bg, "red")
	if !cs.Contains(paint) {
		t.Fatalf("expected affected set to contain paint channel, got %v", cs)
	}
	got, _ := GetLocal(s, bg)
	if got != "red" {
		t.Fatalf("expected stored value red, got %v", got)
	}
}
