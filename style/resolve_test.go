package style

import (
	"testing"

	"understory/property"
)

type resolveFixture struct {
	registry *property.Registry
	stores   map[uint32]*property.Store[uint32]
	parents  map[uint32]uint32
}

func newResolveFixture(r *property.Registry) *resolveFixture {
	return &resolveFixture{registry: r, stores: map[uint32]*property.Store[uint32]{}, parents: map[uint32]uint32{}}
}

func (f *resolveFixture) storeFor(key uint32) *property.Store[uint32] {
	s, ok := f.stores[key]
	if !ok {
		s = property.NewStore[uint32](key)
		f.stores[key] = s
	}
	return s
}

func (f *resolveFixture) lookupParent(key uint32) (uint32, bool) {
	p, ok := f.parents[key]
	return p, ok
}

func (f *resolveFixture) lookupStore(key uint32) (*property.Store[uint32], bool) {
	s, ok := f.stores[key]
	return s, ok
}

func (f *resolveFixture) cx() ResolveCx[uint32] {
	return ResolveCx[uint32]{Registry: f.registry, Parent: f.lookupParent, Stores: f.lookupStore}
}

// Full precedence chain: Animation > Local > cascade > inherited > default.
func TestResolvePrecedenceChain(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("default").Inherits(true))
	f := newResolveFixture(r)
	f.parents[2] = 1

	emptyCascade := NewStyleCascadeBuilder().Build()

	// 1. Nothing set anywhere: default wins.
	if got := GetValue(f.cx(), uint32(2), SelectorInputs{}, emptyCascade, color); got != "default" {
		t.Fatalf("expected default, got %v", got)
	}

	// 2. Ancestor sets a local value: inherited wins over default.
	property.SetLocal(f.storeFor(1), color, "from-ancestor")
	if got := GetValue(f.cx(), uint32(2), SelectorInputs{}, emptyCascade, color); got != "from-ancestor" {
		t.Fatalf("expected inherited value, got %v", got)
	}

	// 3. A cascade style applies: cascade wins over inherited.
	styled := NewStyleBuilder()
	Set(styled, color, "from-cascade")
	cascade := NewStyleCascadeBuilder().Push(OriginUser, styled.Build()).Build()
	if got := GetValue(f.cx(), uint32(2), SelectorInputs{}, cascade, color); got != "from-cascade" {
		t.Fatalf("expected cascade value, got %v", got)
	}

	// 4. Object's own Local wins over cascade.
	property.SetLocal(f.storeFor(2), color, "own-local")
	if got := GetValue(f.cx(), uint32(2), SelectorInputs{}, cascade, color); got != "own-local" {
		t.Fatalf("expected local value, got %v", got)
	}

	// 5. Animation wins over Local.
	property.SetAnimation(f.storeFor(2), color, "own-animation")
	if got := GetValue(f.cx(), uint32(2), SelectorInputs{}, cascade, color); got != "own-animation" {
		t.Fatalf("expected animation value, got %v", got)
	}
}

func TestResolveNonInheritingPropertySkipsAncestors(t *testing.T) {
	r := property.NewRegistry()
	width := property.Register(r, "width", property.NewMetadataBuilder(10)) // inherits=false
	f := newResolveFixture(r)
	f.parents[2] = 1
	property.SetLocal(f.storeFor(1), width, 99)

	got := GetValue(f.cx(), uint32(2), SelectorInputs{}, NewStyleCascadeBuilder().Build(), width)
	if got != 10 {
		t.Fatalf("expected default for non-inheriting property, got %v", got)
	}
}

// An ancestor's Animation value must win both over that same ancestor's own
// Local value and over a more distant ancestor's Local value, since the
// inheritance walk checks Animation before Local at every ancestor.
func TestResolveInheritancePrefersAncestorAnimationOverLocal(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("default").Inherits(true))
	f := newResolveFixture(r)
	f.parents[3] = 2
	f.parents[2] = 1
	property.SetLocal(f.storeFor(1), color, "from-root-local")
	property.SetLocal(f.storeFor(2), color, "from-parent-local")
	property.SetAnimation(f.storeFor(2), color, "from-parent-animation")

	got := GetValue(f.cx(), uint32(3), SelectorInputs{}, NewStyleCascadeBuilder().Build(), color)
	if got != "from-parent-animation" {
		t.Fatalf("expected ancestor's animation value, got %v", got)
	}
}

func TestResolveWithThemeConsultsThemeBeforeInheritance(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("default").Inherits(true))
	f := newResolveFixture(r)
	f.parents[2] = 1
	property.SetLocal(f.storeFor(1), color, "from-ancestor")

	theme := NewThemeBuilder()
	SetResource(theme, ResourceKey(1), "from-theme")
	cx := f.cx()
	cx.Theme = theme.Build()

	got := GetValueWithTheme(cx, uint32(2), SelectorInputs{}, NewStyleCascadeBuilder().Build(), color, ResourceKey(1))
	if got != "from-theme" {
		t.Fatalf("expected theme value to win over inheritance, got %v", got)
	}
}

func TestResolveRefAliasesUnderlyingStorage(t *testing.T) {
	r := property.NewRegistry()
	width := property.Register(r, "width", property.NewMetadataBuilder(0))
	f := newResolveFixture(r)
	property.SetLocal(f.storeFor(1), width, 42)

	ref := GetValueRef(f.cx(), uint32(1), SelectorInputs{}, NewStyleCascadeBuilder().Build(), width)
	if *ref != 42 {
		t.Fatalf("expected 42, got %d", *ref)
	}
}
