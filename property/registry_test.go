package property

import "testing"

func TestRegisterAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := Register(r, "a", NewMetadataBuilder(1))
	b := Register(r, "b", NewMetadataBuilder("x"))
	if a.ID() != 0 || b.ID() != 1 {
		t.Fatalf("expected sequential ids, got %d %d", a.ID(), b.ID())
	}
}

func TestDefaultReturnsRegisteredDefault(t *testing.T) {
	r := NewRegistry()
	p := Register(r, "opacity", NewMetadataBuilder(1.0))
	if got := Default(r, p); got != 1.0 {
		t.Fatalf("default = %v, want 1.0", got)
	}
}

func TestGetMetadataRejectsForeignID(t *testing.T) {
	r := NewRegistry()
	p := Register(r, "width", NewMetadataBuilder(0))
	fake := Property[string]{}
	// Same numeric ID (0) as p but a different type parameter: must not
	// resolve since the stored default does not downcast to string.
	_ = p
	if _, ok := GetMetadata(r, fake); ok {
		t.Fatal("expected type-mismatched property to fail metadata lookup")
	}
}

func TestMustMetadataPanicsOnUnregistered(t *testing.T) {
	r := NewRegistry()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered property")
		}
	}()
	MustMetadata(r, Property[int]{})
}

func TestCoerceClampsStoredValue(t *testing.T) {
	r := NewRegistry()
	p := Register(r, "opacity", NewMetadataBuilder(1.0).Coerce(func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}))
	s := NewStore[uint32](1)
	SetLocalNotifying(s, r, p, 5.0)
	got, _ := GetLocal(s, p)
	if got != 1.0 {
		t.Fatalf("expected coerced value 1.0, got %v", got)
	}
}

func TestOnChangedReceivesOldAndNew(t *testing.T) {
	r := NewRegistry()
	var gotOld *int
	var gotNew int
	p := Register(r, "count", NewMetadataBuilder(0).OnChanged(func(old *int, new int) {
		gotOld = old
		gotNew = new
	}))
	s := NewStore[uint32](1)
	SetLocalNotifying(s, r, p, 3)
	if gotOld != nil {
		t.Fatalf("expected nil old on first set, got %v", *gotOld)
	}
	if gotNew != 3 {
		t.Fatalf("expected new=3, got %d", gotNew)
	}
	SetLocalNotifying(s, r, p, 7)
	if gotOld == nil || *gotOld != 3 {
		t.Fatalf("expected old=3 on second set, got %v", gotOld)
	}
	if gotNew != 7 {
		t.Fatalf("expected new=7, got %d", gotNew)
	}
}
