package proptween

import (
	"testing"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"understory/dirty"
	"understory/property"
)

type point struct{ X, Y float64 }

func TestGroupWritesCombinedValueAndMarksDirty(t *testing.T) {
	paint := dirty.NewChannel(0)
	r := property.NewRegistry()
	pos := property.Register(r, "position", property.NewMetadataBuilder(point{}).AffectsChannels(paint.IntoSet()))

	store := property.NewStore[uint32](1)
	ds := dirty.NewSet[uint32]()

	combine := func(c [4]float32) point { return point{X: float64(c[0]), Y: float64(c[1])} }
	g := NewGroup[uint32, point](1, pos, combine,
		gween.New(0, 10, 1, ease.Linear),
		gween.New(0, 20, 1, ease.Linear),
	)

	g.Update(0.5, store, r, ds)

	got, ok := property.GetAnimation(store, pos)
	if !ok {
		t.Fatal("expected an animation value to be stored")
	}
	if got.X != 5 || got.Y != 10 {
		t.Fatalf("expected halfway point {5,10}, got %+v", got)
	}
	if !ds.IsDirty(1, paint) {
		t.Fatal("expected target marked dirty on the paint channel")
	}
}

func TestGroupStopsUpdatingOnceDone(t *testing.T) {
	r := property.NewRegistry()
	alpha := property.Register(r, "alpha", property.NewMetadataBuilder(1.0))
	store := property.NewStore[uint32](1)
	ds := dirty.NewSet[uint32]()

	combine := func(c [4]float32) float64 { return float64(c[0]) }
	g := NewGroup[uint32, float64](1, alpha, combine, gween.New(1, 0, 1, ease.Linear))

	g.Update(1, store, r, ds)
	if !g.Done {
		t.Fatal("expected the group to be done after the tween's full duration")
	}
	got, _ := property.GetAnimation(store, alpha)
	ds.Unmark(1, dirty.NewChannel(0))

	g.Update(1, store, r, ds)
	stillGot, _ := property.GetAnimation(store, alpha)
	if stillGot != got {
		t.Fatal("expected no further writes once Done")
	}
	if ds.HasDirty(dirty.NewChannel(0)) {
		t.Fatal("expected no dirty marks once Done")
	}
}

func TestNewGroupPanicsOnInvalidTweenCount(t *testing.T) {
	r := property.NewRegistry()
	alpha := property.Register(r, "alpha", property.NewMetadataBuilder(0.0))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero tweens")
		}
	}()
	NewGroup[uint32, float64](1, alpha, func(c [4]float32) float64 { return 0 })
}
