package imaging

import "testing"

func TestLayerOpIsNoOpOnlyWhenAllFourAbsent(t *testing.T) {
	if !(LayerOp{}).IsNoOp() {
		t.Fatal("expected the zero-value layer to be a no-op")
	}
	opacity := 0.5
	if (LayerOp{Opacity: &opacity}).IsNoOp() {
		t.Fatal("expected a layer with opacity set to not be a no-op")
	}
	if (LayerOp{Filter: FloodFilter{}}).IsNoOp() {
		t.Fatal("expected a layer with a filter to not be a no-op")
	}
}

func TestScaledByFilterAppliesLinearBlock(t *testing.T) {
	ctm := Scale(2, 3)
	scaled := ScaledBy(BlurFilter{SigmaX: 1, SigmaY: 1}, ctm).(BlurFilter)
	if scaled.SigmaX != 2 || scaled.SigmaY != 3 {
		t.Fatalf("expected sigma scaled by (2,3), got (%v,%v)", scaled.SigmaX, scaled.SigmaY)
	}
}

func TestScaledByFloodIsUnaffected(t *testing.T) {
	ctm := Scale(2, 3)
	out := ScaledBy(FloodFilter{Color: Color{R: 1}}, ctm).(FloodFilter)
	if out.Color.R != 1 {
		t.Fatal("expected flood filter to pass through unchanged")
	}
}
