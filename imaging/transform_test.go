package imaging

import (
	"math"
	"testing"
)

func TestTransformDiffClassIdentityIsExact(t *testing.T) {
	cases := []Affine{Identity, Translate(3, 4), Rotate(1.2), Scale(2, 0.5)}
	for _, tr := range cases {
		if got := TransformDiffClass(tr, tr); got != Exact {
			t.Fatalf("TransformDiffClass(T,T) = %v, want Exact", got)
		}
	}
}

func TestTransformDiffClassTranslationOnly(t *testing.T) {
	base := Rotate(0.3)
	moved := base.Then(Translate(5, 0))
	if got := TransformDiffClass(base, moved); got != TranslateOnly {
		t.Fatalf("TransformDiffClass = %v, want TranslateOnly", got)
	}
}

func TestTransformDiffClassOtherwiseAffine(t *testing.T) {
	base := Identity
	rotated := Rotate(math.Pi / 4)
	if got := TransformDiffClass(base, rotated); got != Affine2D {
		t.Fatalf("TransformDiffClass = %v, want Affine2D", got)
	}
}

func TestSupportsHoldsForEveryClassAgainstExact(t *testing.T) {
	classes := []TransformClass{Exact, TranslateOnly, Orthonormal, Affine2D}
	for _, c := range classes {
		if !c.Supports(Exact) {
			t.Fatalf("%v.Supports(Exact) = false, want true", c)
		}
	}
}

// Scenario 6: a recording claiming valid_under=TranslateOnly, original
// CTM=I. Replay at translate(5,0): reusable. Replay at rotate(pi/4): not.
func TestPictureTransformValidityScenario(t *testing.T) {
	rec := RecordedOps{
		Acceleration:   "fake-native-scene",
		ValidUnder:     TranslateOnly,
		OriginalCTM:    Identity,
		HasOriginalCTM: true,
	}

	if !rec.CanReuse(Translate(5, 0)) {
		t.Fatal("expected translate-only replay to reuse the acceleration")
	}
	if rec.CanReuse(Rotate(math.Pi / 4)) {
		t.Fatal("expected a rotation to fall back to IR replay")
	}
}

func TestCanReuseFalseWithoutAcceleration(t *testing.T) {
	rec := RecordedOps{ValidUnder: Affine2D, OriginalCTM: Identity, HasOriginalCTM: true}
	if rec.CanReuse(Translate(1, 1)) {
		t.Fatal("expected no reuse without an acceleration token")
	}
}
