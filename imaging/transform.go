package imaging

// TransformClass classifies how conservatively two transforms differ,
// forming a total order Exact < TranslateOnly < Orthonormal < Affine.
// Orthonormal is reserved for future refinement per spec.md §4.10: the
// classifier below never produces it, but the lattice carries the slot so
// a future, more precise classifier slots in without changing callers'
// Supports checks.
type TransformClass int

const (
	Exact TransformClass = iota
	TranslateOnly
	Orthonormal
	Affine2D
)

// Supports reports whether a cached artifact valid under the receiver
// remains usable after a transform difference classified as diff: true
// iff diff <= self in the lattice order above.
func (self TransformClass) Supports(diff TransformClass) bool {
	return diff <= self
}

// TransformDiffClass classifies how current differs from original:
// identical coefficients is Exact, a shared linear block with any
// translation is TranslateOnly, anything else is Affine2D.
func TransformDiffClass(original, current Affine) TransformClass {
	if original == current {
		return Exact
	}
	if sameLinearBlock(original, current) {
		return TranslateOnly
	}
	return Affine2D
}
