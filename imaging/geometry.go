package imaging

import "math"

// Point is a location in local (user-space) coordinates.
type Point struct {
	X, Y float64
}

// RectF is an axis-aligned rectangle in local coordinates, x0<=x1, y0<=y1
// by convention (not enforced — callers may construct inverted rects for
// clipping-to-empty).
type RectF struct {
	X0, Y0, X1, Y1 float64
}

// Width and Height report the rectangle's extents.
func (r RectF) Width() float64  { return r.X1 - r.X0 }
func (r RectF) Height() float64 { return r.Y1 - r.Y0 }

// RoundedRectRadiiF carries the four corner radii of a rounded rectangle,
// in top-left, top-right, bottom-right, bottom-left order.
type RoundedRectRadiiF struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// RoundedRectF is a RectF plus per-corner radii.
type RoundedRectF struct {
	Rect  RectF
	Radii RoundedRectRadiiF
}

// Affine is a 2D affine transform in row-major (kurbo) convention:
//
//	| a c e |   | x |
//	| b d f | * | y |
//	| 0 0 1 |   | 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, D: 1}

// Translate builds a pure translation by (dx, dy).
func Translate(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, E: dx, F: dy}
}

// Rotate builds a pure rotation of theta radians about the origin.
func Rotate(theta float64) Affine {
	c, s := math.Cos(theta), math.Sin(theta)
	return Affine{A: c, B: s, C: -s, D: c}
}

// Scale builds a pure scale transform.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Then composes t followed by outer: the result applies t first, then
// outer (outer * t in matrix-multiplication order).
func (t Affine) Then(outer Affine) Affine {
	return Affine{
		A: outer.A*t.A + outer.C*t.B,
		B: outer.B*t.A + outer.D*t.B,
		C: outer.A*t.C + outer.C*t.D,
		D: outer.B*t.C + outer.D*t.D,
		E: outer.A*t.E + outer.C*t.F + outer.E,
		F: outer.B*t.E + outer.D*t.F + outer.F,
	}
}

// Apply transforms a point.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// LinearScaleAxes returns the magnitude the transform's linear (2x2) block
// applies along the local x and y axes: sqrt(a^2+b^2) and sqrt(c^2+d^2),
// used to scale blur sigma and offset vectors under a CTM per spec.md
// §4.8's filter transform rule.
func (t Affine) LinearScaleAxes() (sx, sy float64) {
	return math.Hypot(t.A, t.B), math.Hypot(t.C, t.D)
}

// sameLinearBlock reports whether two transforms share the same 2x2 linear
// block (differ only in translation, if at all).
func sameLinearBlock(a, b Affine) bool {
	return a.A == b.A && a.B == b.B && a.C == b.C && a.D == b.D
}
