// Package external documents the contracts Understory's core consumes
// from, or exposes to, collaborators that sit outside the reactive
// substrate entirely: a spatial index, layout, and text shaping.
// Understory ships no implementation of these — spec.md places them
// explicitly out of scope — but the interfaces are declared here so a
// host application has a single place to implement against. The
// renderer contract (imaging.ImagingBackend) is declared in package
// imaging, not here.
package external

import "understory/imaging"

// SpatialKey identifies one entry in a spatial index. The index itself is
// opaque to Understory: imaging has no direct dependency on it, and the
// reactive core never queries it. A host wires its own object keys to
// SpatialKey.
type SpatialKey uint64

// SpatialRect is an axis-aligned rectangle in whatever coordinate space
// the index operates in (typically a layout-resolved screen/world space,
// not the imaging IR's local space).
type SpatialRect = imaging.RectF

// SpatialIndex provides commit/query/update for keyed axis-aligned
// rectangles — the box-tree (grid/R-tree/BVH-backed) index spec.md places
// out of scope. A host typically drives this from its own layout pass,
// not from Understory directly.
type SpatialIndex interface {
	Insert(key SpatialKey, rect SpatialRect)
	Update(key SpatialKey, rect SpatialRect)
	Remove(key SpatialKey)
	Query(region SpatialRect) []SpatialKey
}

// LayoutEngine is the Taffy-style layout adapter contract: given a tree of
// layout inputs, it returns a resolved rect per node. Understory's
// property store can supply an object's styled layout-affecting
// properties as that tree's per-node input, but computing the tree itself
// is out of scope.
type LayoutEngine[K comparable] interface {
	Resolve(root K) map[K]SpatialRect
}

// TextShaper lowers a run of text plus font/style parameters to a
// positioned glyph run (and, where applicable, COLR color-glyph layers)
// ready for an ImagingBackend to draw as a sequence of filled paths or
// images. Understory's core never shapes text itself.
type TextShaper interface {
	Shape(text string, font FontHandle, sizePx float64) GlyphRun
}

// FontHandle is an opaque handle into a font-loading collaborator's own
// registry; Understory never inspects it.
type FontHandle uint32

// GlyphRun is the shaped output of a TextShaper: one path/image draw per
// glyph, already positioned in local coordinates.
type GlyphRun struct {
	Glyphs []PositionedGlyph
}

// PositionedGlyph is one shaped glyph ready to draw, either as a filled
// path (the common case) or, for a color glyph, a picture replay.
type PositionedGlyph struct {
	Transform imaging.Affine
	Path      imaging.PathId
	HasPath   bool
	Picture   imaging.PictureId
	HasColor  bool
}
