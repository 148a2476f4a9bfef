package imaging

// ClipShape is the shape half of a layer clip: either the fill region of a
// path-like shape under a fill rule, or the outline of a stroke over that
// shape (stroked at strokeFlattenTolerance, then filled NonZero).
type ClipShape interface {
	isClipShape()
}

// FillClip clips to the fill region of Path under Rule.
type FillClip struct {
	Path PathId
	Rule FillRule
}

func (FillClip) isClipShape() {}

// StrokeClip clips to the stroked outline of Path under Style.
type StrokeClip struct {
	Path  PathId
	Style StrokeStyle
}

func (StrokeClip) isClipShape() {}

// LayerOp describes one PushLayer call: zero or more of clip, filter,
// blend, and opacity. A layer with all four absent is a no-op layer — it
// still must be balanced by a PopLayer, but a backend may choose not to
// push any of its own native layers for it.
type LayerOp struct {
	Clip    ClipShape
	Filter  FilterDesc
	Blend   *BlendMode
	Opacity *float64
}

// IsNoOp reports whether the layer has no clip, filter, blend, or opacity
// — i.e. PushLayer/PopLayer should bracket zero backend layer pushes.
func (l LayerOp) IsNoOp() bool {
	return l.Clip == nil && l.Filter == nil && l.Blend == nil && l.Opacity == nil
}

// StateOp is a closed union of state-machine mutations: transform,
// paint-transform, layer push/pop, current paint, current stroke, and
// current fill rule.
type StateOp interface {
	isStateOp()
}

// SetTransform replaces the current transform (CTM).
type SetTransform struct{ Transform Affine }

func (SetTransform) isStateOp() {}

// SetPaintTransform replaces the current paint transform, used to place
// brushes independently of the CTM (e.g. a gradient fixed to an object's
// own local space under an animated CTM).
type SetPaintTransform struct{ Transform Affine }

func (SetPaintTransform) isStateOp() {}

// PushLayer begins a new layer scope, described by op.
type PushLayer struct{ Layer LayerOp }

func (PushLayer) isStateOp() {}

// PopLayer ends the innermost open layer scope. Calling it with no open
// scope is a programmer error (spec.md §7): backends abort.
type PopLayer struct{}

func (PopLayer) isStateOp() {}

// SetPaint replaces the current paint handle.
type SetPaint struct{ Paint PaintId }

func (SetPaint) isStateOp() {}

// SetStroke replaces the current stroke style.
type SetStroke struct{ Style StrokeStyle }

func (SetStroke) isStateOp() {}

// SetFillRule replaces the current fill rule.
type SetFillRule struct{ Rule FillRule }

func (SetFillRule) isStateOp() {}

// DrawOp is a closed union of draw commands, applied with the current
// transform, paint, stroke, and fill rule.
type DrawOp interface {
	isDrawOp()
}

// FillPath fills Path under the current paint and fill rule.
type FillPath struct{ Path PathId }

func (FillPath) isDrawOp() {}

// StrokePath strokes Path under the current paint and stroke style.
type StrokePath struct{ Path PathId }

func (StrokePath) isDrawOp() {}

// FillRect fills Rect under the current paint and fill rule.
type FillRect struct{ Rect RectF }

func (FillRect) isDrawOp() {}

// StrokeRect strokes Rect under the current paint and stroke style.
type StrokeRect struct{ Rect RectF }

func (StrokeRect) isDrawOp() {}

// DrawImage draws Image with a per-draw transform composed with the CTM.
type DrawImage struct {
	Image     ImageId
	Transform Affine
	Sampler   Sampler
}

func (DrawImage) isDrawOp() {}

// DrawImageRect maps Src (image-pixel coordinates; used only when HasSrc
// is true, otherwise the full image is used) onto Dst (local coordinates).
type DrawImageRect struct {
	Image   ImageId
	HasSrc  bool
	Src     RectF
	Dst     RectF
	Sampler Sampler
}

func (DrawImageRect) isDrawOp() {}

// DrawPicture replays Picture's RecordedOps, applying Transform as the
// outer transform over every embedded SetTransform.
type DrawPicture struct {
	Picture   PictureId
	Transform Affine
}

func (DrawPicture) isDrawOp() {}

// ImagingOp is the tagged union of StateOp and DrawOp emitted into a
// backend and, while recording, appended to the recording buffer. Go
// lacks a native sum type; StateKind/DrawKind wrap the two branches so a
// single slice of ImagingOp can hold both without an `any`-typed blob that
// would let foreign types slip in.
type ImagingOp interface {
	isImagingOp()
}

// StateKind wraps a StateOp as an ImagingOp.
type StateKind struct{ Op StateOp }

func (StateKind) isImagingOp() {}

// DrawKind wraps a DrawOp as an ImagingOp.
type DrawKind struct{ Op DrawOp }

func (DrawKind) isImagingOp() {}
