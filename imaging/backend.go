package imaging

// ResourceBackend owns the slot tables for the four resource domains.
// Create allocates a fresh opaque handle; Destroy may be lazy, but a
// freed handle must never be silently reused to retarget a live
// reference. Implementations are external to the core (spec.md §6); this
// package only declares the contract.
type ResourceBackend interface {
	CreatePath(subpath PathData) PathId
	DestroyPath(id PathId)

	CreateImage(pixels ImagePixels) ImageId
	DestroyImage(id ImageId)

	CreatePaint(brush Brush) PaintId
	DestroyPaint(id PaintId)

	CreatePicture(rec RecordedOps) PictureId
	DestroyPicture(id PictureId)
}

// PathData is the backend-defined geometry payload behind a PathId. The
// core never inspects it; a shared stroke/path-geometry library is
// assumed across backends per spec.md §6.
type PathData any

// ImagePixels is the backend-defined pixel payload behind an ImageId.
type ImagePixels any

// ImagingBackend is required of renderers: apply StateOp/DrawOp
// immediately to the backend's output, and, while a recording is active,
// append a copy of each to the recording buffer.
type ImagingBackend interface {
	State(op StateOp)
	Draw(op DrawOp)

	// BeginRecord starts capture. Only one recording may be active on a
	// backend at a time; nested recordings are not required to work.
	BeginRecord()
	// EndRecord seals the buffer captured since BeginRecord into a
	// RecordedOps.
	EndRecord() RecordedOps
}

// WithLayer pushes layer, runs body, and pops it — the convenience helper
// spec.md §6 calls for, defined purely in terms of State.
func WithLayer(b ImagingBackend, layer LayerOp, body func()) {
	b.State(PushLayer{Layer: layer})
	body()
	b.State(PopLayer{})
}

// WithClipPath is WithLayer specialized to a fill clip under
// FillRuleNonZero.
func WithClipPath(b ImagingBackend, path PathId, body func()) {
	WithLayer(b, LayerOp{Clip: FillClip{Path: path, Rule: FillRuleNonZero}}, body)
}

// WithOpacity is WithLayer specialized to an opacity-only layer.
func WithOpacity(b ImagingBackend, opacity float64, body func()) {
	WithLayer(b, LayerOp{Opacity: &opacity}, body)
}
