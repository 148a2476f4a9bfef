// Package ebitenimaging is a reference imaging.ImagingBackend over
// *ebiten.Image, generalizing the teacher's Scene/batch/render/mesh/filter
// pipeline (which drew willow.Node trees) into a backend that instead
// drives understory/imaging's StateOp/DrawOp stream directly. It keeps
// the teacher's render-texture pooling, Kawase blur, and Kage-shader
// filter techniques; it replaces "walk a Node tree and batch commands"
// with "apply one ImagingOp at a time against an explicit state machine",
// since understory's core has already flattened drawing into that
// stream by the time a backend sees it.
package ebitenimaging

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"understory/imaging"
)

// layerFrame is one entry on the push/pop layer stack. noop layers (an
// empty LayerOp — spec.md's "pushing a layer with everything absent
// still consumes a matching PopLayer") keep the stack balanced without
// allocating an offscreen target.
type layerFrame struct {
	layer  imaging.LayerOp
	noop   bool
	target *ebiten.Image // nil for a noop frame
	parent *ebiten.Image // target to composite back onto at pop
}

// Backend is a concrete imaging.ImagingBackend drawing into a root
// *ebiten.Image. It owns the CTM/paint-transform/paint/stroke/fill-rule
// state a StateOp stream mutates, the push/pop layer stack, and the
// Recorder mixin understory/imaging provides for BeginRecord/EndRecord.
type Backend struct {
	imaging.Recorder

	Resources *Resources

	root   *ebiten.Image
	target *ebiten.Image
	pool   texturePool
	log    *zap.SugaredLogger

	ctm            imaging.Affine
	paintTransform imaging.Affine
	paint          imaging.PaintId
	hasPaint       bool
	stroke         imaging.StrokeStyle
	fillRule       imaging.FillRule

	layers []layerFrame
}

// New builds a Backend drawing into root, logging missing/destroyed
// resource references at Warn via log.
func New(root *ebiten.Image, log *zap.SugaredLogger) *Backend {
	return &Backend{
		Resources:      NewResources(log),
		root:           root,
		target:         root,
		log:            log,
		ctm:            imaging.Identity,
		paintTransform: imaging.Identity,
	}
}

// BeginRecord starts capture at the backend's current CTM.
func (b *Backend) BeginRecord() { b.Recorder.BeginRecording(b.ctm) }

// EndRecord seals the recording; the caller (typically via
// imaging.ResourceBackend.CreatePicture) attaches an acceleration token
// if it built one.
func (b *Backend) EndRecord() imaging.RecordedOps { return b.Recorder.EndRecording() }

func (b *Backend) State(op imaging.StateOp) {
	b.Record(imaging.StateKind{Op: op})
	switch v := op.(type) {
	case imaging.SetTransform:
		b.ctm = v.Transform
	case imaging.SetPaintTransform:
		b.paintTransform = v.Transform
	case imaging.SetPaint:
		b.paint = v.Paint
		b.hasPaint = true
	case imaging.SetStroke:
		b.stroke = v.Style
	case imaging.SetFillRule:
		b.fillRule = v.Rule
	case imaging.PushLayer:
		b.pushLayer(v.Layer)
	case imaging.PopLayer:
		b.popLayer()
	}
}

func (b *Backend) Draw(op imaging.DrawOp) {
	b.Record(imaging.DrawKind{Op: op})
	switch v := op.(type) {
	case imaging.FillPath:
		b.drawPath(v.Path, true)
	case imaging.StrokePath:
		b.drawPath(v.Path, false)
	case imaging.FillRect:
		b.drawRect(v.Rect, true)
	case imaging.StrokeRect:
		b.drawRect(v.Rect, false)
	case imaging.DrawImage:
		b.drawImage(v)
	case imaging.DrawImageRect:
		b.drawImageRect(v)
	case imaging.DrawPicture:
		b.drawPicture(v)
	}
}

// pushLayer allocates an offscreen render target sized to the root
// canvas when the layer needs compositing (any of clip/filter/blend/
// opacity set), or records a noop frame otherwise — matching spec.md's
// "no-op layer still balances PopLayer" requirement.
func (b *Backend) pushLayer(layer imaging.LayerOp) {
	if layer.IsNoOp() {
		b.layers = append(b.layers, layerFrame{layer: layer, noop: true})
		return
	}

	bounds := b.root.Bounds()
	offscreen := b.pool.Acquire(bounds.Dx(), bounds.Dy())
	offscreen = offscreen.SubImage(bounds).(*ebiten.Image)

	b.layers = append(b.layers, layerFrame{
		layer:  layer,
		target: offscreen,
		parent: b.target,
	})
	b.target = offscreen
}

// popLayer composites the top offscreen target back onto its parent,
// applying the layer's clip, filter, blend mode, and opacity in that
// order, then restores the parent as the current draw target.
func (b *Backend) popLayer() {
	if len(b.layers) == 0 {
		panic("ebitenimaging: PopLayer with no matching PushLayer")
	}
	frame := b.layers[len(b.layers)-1]
	b.layers = b.layers[:len(b.layers)-1]
	if frame.noop {
		return
	}

	content := frame.target
	if frame.layer.Clip != nil {
		content = b.applyClip(content, frame.layer.Clip)
	}
	if frame.layer.Filter != nil {
		scaled := imaging.ScaledBy(frame.layer.Filter, b.ctm)
		filtered := applyFilter(scaled, content, &b.pool)
		if filtered != content {
			b.pool.Release(content)
			content = filtered
		}
	}

	var op ebiten.DrawImageOptions
	alpha := float32(1)
	if frame.layer.Opacity != nil {
		alpha = float32(*frame.layer.Opacity)
	}
	op.ColorScale.Scale(alpha, alpha, alpha, alpha)
	if frame.layer.Blend != nil {
		op.Blend = ebitenBlend(*frame.layer.Blend)
	}

	frame.parent.DrawImage(content, &op)
	b.pool.Release(content)
	b.target = frame.parent
}

// applyClip masks content down to the clip shape's path, drawn as a
// white stencil, then multiplied against content's alpha. Backends with
// real stencil-buffer support would clip during rasterization instead;
// this reference backend keeps it simple and composites post-hoc.
func (b *Backend) applyClip(content *ebiten.Image, clip imaging.ClipShape) *ebiten.Image {
	var pathID imaging.PathId
	switch v := clip.(type) {
	case imaging.FillClip:
		pathID = v.Path
	case imaging.StrokeClip:
		pathID = v.Path
	default:
		return content
	}
	pts, ok := b.Resources.path(pathID)
	if !ok {
		return content
	}
	poly, ok := pts.([]imaging.Point)
	if !ok || len(poly) < 3 {
		return content
	}

	bounds := content.Bounds()
	mask := b.pool.Acquire(bounds.Dx(), bounds.Dy())
	mask = mask.SubImage(bounds).(*ebiten.Image)
	vs, is := polygonFillVertices(poly, imaging.Color{R: 1, G: 1, B: 1, A: 1})
	mask.DrawTriangles(vs, is, whitePixel(), nil)

	out := b.pool.Acquire(bounds.Dx(), bounds.Dy())
	out = out.SubImage(bounds).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	out.DrawImage(content, &op)
	op.Blend = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorZero,
		BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
		BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	}
	out.DrawImage(mask, &op)
	b.pool.Release(mask)
	b.pool.Release(content)
	return out
}

var whitePixelImage *ebiten.Image

// whitePixel is a lazily-initialized 1x1 white pixel, used as the
// texture behind untextured triangle meshes (mirrors the teacher's
// ensureWhitePixel in mesh.go).
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func ebitenBlend(m imaging.BlendMode) ebiten.Blend {
	switch m {
	case imaging.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case imaging.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case imaging.BlendDarken:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationMin,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case imaging.BlendLighten:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationMax,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

func geoM(t imaging.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, t.A)
	g.SetElement(1, 0, t.B)
	g.SetElement(0, 1, t.C)
	g.SetElement(1, 1, t.D)
	g.SetElement(0, 2, t.E)
	g.SetElement(1, 2, t.F)
	return g
}
