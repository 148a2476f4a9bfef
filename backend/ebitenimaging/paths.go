package ebitenimaging

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"understory/imaging"
)

// brushColor resolves a Brush to a single tint color. SolidBrush is
// rendered exactly; the gradient and image brush kinds fall back to
// their first stop / opaque white with a logged warning, since a full
// gradient rasterizer is a backend-specific concern beyond this
// reference implementation's scope — a production backend would lower
// these to a shader the way the teacher's filter.go lowers color
// matrices to Kage fragment programs.
func (b *Backend) brushColor(id imaging.PaintId) imaging.Color {
	if !b.hasPaint {
		return imaging.Color{A: 1}
	}
	brush, ok := b.Resources.paint(id)
	if !ok {
		return imaging.Color{A: 1}
	}
	switch v := brush.(type) {
	case imaging.SolidBrush:
		return v.Color
	case imaging.LinearGradientBrush:
		b.log.Warnw("gradient brush drawn as its first stop; no gradient rasterizer wired", "kind", "linear")
		if len(v.Stops) > 0 {
			return v.Stops[0].Color
		}
	case imaging.RadialGradientBrush:
		b.log.Warnw("gradient brush drawn as its first stop; no gradient rasterizer wired", "kind", "radial")
		if len(v.Stops) > 0 {
			return v.Stops[0].Color
		}
	case imaging.SweepGradientBrush:
		b.log.Warnw("gradient brush drawn as its first stop; no gradient rasterizer wired", "kind", "sweep")
		if len(v.Stops) > 0 {
			return v.Stops[0].Color
		}
	case imaging.ImageBrush:
		b.log.Warnw("image brush drawn as opaque white; no brush-space sampler wired")
		return imaging.Color{R: 1, G: 1, B: 1, A: 1}
	}
	return imaging.Color{A: 1}
}

// polygonFillVertices triangulates a single convex-ish polygon as a
// triangle fan from its first point — sufficient for the rectangle and
// simple-path shapes this reference backend draws; a production backend
// would hand this off to the shared stroke/fill tessellator spec.md §6
// assumes across backends.
func polygonFillVertices(poly []imaging.Point, c imaging.Color) ([]ebiten.Vertex, []uint16) {
	vs := make([]ebiten.Vertex, len(poly))
	for i, p := range poly {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0, SrcY: 0,
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
		}
	}
	var is []uint16
	for i := 1; i+1 < len(poly); i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	return vs, is
}

func applyAffineToVertices(vs []ebiten.Vertex, t imaging.Affine) {
	for i := range vs {
		x, y := float64(vs[i].DstX), float64(vs[i].DstY)
		p := t.Apply(imaging.Point{X: x, Y: y})
		vs[i].DstX = float32(p.X)
		vs[i].DstY = float32(p.Y)
	}
}

func (b *Backend) drawPath(id imaging.PathId, fill bool) {
	data, ok := b.Resources.path(id)
	if !ok {
		return
	}
	poly, ok := data.([]imaging.Point)
	if !ok || len(poly) < 2 {
		return
	}
	col := b.brushColor(b.paint)

	if fill {
		vs, is := polygonFillVertices(poly, col)
		applyAffineToVertices(vs, b.ctm)
		opts := &ebiten.DrawTrianglesOptions{}
		if b.fillRule == imaging.FillRuleEvenOdd {
			opts.FillRule = ebiten.FillRuleEvenOdd
		} else {
			opts.FillRule = ebiten.FillRuleNonZero
		}
		b.target.DrawTriangles(vs, is, whitePixel(), opts)
		return
	}

	var path vector.Path
	path.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	so := &vector.StrokeOptions{Width: float32(b.stroke.Width)}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, so)
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = float32(col.R), float32(col.G), float32(col.B), float32(col.A)
	}
	applyAffineToVertices(vs, b.ctm)
	b.target.DrawTriangles(vs, is, whitePixel(), nil)
}

func rectPolygon(r imaging.RectF) []imaging.Point {
	return []imaging.Point{
		{X: r.X0, Y: r.Y0}, {X: r.X1, Y: r.Y0}, {X: r.X1, Y: r.Y1}, {X: r.X0, Y: r.Y1},
	}
}

func (b *Backend) drawRect(r imaging.RectF, fill bool) {
	col := b.brushColor(b.paint)
	poly := rectPolygon(r)

	if fill {
		vs, is := polygonFillVertices(poly, col)
		applyAffineToVertices(vs, b.ctm)
		b.target.DrawTriangles(vs, is, whitePixel(), nil)
		return
	}

	var path vector.Path
	path.MoveTo(float32(r.X0), float32(r.Y0))
	path.LineTo(float32(r.X1), float32(r.Y0))
	path.LineTo(float32(r.X1), float32(r.Y1))
	path.LineTo(float32(r.X0), float32(r.Y1))
	path.Close()
	so := &vector.StrokeOptions{Width: float32(b.stroke.Width)}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, so)
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = float32(col.R), float32(col.G), float32(col.B), float32(col.A)
	}
	applyAffineToVertices(vs, b.ctm)
	b.target.DrawTriangles(vs, is, whitePixel(), nil)
}

func (b *Backend) drawImage(v imaging.DrawImage) {
	img, ok := b.Resources.image(v.Image)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(v.Transform.Then(b.ctm))
	op.Filter = samplerFilter(v.Sampler)
	if v.Sampler.Alpha != 1 {
		a := float32(v.Sampler.Alpha)
		op.ColorScale.Scale(a, a, a, a)
	}
	b.target.DrawImage(img, &op)
}

func (b *Backend) drawImageRect(v imaging.DrawImageRect) {
	img, ok := b.Resources.image(v.Image)
	if !ok {
		return
	}
	src := img
	if v.HasSrc {
		rect := toImageRect(v.Src)
		src = img.SubImage(rect).(*ebiten.Image)
	}

	var op ebiten.DrawImageOptions
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	if sw == 0 || sh == 0 {
		return
	}
	op.GeoM.Scale(v.Dst.Width()/sw, v.Dst.Height()/sh)
	op.GeoM.Translate(v.Dst.X0, v.Dst.Y0)
	op.GeoM.Concat(geoM(b.ctm))
	op.Filter = samplerFilter(v.Sampler)
	if v.Sampler.Alpha != 1 {
		a := float32(v.Sampler.Alpha)
		op.ColorScale.Scale(a, a, a, a)
	}
	b.target.DrawImage(src, &op)
}

func (b *Backend) drawPicture(v imaging.DrawPicture) {
	rec, ok := b.Resources.picture(v.Picture)
	if !ok {
		return
	}
	savedCTM, savedPaintT, savedPaint, savedHasPaint := b.ctm, b.paintTransform, b.paint, b.hasPaint
	savedStroke, savedFillRule := b.stroke, b.fillRule
	depth := len(b.layers)

	imaging.ReplayPicture(b, rec, v.Transform)

	for len(b.layers) > depth {
		b.popLayer()
	}
	b.ctm, b.paintTransform, b.paint, b.hasPaint = savedCTM, savedPaintT, savedPaint, savedHasPaint
	b.stroke, b.fillRule = savedStroke, savedFillRule
}

func samplerFilter(s imaging.Sampler) ebiten.Filter {
	if s.Quality == imaging.SamplerNearest {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

func toImageRect(r imaging.RectF) image.Rectangle {
	return image.Rect(int(r.X0), int(r.Y0), int(r.X1), int(r.Y1))
}
