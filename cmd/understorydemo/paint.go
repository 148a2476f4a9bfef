package main

import (
	"understory/backend/ebitenimaging"
	"understory/imaging"
	"understory/style"
)

// panelRect and chipRect are the demo's fixed layout — understory has no
// layout engine of its own (external.LayoutEngine is a host contract), so
// the demo hardcodes where its two rectangles sit.
var (
	panelRect = imaging.RectF{X0: 40, Y0: 40, X1: 360, Y1: 280}
	chipRect  = imaging.RectF{X0: 200, Y0: 160, X1: 320, Y1: 240}
)

// paintScene resolves every node's effective style (cascade, inheritance,
// and any running Animation override) and replays it as one StateOp/
// DrawOp sequence against b — panel first, chip second, each wrapped in
// an opacity layer so PushLayer/PopLayer and layer compositing are
// genuinely exercised rather than only unit-tested in isolation.
func paintScene(b *ebitenimaging.Backend, scene *demoScene) {
	cx := scene.resolveCx()

	drawNode := func(id nodeId, rect imaging.RectF) {
		inputs := scene.selectorInputs(id)
		fill := style.GetValue(cx, id, inputs, scene.cascade, propFill)
		radius := style.GetValue(cx, id, inputs, scene.cascade, propRadius)
		opacity := style.GetValue(cx, id, inputs, scene.cascade, propOpacity)

		paint := b.Resources.CreatePaint(imaging.SolidBrush{Color: fill})
		path := b.Resources.CreatePath(roundedRectPolygon(rect, radius))

		b.State(imaging.SetTransform{Transform: imaging.Identity})
		b.State(imaging.SetPaint{Paint: paint})
		b.State(imaging.SetFillRule{Rule: imaging.FillRuleNonZero})
		b.State(imaging.PushLayer{Layer: imaging.LayerOp{Opacity: &opacity}})
		b.Draw(imaging.FillPath{Path: path})
		b.State(imaging.PopLayer{})

		b.Resources.DestroyPaint(paint)
		b.Resources.DestroyPath(path)
	}

	drawNode(nodePanel, panelRect)
	drawNode(nodeChip, chipRect)
}

// roundedRectPolygon approximates a rounded rectangle as a coarse
// octagon cut at each corner by radius — polygonFillVertices in the
// backend only fans convex polygons, so this stays a polygon rather than
// a true arc the way imaging.RoundedRectF would describe it.
func roundedRectPolygon(r imaging.RectF, radius float64) []imaging.Point {
	radius = clampRadius(radius, r)
	if radius <= 0 {
		return []imaging.Point{
			{X: r.X0, Y: r.Y0}, {X: r.X1, Y: r.Y0}, {X: r.X1, Y: r.Y1}, {X: r.X0, Y: r.Y1},
		}
	}
	return []imaging.Point{
		{X: r.X0 + radius, Y: r.Y0}, {X: r.X1 - radius, Y: r.Y0},
		{X: r.X1, Y: r.Y0 + radius}, {X: r.X1, Y: r.Y1 - radius},
		{X: r.X1 - radius, Y: r.Y1}, {X: r.X0 + radius, Y: r.Y1},
		{X: r.X0, Y: r.Y1 - radius}, {X: r.X0, Y: r.Y0 + radius},
	}
}

func clampRadius(radius float64, r imaging.RectF) float64 {
	half := r.Width() / 2
	if r.Height()/2 < half {
		half = r.Height() / 2
	}
	if radius > half {
		return half
	}
	if radius < 0 {
		return 0
	}
	return radius
}
