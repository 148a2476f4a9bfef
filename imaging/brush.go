package imaging

// Brush is a closed union of paint sources: solid color, one of three
// gradient shapes, or an image. The marker method keeps the set of
// implementations closed to this package's variants, the same "no open
// dispatch" discipline spec.md §9 calls for on ImagingOp's variants.
type Brush interface {
	isBrush()
}

// SolidBrush fills with a single flat color.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) isBrush() {}

// LinearGradientBrush interpolates color stops along the segment from
// Start to End.
type LinearGradientBrush struct {
	Start, End Point
	Stops      []ColorStop
	Extend     ExtendMode
	Space      ColorSpace
	Hue        HueDirection
	AlphaSpace ColorSpace
}

func (LinearGradientBrush) isBrush() {}

// RadialGradientBrush interpolates color stops radially from Center out to
// Radius, optionally focused off-center via Focus/FocusRadius.
type RadialGradientBrush struct {
	Center, Focus       Point
	Radius, FocusRadius float64
	Stops               []ColorStop
	Extend              ExtendMode
	Space               ColorSpace
	Hue                 HueDirection
	AlphaSpace          ColorSpace
}

func (RadialGradientBrush) isBrush() {}

// SweepGradientBrush interpolates color stops angularly around Center
// between StartAngle and EndAngle (radians).
type SweepGradientBrush struct {
	Center                 Point
	StartAngle, EndAngle   float64
	Stops                  []ColorStop
	Extend                 ExtendMode
	Space                  ColorSpace
	Hue                    HueDirection
	AlphaSpace             ColorSpace
}

func (SweepGradientBrush) isBrush() {}

// ImageBrush paints with a resource-backend image, tiled per Extend.
type ImageBrush struct {
	Image  ImageId
	Extend ExtendMode
}

func (ImageBrush) isBrush() {}
