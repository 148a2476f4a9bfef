package imaging

// Color is a straight-alpha sRGB color. A shared color-space library is
// assumed by spec.md §6 for the full cross-backend contract; this is the
// minimal concrete stand-in Understory's core and reference backend
// actually exchange.
type Color struct {
	R, G, B, A float64
}

// FillRule selects how a path's self-intersections determine "inside".
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// BlendMode selects how a layer composites over its backdrop.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendDarken
	BlendLighten
)

// StrokeCap is the shape drawn at the end of an open subpath.
type StrokeCap int

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

// StrokeJoin is the shape drawn where two stroked segments meet.
type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle bundles the parameters of a stroked path or rect.
type StrokeStyle struct {
	Width      float64
	MiterLimit float64
	Join       StrokeJoin
	Cap        StrokeCap
	Dash       []float64
	DashOffset float64
}

// strokeFlattenTolerance is the fixed flattening tolerance, in local
// units, used when deriving a stroke outline for stroke-based clipping.
const strokeFlattenTolerance = 0.1

// SamplerQuality selects the filtering kernel used when sampling an image.
type SamplerQuality int

const (
	SamplerNearest SamplerQuality = iota
	SamplerLinear
	SamplerMitchell
)

// ExtendMode controls how sampling behaves past an image or gradient's
// defined extent.
type ExtendMode int

const (
	ExtendPad ExtendMode = iota
	ExtendRepeat
	ExtendReflect
)

// Sampler governs filtering and boundary behavior for image draws.
type Sampler struct {
	Quality  SamplerQuality
	ExtendX  ExtendMode
	ExtendY  ExtendMode
	Alpha    float64
}

// ColorStop is one color at one offset (0..1) along a gradient.
type ColorStop struct {
	Offset float64
	Color  Color
}

// ColorSpace selects the interpolation space used between gradient stops.
type ColorSpace int

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceLinear
	ColorSpaceOKLab
)

// HueDirection selects the interpolation direction for hue-bearing color
// spaces (relevant to OKLCH-style interpolation; ignored otherwise).
type HueDirection int

const (
	HueShorter HueDirection = iota
	HueLonger
)
