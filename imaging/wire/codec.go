package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"understory/imaging"
)

// encoder writes one field of a wire record. Composing several via
// writeSeq keeps each variant's Marshal case a flat, readable list
// instead of a wall of individual error-checked statements.
type encoder func(io.Writer) error

func writeSeq(w io.Writer, encoders ...encoder) error {
	for _, enc := range encoders {
		if err := enc(w); err != nil {
			return err
		}
	}
	return nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func byte2(b byte) encoder {
	return func(w io.Writer) error { return writeByte(w, b) }
}

func boolByte(v bool) encoder {
	return func(w io.Writer) error {
		if v {
			return writeByte(w, 1)
		}
		return writeByte(w, 0)
	}
}

func readBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	return b != 0, err
}

func u32(v uint32) encoder {
	return func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, v) }
}

func readU32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func f64(v float64) encoder {
	return func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, v) }
}

func readF64(r io.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func affine(t imaging.Affine) encoder {
	return func(w io.Writer) error {
		return writeSeq(w, f64(t.A), f64(t.B), f64(t.C), f64(t.D), f64(t.E), f64(t.F))
	}
}

func readAffine(r io.Reader) (imaging.Affine, error) {
	vals := make([]float64, 6)
	for i := range vals {
		v, err := readF64(r)
		if err != nil {
			return imaging.Affine{}, err
		}
		vals[i] = v
	}
	return imaging.Affine{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4], F: vals[5]}, nil
}

func rect(rc imaging.RectF) encoder {
	return func(w io.Writer) error {
		return writeSeq(w, f64(rc.X0), f64(rc.Y0), f64(rc.X1), f64(rc.Y1))
	}
}

func readRect(r io.Reader) (imaging.RectF, error) {
	vals := make([]float64, 4)
	for i := range vals {
		v, err := readF64(r)
		if err != nil {
			return imaging.RectF{}, err
		}
		vals[i] = v
	}
	return imaging.RectF{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]}, nil
}

func fillRule(rule imaging.FillRule) encoder {
	return byte2(byte(rule))
}

func readFillRule(r io.Reader) (imaging.FillRule, error) {
	b, err := readByte(r)
	return imaging.FillRule(b), err
}

func sampler(s imaging.Sampler) encoder {
	return func(w io.Writer) error {
		return writeSeq(w, byte2(byte(s.Quality)), byte2(byte(s.ExtendX)), byte2(byte(s.ExtendY)), f64(s.Alpha))
	}
}

func readSampler(r io.Reader) (imaging.Sampler, error) {
	quality, err := readByte(r)
	if err != nil {
		return imaging.Sampler{}, err
	}
	ex, err := readByte(r)
	if err != nil {
		return imaging.Sampler{}, err
	}
	ey, err := readByte(r)
	if err != nil {
		return imaging.Sampler{}, err
	}
	alpha, err := readF64(r)
	if err != nil {
		return imaging.Sampler{}, err
	}
	return imaging.Sampler{
		Quality: imaging.SamplerQuality(quality),
		ExtendX: imaging.ExtendMode(ex),
		ExtendY: imaging.ExtendMode(ey),
		Alpha:   alpha,
	}, nil
}

func strokeStyle(s imaging.StrokeStyle) encoder {
	return func(w io.Writer) error {
		if err := writeSeq(w, f64(s.Width), f64(s.MiterLimit), byte2(byte(s.Join)), byte2(byte(s.Cap))); err != nil {
			return err
		}
		if err := u32(uint32(len(s.Dash)))(w); err != nil {
			return err
		}
		for _, d := range s.Dash {
			if err := f64(d)(w); err != nil {
				return err
			}
		}
		return f64(s.DashOffset)(w)
	}
}

func readStrokeStyle(r io.Reader) (imaging.StrokeStyle, error) {
	width, err := readF64(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	miter, err := readF64(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	join, err := readByte(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	cap, err := readByte(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	n, err := readU32(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	dash := make([]float64, n)
	for i := range dash {
		dash[i], err = readF64(r)
		if err != nil {
			return imaging.StrokeStyle{}, err
		}
	}
	offset, err := readF64(r)
	if err != nil {
		return imaging.StrokeStyle{}, err
	}
	return imaging.StrokeStyle{
		Width:      width,
		MiterLimit: miter,
		Join:       imaging.StrokeJoin(join),
		Cap:        imaging.StrokeCap(cap),
		Dash:       dash,
		DashOffset: offset,
	}, nil
}

func layerOp(l imaging.LayerOp) encoder {
	return func(w io.Writer) error {
		if err := writeClip(w, l.Clip); err != nil {
			return err
		}
		if err := writeFilter(w, l.Filter); err != nil {
			return err
		}
		if l.Blend == nil {
			if err := boolByte(false)(w); err != nil {
				return err
			}
		} else {
			if err := writeSeq(w, boolByte(true), byte2(byte(*l.Blend))); err != nil {
				return err
			}
		}
		if l.Opacity == nil {
			return boolByte(false)(w)
		}
		return writeSeq(w, boolByte(true), f64(*l.Opacity))
	}
}

func readLayerOp(r io.Reader) (imaging.LayerOp, error) {
	clip, err := readClip(r)
	if err != nil {
		return imaging.LayerOp{}, err
	}
	filter, err := readFilter(r)
	if err != nil {
		return imaging.LayerOp{}, err
	}
	hasBlend, err := readBool(r)
	if err != nil {
		return imaging.LayerOp{}, err
	}
	var blend *imaging.BlendMode
	if hasBlend {
		b, err := readByte(r)
		if err != nil {
			return imaging.LayerOp{}, err
		}
		mode := imaging.BlendMode(b)
		blend = &mode
	}
	hasOpacity, err := readBool(r)
	if err != nil {
		return imaging.LayerOp{}, err
	}
	var opacity *float64
	if hasOpacity {
		v, err := readF64(r)
		if err != nil {
			return imaging.LayerOp{}, err
		}
		opacity = &v
	}
	return imaging.LayerOp{Clip: clip, Filter: filter, Blend: blend, Opacity: opacity}, nil
}

func writeClip(w io.Writer, c imaging.ClipShape) error {
	switch v := c.(type) {
	case nil:
		return writeByte(w, clipNone)
	case imaging.FillClip:
		return writeSeq(w, byte2(clipFill), u32(uint32(v.Path)), fillRule(v.Rule))
	case imaging.StrokeClip:
		return writeSeq(w, byte2(clipStroke), u32(uint32(v.Path)), strokeStyle(v.Style))
	default:
		return fmt.Errorf("unknown ClipShape variant %T", c)
	}
}

func readClip(r io.Reader) (imaging.ClipShape, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case clipNone:
		return nil, nil
	case clipFill:
		id, err := readU32(r)
		if err != nil {
			return nil, err
		}
		rule, err := readFillRule(r)
		return imaging.FillClip{Path: imaging.PathId(id), Rule: rule}, err
	case clipStroke:
		id, err := readU32(r)
		if err != nil {
			return nil, err
		}
		style, err := readStrokeStyle(r)
		return imaging.StrokeClip{Path: imaging.PathId(id), Style: style}, err
	default:
		return nil, fmt.Errorf("unknown ClipShape tag %d", tag)
	}
}

func writeFilter(w io.Writer, f imaging.FilterDesc) error {
	switch v := f.(type) {
	case nil:
		return writeByte(w, filterNone)
	case imaging.FloodFilter:
		return writeSeq(w, byte2(filterFlood), color(v.Color))
	case imaging.BlurFilter:
		return writeSeq(w, byte2(filterBlur), f64(v.SigmaX), f64(v.SigmaY))
	case imaging.DropShadowFilter:
		return writeSeq(w, byte2(filterDropShadow), f64(v.OffsetX), f64(v.OffsetY), f64(v.SigmaX), f64(v.SigmaY), color(v.Color))
	case imaging.OffsetFilter:
		return writeSeq(w, byte2(filterOffset), f64(v.OffsetX), f64(v.OffsetY))
	default:
		return fmt.Errorf("unknown FilterDesc variant %T", f)
	}
}

func readFilter(r io.Reader) (imaging.FilterDesc, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case filterNone:
		return nil, nil
	case filterFlood:
		c, err := readColor(r)
		return imaging.FloodFilter{Color: c}, err
	case filterBlur:
		sx, err := readF64(r)
		if err != nil {
			return nil, err
		}
		sy, err := readF64(r)
		return imaging.BlurFilter{SigmaX: sx, SigmaY: sy}, err
	case filterDropShadow:
		ox, err := readF64(r)
		if err != nil {
			return nil, err
		}
		oy, err := readF64(r)
		if err != nil {
			return nil, err
		}
		sx, err := readF64(r)
		if err != nil {
			return nil, err
		}
		sy, err := readF64(r)
		if err != nil {
			return nil, err
		}
		c, err := readColor(r)
		return imaging.DropShadowFilter{OffsetX: ox, OffsetY: oy, SigmaX: sx, SigmaY: sy, Color: c}, err
	case filterOffset:
		ox, err := readF64(r)
		if err != nil {
			return nil, err
		}
		oy, err := readF64(r)
		return imaging.OffsetFilter{OffsetX: ox, OffsetY: oy}, err
	default:
		return nil, fmt.Errorf("unknown FilterDesc tag %d", tag)
	}
}

func color(c imaging.Color) encoder {
	return func(w io.Writer) error {
		return writeSeq(w, f64(c.R), f64(c.G), f64(c.B), f64(c.A))
	}
}

func readColor(r io.Reader) (imaging.Color, error) {
	vals := make([]float64, 4)
	for i := range vals {
		v, err := readF64(r)
		if err != nil {
			return imaging.Color{}, err
		}
		vals[i] = v
	}
	return imaging.Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}
