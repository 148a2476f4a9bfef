// Package wire implements the binary interchange format for []ImagingOp
// named in spec.md §6: a tagged-union encoding good enough to ship a
// recording across a worker boundary within one process. It is additive
// to "recordings are not required to survive process boundaries" — it
// never claims to survive a version boundary, only to avoid re-walking a
// live backend to serialize a captured buffer.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"understory/imaging"
)

const (
	tagState byte = 0
	tagDraw  byte = 1
)

const (
	stateSetTransform byte = iota
	stateSetPaintTransform
	statePushLayer
	statePopLayer
	stateSetPaint
	stateSetStroke
	stateSetFillRule
)

const (
	drawFillPath byte = iota
	drawStrokePath
	drawFillRect
	drawStrokeRect
	drawDrawImage
	drawDrawImageRect
	drawDrawPicture
)

const (
	clipNone byte = iota
	clipFill
	clipStroke
)

const (
	filterNone byte = iota
	filterFlood
	filterBlur
	filterDropShadow
	filterOffset
)

// Marshal encodes ops into the wire format.
func Marshal(ops []imaging.ImagingOp) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(ops))); err != nil {
		return nil, err
	}
	for i, op := range ops {
		if err := writeOp(&buf, op); err != nil {
			return nil, fmt.Errorf("imaging/wire: encode op %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the wire format produced by Marshal.
func Unmarshal(data []byte) ([]imaging.ImagingOp, error) {
	r := bytes.NewReader(data)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("imaging/wire: read op count: %w", err)
	}
	ops := make([]imaging.ImagingOp, 0, count)
	for i := uint32(0); i < count; i++ {
		op, err := readOp(r)
		if err != nil {
			return nil, fmt.Errorf("imaging/wire: decode op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func writeOp(w io.Writer, op imaging.ImagingOp) error {
	switch v := op.(type) {
	case imaging.StateKind:
		if err := writeByte(w, tagState); err != nil {
			return err
		}
		return writeStateOp(w, v.Op)
	case imaging.DrawKind:
		if err := writeByte(w, tagDraw); err != nil {
			return err
		}
		return writeDrawOp(w, v.Op)
	default:
		return fmt.Errorf("unknown ImagingOp variant %T", op)
	}
}

func readOp(r io.Reader) (imaging.ImagingOp, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagState:
		op, err := readStateOp(r)
		if err != nil {
			return nil, err
		}
		return imaging.StateKind{Op: op}, nil
	case tagDraw:
		op, err := readDrawOp(r)
		if err != nil {
			return nil, err
		}
		return imaging.DrawKind{Op: op}, nil
	default:
		return nil, fmt.Errorf("unknown ImagingOp tag %d", tag)
	}
}

func writeStateOp(w io.Writer, op imaging.StateOp) error {
	switch v := op.(type) {
	case imaging.SetTransform:
		return writeSeq(w, byte2(stateSetTransform), affine(v.Transform))
	case imaging.SetPaintTransform:
		return writeSeq(w, byte2(stateSetPaintTransform), affine(v.Transform))
	case imaging.PushLayer:
		return writeSeq(w, byte2(statePushLayer), layerOp(v.Layer))
	case imaging.PopLayer:
		return writeByte(w, statePopLayer)
	case imaging.SetPaint:
		return writeSeq(w, byte2(stateSetPaint), u32(uint32(v.Paint)))
	case imaging.SetStroke:
		return writeSeq(w, byte2(stateSetStroke), strokeStyle(v.Style))
	case imaging.SetFillRule:
		return writeSeq(w, byte2(stateSetFillRule), fillRule(v.Rule))
	default:
		return fmt.Errorf("unknown StateOp variant %T", op)
	}
}

func readStateOp(r io.Reader) (imaging.StateOp, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case stateSetTransform:
		t, err := readAffine(r)
		return imaging.SetTransform{Transform: t}, err
	case stateSetPaintTransform:
		t, err := readAffine(r)
		return imaging.SetPaintTransform{Transform: t}, err
	case statePushLayer:
		l, err := readLayerOp(r)
		return imaging.PushLayer{Layer: l}, err
	case statePopLayer:
		return imaging.PopLayer{}, nil
	case stateSetPaint:
		id, err := readU32(r)
		return imaging.SetPaint{Paint: imaging.PaintId(id)}, err
	case stateSetStroke:
		s, err := readStrokeStyle(r)
		return imaging.SetStroke{Style: s}, err
	case stateSetFillRule:
		rule, err := readFillRule(r)
		return imaging.SetFillRule{Rule: rule}, err
	default:
		return nil, fmt.Errorf("unknown StateOp tag %d", tag)
	}
}

func writeDrawOp(w io.Writer, op imaging.DrawOp) error {
	switch v := op.(type) {
	case imaging.FillPath:
		return writeSeq(w, byte2(drawFillPath), u32(uint32(v.Path)))
	case imaging.StrokePath:
		return writeSeq(w, byte2(drawStrokePath), u32(uint32(v.Path)))
	case imaging.FillRect:
		return writeSeq(w, byte2(drawFillRect), rect(v.Rect))
	case imaging.StrokeRect:
		return writeSeq(w, byte2(drawStrokeRect), rect(v.Rect))
	case imaging.DrawImage:
		return writeSeq(w, byte2(drawDrawImage), u32(uint32(v.Image)), affine(v.Transform), sampler(v.Sampler))
	case imaging.DrawImageRect:
		return writeDrawImageRect(w, v)
	case imaging.DrawPicture:
		return writeSeq(w, byte2(drawDrawPicture), u32(uint32(v.Picture)), affine(v.Transform))
	default:
		return fmt.Errorf("unknown DrawOp variant %T", op)
	}
}

func readDrawOp(r io.Reader) (imaging.DrawOp, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case drawFillPath:
		id, err := readU32(r)
		return imaging.FillPath{Path: imaging.PathId(id)}, err
	case drawStrokePath:
		id, err := readU32(r)
		return imaging.StrokePath{Path: imaging.PathId(id)}, err
	case drawFillRect:
		rc, err := readRect(r)
		return imaging.FillRect{Rect: rc}, err
	case drawStrokeRect:
		rc, err := readRect(r)
		return imaging.StrokeRect{Rect: rc}, err
	case drawDrawImage:
		id, err := readU32(r)
		if err != nil {
			return nil, err
		}
		t, err := readAffine(r)
		if err != nil {
			return nil, err
		}
		s, err := readSampler(r)
		return imaging.DrawImage{Image: imaging.ImageId(id), Transform: t, Sampler: s}, err
	case drawDrawImageRect:
		return readDrawImageRect(r)
	case drawDrawPicture:
		id, err := readU32(r)
		if err != nil {
			return nil, err
		}
		t, err := readAffine(r)
		return imaging.DrawPicture{Picture: imaging.PictureId(id), Transform: t}, err
	default:
		return nil, fmt.Errorf("unknown DrawOp tag %d", tag)
	}
}

func writeDrawImageRect(w io.Writer, v imaging.DrawImageRect) error {
	if err := writeSeq(w, byte2(drawDrawImageRect), u32(uint32(v.Image)), boolByte(v.HasSrc)); err != nil {
		return err
	}
	if v.HasSrc {
		if err := rect(v.Src)(w); err != nil {
			return err
		}
	}
	return writeSeq(w, rect(v.Dst), sampler(v.Sampler))
}

func readDrawImageRect(r io.Reader) (imaging.DrawOp, error) {
	id, err := readU32(r)
	if err != nil {
		return nil, err
	}
	hasSrc, err := readBool(r)
	if err != nil {
		return nil, err
	}
	var src imaging.RectF
	if hasSrc {
		src, err = readRect(r)
		if err != nil {
			return nil, err
		}
	}
	dst, err := readRect(r)
	if err != nil {
		return nil, err
	}
	s, err := readSampler(r)
	if err != nil {
		return nil, err
	}
	return imaging.DrawImageRect{Image: imaging.ImageId(id), HasSrc: hasSrc, Src: src, Dst: dst, Sampler: s}, nil
}
