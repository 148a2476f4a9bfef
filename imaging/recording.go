package imaging

// RecordedOps is a sealed, immutable-shared recording: the op sequence
// captured between BeginRecord and EndRecord, an optional backend
// acceleration token, the TransformClass the token remains valid under,
// and the CTM in effect when the recording was captured (needed to
// compute TransformDiffClass against a future replay CTM).
type RecordedOps struct {
	Ops            []ImagingOp
	Acceleration   any
	ValidUnder     TransformClass
	OriginalCTM    Affine
	HasOriginalCTM bool
}

// CanReuse reports whether the recording's acceleration token may be used
// as-is when replaying at currentCTM, per spec.md §4.9:
// acceleration present AND valid_under.Supports(diff(original, current)).
func (r RecordedOps) CanReuse(currentCTM Affine) bool {
	if r.Acceleration == nil || !r.HasOriginalCTM {
		return false
	}
	diff := TransformDiffClass(r.OriginalCTM, currentCTM)
	return r.ValidUnder.Supports(diff)
}

// Recorder is an embeddable recording-session buffer: an ImagingBackend
// implementation composes it in, calling Record from its own State/Draw
// before or after applying an op to its live output, and delegates
// BeginRecord/EndRecord to it. It captures the shared "one active
// recording, sealed copy-on-end" bookkeeping so each concrete backend
// does not reimplement it.
type Recorder struct {
	active bool
	buf    []ImagingOp
	ctm    Affine
	hasCTM bool
}

// BeginRecording starts capture, with ctm recorded as the original CTM
// for later TransformDiffClass comparisons. Calling it while already
// active discards the prior buffer (nested recordings are not required to
// work, per spec.md §4.9).
func (r *Recorder) BeginRecording(ctm Affine) {
	r.active = true
	r.buf = nil
	r.ctm = ctm
	r.hasCTM = true
}

// IsRecording reports whether capture is active.
func (r *Recorder) IsRecording() bool { return r.active }

// Record appends op to the buffer if capture is active; a no-op
// otherwise, so call sites can call it unconditionally.
func (r *Recorder) Record(op ImagingOp) {
	if !r.active {
		return
	}
	r.buf = append(r.buf, op)
}

// EndRecording seals the buffer into a RecordedOps with no acceleration
// token (acceleration, if any, is attached by the concrete backend after
// EndRecording returns, since only it knows how to build one).
func (r *Recorder) EndRecording() RecordedOps {
	r.active = false
	ops := r.buf
	r.buf = nil
	return RecordedOps{Ops: ops, ValidUnder: Exact, OriginalCTM: r.ctm, HasOriginalCTM: r.hasCTM}
}

// ReplayPicture replays rec's ops against b, left-multiplying outer onto
// every embedded SetTransform, per spec.md §4.9's IR-replay fallback. The
// caller is responsible for saving/restoring backend state (CTM, paint,
// stroke, layer-stack depth) around the call and for popping any net
// layer imbalance left by an unbalanced recording.
func ReplayPicture(b ImagingBackend, rec RecordedOps, outer Affine) {
	for _, op := range rec.Ops {
		switch v := op.(type) {
		case StateKind:
			if st, ok := v.Op.(SetTransform); ok {
				b.State(SetTransform{Transform: st.Transform.Then(outer)})
				continue
			}
			b.State(v.Op)
		case DrawKind:
			b.Draw(v.Op)
		}
	}
}
