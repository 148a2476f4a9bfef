package imaging

import (
	"reflect"
	"testing"
)

// fakeBackend is a minimal ImagingBackend that just logs the ops it
// receives, used to assert record/replay equivalence and layer-push
// balancing without a real rendering target.
type fakeBackend struct {
	Recorder
	applied []ImagingOp
	ctm     Affine
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{ctm: Identity}
}

func (b *fakeBackend) State(op StateOp) {
	if st, ok := op.(SetTransform); ok {
		b.ctm = st.Transform
	}
	b.applied = append(b.applied, StateKind{Op: op})
	b.Record(StateKind{Op: op})
}

func (b *fakeBackend) Draw(op DrawOp) {
	b.applied = append(b.applied, DrawKind{Op: op})
	b.Record(DrawKind{Op: op})
}

func (b *fakeBackend) BeginRecord() { b.BeginRecording(b.ctm) }
func (b *fakeBackend) EndRecord() RecordedOps { return b.EndRecording() }

func TestRecordThenReplayProducesEquivalentOps(t *testing.T) {
	b := newFakeBackend()
	b.BeginRecord()
	b.State(SetTransform{Transform: Translate(1, 2)})
	b.Draw(FillRect{Rect: RectF{X1: 10, Y1: 10}})
	rec := b.EndRecord()

	direct := newFakeBackend()
	direct.State(SetTransform{Transform: Translate(1, 2)})
	direct.Draw(FillRect{Rect: RectF{X1: 10, Y1: 10}})

	replay := newFakeBackend()
	ReplayPicture(replay, rec, Identity)

	if !reflect.DeepEqual(direct.applied, replay.applied) {
		t.Fatalf("replay at identity diverged: direct=%v replay=%v", direct.applied, replay.applied)
	}
}

func TestReplayComposesOuterTransformOntoEmbeddedSetTransform(t *testing.T) {
	b := newFakeBackend()
	b.BeginRecord()
	b.State(SetTransform{Transform: Translate(1, 0)})
	rec := b.EndRecord()

	replay := newFakeBackend()
	ReplayPicture(replay, rec, Translate(0, 5))

	want := Translate(1, 0).Then(Translate(0, 5))
	got := replay.applied[0].(StateKind).Op.(SetTransform).Transform
	if got != want {
		t.Fatalf("composed transform = %+v, want %+v", got, want)
	}
}

func TestRecorderDiscardsPriorBufferOnReBegin(t *testing.T) {
	b := newFakeBackend()
	b.BeginRecord()
	b.Draw(FillRect{})
	b.BeginRecord()
	rec := b.EndRecord()
	if len(rec.Ops) != 0 {
		t.Fatalf("expected a fresh BeginRecord to discard the previous buffer, got %v", rec.Ops)
	}
}

func TestNoOpLayerStillConsumesMatchingPopLayer(t *testing.T) {
	b := newFakeBackend()
	pushed := 0
	popped := 0
	WithLayer(b, LayerOp{}, func() {})
	for _, op := range b.applied {
		if sk, ok := op.(StateKind); ok {
			switch sk.Op.(type) {
			case PushLayer:
				pushed++
			case PopLayer:
				popped++
			}
		}
	}
	if pushed != 1 || popped != 1 {
		t.Fatalf("expected one balanced push/pop even for a no-op layer, got pushed=%d popped=%d", pushed, popped)
	}
}
