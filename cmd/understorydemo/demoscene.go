package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"understory/dirty"
	"understory/imaging"
	"understory/property"
	"understory/proptween"
	"understory/style"
)

// nodeId names one object in the tiny demo tree. The demo has no scene
// graph of its own (understory doesn't provide one); this is the
// smallest possible host-side K a property.Store/dirty.Set can be keyed
// on.
type nodeId uint32

const (
	nodeRoot  nodeId = 0
	nodePanel nodeId = 1
	nodeChip  nodeId = 2
)

const (
	channelLayout = dirty.Channel(0)
	channelPaint  = dirty.Channel(1)
)

var (
	propOpacity  property.Property[float64]
	propFill     property.Property[imaging.Color]
	propRadius   property.Property[float64]
	classChipTag = style.ClassId(1)
)

// demoScene bundles every piece of reactive-core state the run/record
// subcommands drive: the registry, the three-node tree and its stores,
// the style cascade, and the dirty set writes land in.
type demoScene struct {
	registry *property.Registry
	cascade  style.StyleCascade
	theme    style.Theme

	parents nodeId2parent
	stores  map[nodeId]*property.Store[nodeId]

	dirty *dirty.Set[nodeId]

	tweens  []chipTween
	elapsed float32
}

type nodeId2parent map[nodeId]nodeId

// chipTween pairs a running animation with the node it targets, since
// proptween.Group keeps its target unexported (every caller is expected
// to already know which object it built the group for).
type chipTween struct {
	node  nodeId
	group *proptween.Group[nodeId, float64]
}

// newDemoScene builds the registry, a small style cascade (one user-agent
// rule and one class-scoped override, mirroring style/cascade_test.go's
// shape), the panel/chip parent-child pair, and a two-second opacity tween
// on the chip driving proptween.Group the way the teacher's demos drive a
// TweenGroup on a sprite's alpha.
func newDemoScene(log *zap.SugaredLogger) *demoScene {
	registry := property.NewRegistry()
	propOpacity = property.Register(registry, "opacity",
		property.NewMetadataBuilder(1.0).
			AffectsChannels(channelPaint.IntoSet()).
			Coerce(func(v float64) float64 {
				if v < 0 {
					return 0
				}
				if v > 1 {
					return 1
				}
				return v
			}))
	propFill = property.Register(registry, "fill",
		property.NewMetadataBuilder(imaging.Color{A: 1}).
			Inherits(true).
			AffectsChannels(channelPaint.IntoSet()))
	propRadius = property.Register(registry, "radius",
		property.NewMetadataBuilder(0.0).
			AffectsChannels(channelLayout.IntoSet()))

	userAgent := style.NewStyleBuilder()
	style.Set(userAgent, propFill, imaging.Color{R: 0.12, G: 0.14, B: 0.18, A: 1})
	style.Set(userAgent, propRadius, 6.0)

	chipRule := style.NewStyleBuilder().
		Selector(style.NewSelector(style.NewIdSet(classChipTag), style.IdSet[style.PseudoClassId]{}))
	style.Set(chipRule, propFill, imaging.Color{R: 0.85, G: 0.47, B: 0.13, A: 1})
	style.Set(chipRule, propRadius, 12.0)

	cascade := style.NewStyleCascadeBuilder().
		Push(style.OriginUserAgent, userAgent.Build()).
		Push(style.OriginTheme, chipRule.Build()).
		Build()

	theme := style.NewThemeBuilder().Build()

	stores := map[nodeId]*property.Store[nodeId]{
		nodeRoot:  property.NewStore[nodeId](nodeRoot),
		nodePanel: property.NewStore[nodeId](nodePanel),
		nodeChip:  property.NewStore[nodeId](nodeChip),
	}
	parents := nodeId2parent{
		nodePanel: nodeRoot,
		nodeChip:  nodePanel,
	}

	ds := dirty.NewSet[nodeId]()

	channels := property.SetLocalNotifying(stores[nodePanel], registry, propOpacity, 1.0)
	ds.MarkChannels(nodePanel, channels)

	fade := gween.New(1.0, 0.35, 2.0, ease.InOutSine)
	group := proptween.NewGroup[nodeId, float64](nodeChip, propOpacity, func(c [4]float32) float64 {
		return float64(c[0])
	}, fade)

	scene := &demoScene{
		registry: registry,
		cascade:  cascade,
		theme:    theme,
		parents:  parents,
		stores:   stores,
		dirty:    ds,
		tweens:   []chipTween{{node: nodeChip, group: group}},
	}
	log.Debugw("demo scene constructed", "nodes", len(stores))
	return scene
}

func (d *demoScene) lookupParent(key nodeId) (nodeId, bool) {
	p, ok := d.parents[key]
	return p, ok
}

func (d *demoScene) lookupStore(key nodeId) (*property.Store[nodeId], bool) {
	s, ok := d.stores[key]
	return s, ok
}

func (d *demoScene) resolveCx() style.ResolveCx[nodeId] {
	return style.ResolveCx[nodeId]{
		Registry: d.registry,
		Theme:    d.theme,
		Parent:   d.lookupParent,
		Stores:   d.lookupStore,
	}
}

func (d *demoScene) selectorInputs(id nodeId) style.SelectorInputs {
	if id == nodeChip {
		return style.SelectorInputs{Classes: style.NewIdSet(classChipTag)}
	}
	return style.SelectorInputs{}
}

// advance steps every running tween by dt seconds, writing through to the
// Animation layer and the dirty set, the same per-frame shape as the
// teacher's TweenGroup.Update calls from its game loop.
func (d *demoScene) advance(dt float32) {
	d.elapsed += dt
	live := d.tweens[:0]
	for _, ct := range d.tweens {
		ct.group.Update(dt, d.stores[ct.node], d.registry, d.dirty)
		if !ct.group.Done {
			live = append(live, ct)
		}
	}
	d.tweens = live
}
