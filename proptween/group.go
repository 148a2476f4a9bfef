// Package proptween drives a property.Store's Animation layer with
// gween tweens, generalizing the teacher's TweenGroup (which wrote
// directly into *float64 Node fields and called node.MarkDirty()) to
// write into a property.Property's Animation layer and mark the
// property's affected dirty channels instead.
package proptween

import (
	"github.com/tanema/gween"

	"understory/dirty"
	"understory/property"
)

// Group animates up to 4 float32 components simultaneously and combines
// them into one property value each Update, matching the teacher's
// TweenGroup shape (TweenPosition/TweenColor animate 2 and 4 components
// respectively into one field). combine maps the current component
// values to T; for a single-component property (TweenAlpha, TweenRotation
// in the teacher) combine simply reads components[0].
type Group[K comparable, T any] struct {
	tweens  [4]*gween.Tween
	count   int
	combine func(components [4]float32) T
	target  K
	prop    property.Property[T]
	Done    bool
}

// NewGroup builds a Group over the given tweens (1 to 4 of them),
// targeting property on target. combine assembles the tweens' current
// values into one T each frame.
func NewGroup[K comparable, T any](
	target K,
	prop property.Property[T],
	combine func(components [4]float32) T,
	tweens ...*gween.Tween,
) *Group[K, T] {
	if len(tweens) == 0 || len(tweens) > 4 {
		panic("proptween: Group requires between 1 and 4 tweens")
	}
	g := &Group[K, T]{count: len(tweens), combine: combine, target: target, prop: prop}
	copy(g.tweens[:], tweens)
	return g
}

// Update advances every component tween by dt seconds, writes the
// combined value into store's Animation layer via
// property.SetAnimationNotifying, and marks the returned channels dirty
// on dirtySet for target — the same "write field, mark dirty" shape as
// the teacher's TweenGroup.Update, generalized from a Node field to a
// property's Animation layer. Done is set once every component tween has
// finished; a Done group leaves the store and dirty set untouched on
// subsequent calls.
func (g *Group[K, T]) Update(
	dt float32,
	store *property.Store[K],
	registry *property.Registry,
	dirtySet *dirty.Set[K],
) {
	if g.Done {
		return
	}

	var components [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		components[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	value := g.combine(components)
	channels := property.SetAnimationNotifying(store, registry, g.prop, value)
	dirtySet.MarkChannels(g.target, channels)
}
