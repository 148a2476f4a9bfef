package property

import "understory/dirty"

// ParentLookup resolves a key's parent in the inheritance chain, returning
// ok=false at the root. Supplied by the host application; Understory itself
// has no notion of a scene tree.
type ParentLookup[K comparable] func(key K) (parent K, ok bool)

// WalkInherited walks the parent chain starting at key (key itself is
// checked first) looking for the first store with an explicit value for
// property, checking that store's Animation layer before its Local layer at
// every step. ok is false if no ancestor (including key) has either.
func WalkInherited[K comparable, T any](
	key K,
	property Property[T],
	lookup ParentLookup[K],
	stores func(K) (*Store[K], bool),
) (T, bool) {
	cur := key
	for {
		if s, ok := stores(cur); ok {
			if v, ok := GetAnimation(s, property); ok {
				return v, true
			}
			if v, ok := GetLocal(s, property); ok {
				return v, true
			}
		}
		parent, ok := lookup(cur)
		if !ok {
			var zero T
			return zero, false
		}
		cur = parent
	}
}

// WalkInheritedRef is WalkInherited, borrowed.
func WalkInheritedRef[K comparable, T any](
	key K,
	property Property[T],
	lookup ParentLookup[K],
	stores func(K) (*Store[K], bool),
) (*T, bool) {
	cur := key
	for {
		if s, ok := stores(cur); ok {
			if v, ok := getLayer(s.animation, property.ID()); ok {
				if p, ok := DowncastRef[T](v); ok {
					return p, true
				}
			}
			if v, ok := getLayer(s.local, property.ID()); ok {
				if p, ok := DowncastRef[T](v); ok {
					return p, true
				}
			}
		}
		parent, ok := lookup(cur)
		if !ok {
			return nil, false
		}
		cur = parent
	}
}

// SetLocalNotifying applies the property's coerce callback, stores the
// coerced value in the Local layer, invokes the on-changed callback with
// the previous value (if any) and the new one, and returns the channel set
// the write affects. It always returns AffectsChannels(), whether or not
// the stored value changed, since Value does not require T to be
// comparable; a caller that skips no-op writes compares old and new in the
// on-changed callback.
func SetLocalNotifying[K comparable, T any](
	s *Store[K],
	registry *Registry,
	property Property[T],
	value T,
) dirty.ChannelSet {
	meta := MustMetadata(registry, property)
	coerced := meta.ApplyCoerce(NewValue(value))

	var old Value
	if i, ok := findEntry(s.local, property.ID()); ok {
		old = s.local[i].value
	}

	setLayer(&s.local, property.ID(), coerced)
	meta.NotifyChanged(old, coerced)
	return meta.AffectsChannels()
}

// SetAnimationNotifying is SetLocalNotifying for the Animation layer: it
// coerces, stores into Animation, invokes the on-changed callback, and
// returns the affected channel set. This is the write side a tween driver
// calls every frame; the caller marks those channels dirty (see
// understory/proptween, which ties this directly to dirty.Set.Mark the
// way the teacher's TweenGroup.Update ties a field write to
// node.MarkDirty()).
func SetAnimationNotifying[K comparable, T any](
	s *Store[K],
	registry *Registry,
	property Property[T],
	value T,
) dirty.ChannelSet {
	meta := MustMetadata(registry, property)
	coerced := meta.ApplyCoerce(NewValue(value))

	var old Value
	if i, ok := findEntry(s.animation, property.ID()); ok {
		old = s.animation[i].value
	}

	setLayer(&s.animation, property.ID(), coerced)
	meta.NotifyChanged(old, coerced)
	return meta.AffectsChannels()
}
