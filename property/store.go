package property

import "sort"

// inlineCapacity is the preallocated capacity for the local-value slice.
// Most objects carry fewer than 8 explicitly-set properties; this avoids
// repeated growth for the common case. Go has no generic small-vector type
// in the standard library (unlike Rust's smallvec, which the original keeps
// inline storage with), so Understory approximates it with a
// capacity-preallocated slice — see DESIGN.md for why no third-party
// small-vector dependency was wired in instead.
const inlineCapacity = 8

type entry struct {
	id    ID
	value Value
}

// Store is one object's sparse property storage: Local and Animation
// layers, each a slice sorted by ID for binary-search lookup. Animation is
// allocated only on first use so objects with no running animations pay no
// per-object Animation cost.
type Store[K comparable] struct {
	owner     K
	local     []entry
	animation []entry
}

// NewStore returns an empty store for owner.
func NewStore[K comparable](owner K) *Store[K] {
	return &Store[K]{owner: owner, local: make([]entry, 0, inlineCapacity)}
}

// Owner returns the store's owner key.
func (s *Store[K]) Owner() K { return s.owner }

// IsEmpty reports whether no properties have explicit values set.
func (s *Store[K]) IsEmpty() bool {
	return len(s.local) == 0 && len(s.animation) == 0
}

// Len returns the number of properties with explicit values (Local or
// Animation, deduplicated).
func (s *Store[K]) Len() int {
	return len(s.PropertyIDs())
}

// PropertyIDs returns every property ID with an explicit value, merged from
// both layers into a strictly increasing, deduplicated stream.
func (s *Store[K]) PropertyIDs() []ID {
	out := make([]ID, 0, len(s.local)+len(s.animation))
	i, j := 0, 0
	for i < len(s.local) && j < len(s.animation) {
		li, aj := s.local[i].id, s.animation[j].id
		switch {
		case li < aj:
			out = append(out, li)
			i++
		case li > aj:
			out = append(out, aj)
			j++
		default:
			out = append(out, li)
			i++
			j++
		}
	}
	for ; i < len(s.local); i++ {
		out = append(out, s.local[i].id)
	}
	for ; j < len(s.animation); j++ {
		out = append(out, s.animation[j].id)
	}
	return out
}

func findEntry(entries []entry, id ID) (int, bool) {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].id >= id })
	if i < len(entries) && entries[i].id == id {
		return i, true
	}
	return i, false
}

func getLayer(entries []entry, id ID) (Value, bool) {
	i, ok := findEntry(entries, id)
	if !ok {
		return Value{}, false
	}
	return entries[i].value, true
}

func setLayer(entries *[]entry, id ID, v Value) {
	i, ok := findEntry(*entries, id)
	if ok {
		(*entries)[i].value = v
		return
	}
	*entries = append(*entries, entry{})
	copy((*entries)[i+1:], (*entries)[i:])
	(*entries)[i] = entry{id: id, value: v}
}

func clearLayer(entries *[]entry, id ID) bool {
	i, ok := findEntry(*entries, id)
	if !ok {
		return false
	}
	*entries = append((*entries)[:i], (*entries)[i+1:]...)
	return true
}

// GetLocal returns the local value, if set.
func GetLocal[K comparable, T any](s *Store[K], property Property[T]) (T, bool) {
	v, ok := getLayer(s.local, property.ID())
	if !ok {
		var zero T
		return zero, false
	}
	return Downcast[T](v)
}

// SetLocal sets the local value and returns the value now stored.
func SetLocal[K comparable, T any](s *Store[K], property Property[T], value T) T {
	setLayer(&s.local, property.ID(), NewValue(value))
	v, _ := GetLocal(s, property)
	return v
}

// ClearLocal removes the local value. Returns true if a value was removed.
func ClearLocal[K comparable, T any](s *Store[K], property Property[T]) bool {
	return clearLayer(&s.local, property.ID())
}

// HasLocal reports whether the property has a local value.
func HasLocal[K comparable, T any](s *Store[K], property Property[T]) bool {
	_, ok := findEntry(s.local, property.ID())
	return ok
}

// GetAnimation returns the animation value, if set.
func GetAnimation[K comparable, T any](s *Store[K], property Property[T]) (T, bool) {
	v, ok := getLayer(s.animation, property.ID())
	if !ok {
		var zero T
		return zero, false
	}
	return Downcast[T](v)
}

// SetAnimation sets the animation value and returns the value now stored.
// The animation slice is allocated on first use.
func SetAnimation[K comparable, T any](s *Store[K], property Property[T], value T) T {
	setLayer(&s.animation, property.ID(), NewValue(value))
	v, _ := GetAnimation(s, property)
	return v
}

// ClearAnimation removes the animation value. Returns true if a value was
// removed.
func ClearAnimation[K comparable, T any](s *Store[K], property Property[T]) bool {
	return clearLayer(&s.animation, property.ID())
}

// ClearAllAnimations removes every animation value, in O(n) of the number
// of animated properties only — the open question in spec.md §9(a) about
// merging Local/Animation into one layered vector is resolved in favor of
// keeping them split specifically so this stays cheap.
func (s *Store[K]) ClearAllAnimations() {
	s.animation = s.animation[:0]
}

// HasAnimation reports whether the property has an animation value.
func HasAnimation[K comparable, T any](s *Store[K], property Property[T]) bool {
	_, ok := findEntry(s.animation, property.ID())
	return ok
}

// GetEffectiveLocal returns Animation(P) if present, else Local(P) if
// present, else the registry default — cloning in every case.
func GetEffectiveLocal[K comparable, T any](s *Store[K], property Property[T], registry *Registry) T {
	if v, ok := GetAnimation(s, property); ok {
		return v
	}
	if v, ok := GetLocal(s, property); ok {
		return v
	}
	return Default(registry, property)
}

// GetEffectiveOwnRef returns a borrowed Animation or Local value, without
// falling back to the registry default — ok is false if neither layer has
// an explicit value, leaving the caller (typically a style resolver) free
// to consult a cascade before falling back itself.
func GetEffectiveOwnRef[K comparable, T any](s *Store[K], property Property[T]) (*T, bool) {
	if v, ok := getLayer(s.animation, property.ID()); ok {
		return DowncastRef[T](v)
	}
	if v, ok := getLayer(s.local, property.ID()); ok {
		return DowncastRef[T](v)
	}
	return nil, false
}

// GetEffectiveLocalRef is GetEffectiveLocal, borrowed: it returns a
// reference into whichever layer (or the registry's stored default) held
// the value, avoiding a clone.
func GetEffectiveLocalRef[K comparable, T any](s *Store[K], property Property[T], registry *Registry) *T {
	if v, ok := getLayer(s.animation, property.ID()); ok {
		p, _ := DowncastRef[T](v)
		return p
	}
	if v, ok := getLayer(s.local, property.ID()); ok {
		p, _ := DowncastRef[T](v)
		return p
	}
	m := MustMetadata(registry, property)
	p, _ := DowncastRef[T](m.DefaultValue())
	return p
}
