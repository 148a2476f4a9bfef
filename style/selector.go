// Package style implements the CSS-like cascade layer: selectors matched
// against a snapshot of an object's type/class/pseudo-class state, styles
// carrying property values, an ordered cascade of (origin, style) pairs,
// and a small theme map plus the resolve context that ties property
// storage, cascade, and theme together into one effective-value lookup.
package style

import "sort"

// TypeTag identifies an object's element type for selector matching (the
// UI-framework equivalent of a CSS type selector, e.g. "button").
type TypeTag uint32

// ClassId identifies one CSS-class-like tag an object can carry.
type ClassId uint32

// PseudoClassId identifies one pseudo-class-like state (e.g. hovered,
// focused, disabled).
type PseudoClassId uint32

// IdSet is a sorted, deduplicated set of comparable, ordered IDs. It backs
// both the class and pseudo-class sets on a Selector and on SelectorInputs.
type IdSet[T ~uint32] struct {
	ids []T
}

// NewIdSet builds a sorted, deduplicated IdSet from ids.
func NewIdSet[T ~uint32](ids ...T) IdSet[T] {
	cp := append([]T(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:0]
	for i, id := range cp {
		if i == 0 || id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return IdSet[T]{ids: out}
}

// Len returns the number of distinct IDs in the set.
func (s IdSet[T]) Len() int { return len(s.ids) }

// Contains reports whether id is a member.
func (s IdSet[T]) Contains(id T) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

// IsSubsetOf reports whether every ID in s is also in other.
func (s IdSet[T]) IsSubsetOf(other IdSet[T]) bool {
	for _, id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// SelectorInputs is a snapshot of one object's matchable state: its type
// tag (if any) and the classes/pseudo-classes currently applied to it.
type SelectorInputs struct {
	Tag          TypeTag
	HasTag       bool
	Classes      IdSet[ClassId]
	PseudoClass  IdSet[PseudoClassId]
}

// Specificity is the lexicographic (pseudo-class count, class count,
// type-tag-present) tuple used to order same-origin styles in a cascade.
type Specificity struct {
	Pseudos  int
	Classes  int
	HasType  bool
}

// Less reports whether s is strictly lower priority than other, comparing
// lexicographically: pseudos, then classes, then type-tag presence.
func (s Specificity) Less(other Specificity) bool {
	if s.Pseudos != other.Pseudos {
		return s.Pseudos < other.Pseudos
	}
	if s.Classes != other.Classes {
		return s.Classes < other.Classes
	}
	if s.HasType != other.HasType {
		return !s.HasType && other.HasType
	}
	return false
}

// Selector is an optional type tag plus required class and pseudo-class
// sets. It matches a SelectorInputs snapshot when the tag (if present)
// equals the snapshot's tag and both required sets are subsets of the
// snapshot's sets.
type Selector struct {
	tag         TypeTag
	hasTag      bool
	classes     IdSet[ClassId]
	pseudoClass IdSet[PseudoClassId]
}

// NewSelector builds a selector with no type-tag requirement.
func NewSelector(classes IdSet[ClassId], pseudo IdSet[PseudoClassId]) Selector {
	return Selector{classes: classes, pseudoClass: pseudo}
}

// WithTag returns a copy of the selector that additionally requires tag.
func (s Selector) WithTag(tag TypeTag) Selector {
	s.tag = tag
	s.hasTag = true
	return s
}

// Matches reports whether inputs satisfies the selector.
func (s Selector) Matches(inputs SelectorInputs) bool {
	if s.hasTag && (!inputs.HasTag || inputs.Tag != s.tag) {
		return false
	}
	if !s.classes.IsSubsetOf(inputs.Classes) {
		return false
	}
	if !s.pseudoClass.IsSubsetOf(inputs.PseudoClass) {
		return false
	}
	return true
}

// Specificity computes the selector's lexicographic priority tuple.
func (s Selector) Specificity() Specificity {
	return Specificity{
		Pseudos: s.pseudoClass.Len(),
		Classes: s.classes.Len(),
		HasType: s.hasTag,
	}
}
