package style

import "understory/property"

// Style is a mapping from property ID to erased value, plus an optional
// selector restricting which objects it applies to. A Style with no
// selector matches every SelectorInputs.
type Style struct {
	selector    Selector
	hasSelector bool
	values      map[property.ID]property.Value
}

// NewStyleBuilder starts an empty style builder.
func NewStyleBuilder() *StyleBuilder {
	return &StyleBuilder{values: map[property.ID]property.Value{}}
}

// StyleBuilder accumulates property->value entries and an optional
// selector before Build seals them into a Style.
type StyleBuilder struct {
	selector    Selector
	hasSelector bool
	values      map[property.ID]property.Value
}

// Set records a value for property, type-erased at insertion time.
func Set[T any](b *StyleBuilder, p property.Property[T], value T) *StyleBuilder {
	b.values[p.ID()] = property.NewValue(value)
	return b
}

// Selector restricts the style to objects matching sel.
func (b *StyleBuilder) Selector(sel Selector) *StyleBuilder {
	b.selector = sel
	b.hasSelector = true
	return b
}

// Build seals the accumulated entries into an immutable Style.
func (b *StyleBuilder) Build() Style {
	return Style{selector: b.selector, hasSelector: b.hasSelector, values: b.values}
}

// MatchesSelector reports whether the style applies to inputs: true when
// the style carries no selector, or when its selector matches.
func (s Style) MatchesSelector(inputs SelectorInputs) bool {
	if !s.hasSelector {
		return true
	}
	return s.selector.Matches(inputs)
}

// Specificity returns the style's selector specificity, or the zero
// Specificity if the style has no selector (lowest possible priority
// within its origin/insertion-order bucket).
func (s Style) Specificity() Specificity {
	if !s.hasSelector {
		return Specificity{}
	}
	return s.selector.Specificity()
}

// Get returns the erased value for property, if the style has one.
func Get[T any](s Style, p property.Property[T]) (T, bool) {
	v, ok := s.values[p.ID()]
	if !ok {
		var zero T
		return zero, false
	}
	return property.Downcast[T](v)
}

// GetRef borrows the value for property rather than cloning it.
func GetRef[T any](s Style, p property.Property[T]) (*T, bool) {
	v, ok := s.values[p.ID()]
	if !ok {
		return nil, false
	}
	return property.DowncastRef[T](v)
}

// Has reports whether the style carries an explicit value for property.
func Has[T any](s Style, p property.Property[T]) bool {
	_, ok := s.values[p.ID()]
	return ok
}
