package style

import "understory/property"

// ResourceKey identifies a theme resource (e.g. a named color token or
// font size). Resource keys are independent of property IDs and are
// resolved only by explicit caller request, never implicitly.
type ResourceKey uint32

// Theme is a small, immutable map from ResourceKey to an erased value.
type Theme struct {
	values map[ResourceKey]property.Value
}

// ThemeBuilder accumulates resource entries before Build seals a Theme.
type ThemeBuilder struct {
	values map[ResourceKey]property.Value
}

// NewThemeBuilder starts an empty theme builder.
func NewThemeBuilder() *ThemeBuilder {
	return &ThemeBuilder{values: map[ResourceKey]property.Value{}}
}

// SetResource records a value for key.
func SetResource[T any](b *ThemeBuilder, key ResourceKey, value T) *ThemeBuilder {
	b.values[key] = property.NewValue(value)
	return b
}

// Build seals the theme.
func (b *ThemeBuilder) Build() Theme {
	return Theme{values: b.values}
}

// IsEmpty reports whether the theme has no resources.
func (t Theme) IsEmpty() bool { return len(t.values) == 0 }

// Len returns the number of resources in the theme.
func (t Theme) Len() int { return len(t.values) }

// GetResource downcasts the value stored under key to T, if present and
// type-matched.
func GetResource[T any](t Theme, key ResourceKey) (T, bool) {
	v, ok := t.values[key]
	if !ok {
		var zero T
		return zero, false
	}
	return property.Downcast[T](v)
}

// GetResourceRef borrows the value stored under key.
func GetResourceRef[T any](t Theme, key ResourceKey) (*T, bool) {
	v, ok := t.values[key]
	if !ok {
		return nil, false
	}
	return property.DowncastRef[T](v)
}
