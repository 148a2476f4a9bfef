package style

import "understory/property"

// ResolveCx bundles the registry, theme, and parent lookup needed to
// compute an object's effective property values through the full
// precedence chain: Animation, Local, cascade, (theme), inherited,
// default.
type ResolveCx[K comparable] struct {
	Registry *property.Registry
	Theme    Theme
	Parent   property.ParentLookup[K]
	Stores   func(K) (*property.Store[K], bool)
}

// GetValue resolves property for object against inputs and cascade,
// following: Animation -> Local -> cascade -> (inherited, if the property
// inherits) -> registry default.
func GetValue[K comparable, T any](
	cx ResolveCx[K],
	object K,
	inputs SelectorInputs,
	cascade StyleCascade,
	p property.Property[T],
) T {
	if v, ok := resolveOwnAndCascade(cx, object, inputs, cascade, p); ok {
		return v
	}
	if MustInherits(cx.Registry, p) {
		if v, ok := property.WalkInherited(object, p, cx.Parent, cx.Stores); ok {
			return v
		}
	}
	return property.Default(cx.Registry, p)
}

// GetValueRef is GetValue, borrowed: it never clones, returning a
// reference tied to whichever layer held the value.
func GetValueRef[K comparable, T any](
	cx ResolveCx[K],
	object K,
	inputs SelectorInputs,
	cascade StyleCascade,
	p property.Property[T],
) *T {
	if v, ok := resolveOwnAndCascadeRef(cx, object, inputs, cascade, p); ok {
		return v
	}
	if MustInherits(cx.Registry, p) {
		if v, ok := property.WalkInheritedRef(object, p, cx.Parent, cx.Stores); ok {
			return v
		}
	}
	m := property.MustMetadata(cx.Registry, p)
	v, _ := property.DowncastRef[T](m.DefaultValue())
	return v
}

// GetValueWithTheme is GetValue, additionally consulting Theme[key]
// between the cascade and inheritance steps.
func GetValueWithTheme[K comparable, T any](
	cx ResolveCx[K],
	object K,
	inputs SelectorInputs,
	cascade StyleCascade,
	p property.Property[T],
	key ResourceKey,
) T {
	if v, ok := resolveOwnAndCascade(cx, object, inputs, cascade, p); ok {
		return v
	}
	if v, ok := GetResource[T](cx.Theme, key); ok {
		return v
	}
	if MustInherits(cx.Registry, p) {
		if v, ok := property.WalkInherited(object, p, cx.Parent, cx.Stores); ok {
			return v
		}
	}
	return property.Default(cx.Registry, p)
}

// GetValueWithThemeRef is GetValueWithTheme, borrowed.
func GetValueWithThemeRef[K comparable, T any](
	cx ResolveCx[K],
	object K,
	inputs SelectorInputs,
	cascade StyleCascade,
	p property.Property[T],
	key ResourceKey,
) *T {
	if v, ok := resolveOwnAndCascadeRef(cx, object, inputs, cascade, p); ok {
		return v
	}
	if v, ok := GetResourceRef[T](cx.Theme, key); ok {
		return v
	}
	if MustInherits(cx.Registry, p) {
		if v, ok := property.WalkInheritedRef(object, p, cx.Parent, cx.Stores); ok {
			return v
		}
	}
	m := property.MustMetadata(cx.Registry, p)
	v, _ := property.DowncastRef[T](m.DefaultValue())
	return v
}

func resolveOwnAndCascade[K comparable, T any](
	cx ResolveCx[K], object K, inputs SelectorInputs, cascade StyleCascade, p property.Property[T],
) (T, bool) {
	if s, ok := cx.Stores(object); ok {
		if v, ok := property.GetAnimation(s, p); ok {
			return v, true
		}
		if v, ok := property.GetLocal(s, p); ok {
			return v, true
		}
	}
	return Lookup(cascade, inputs, p)
}

func resolveOwnAndCascadeRef[K comparable, T any](
	cx ResolveCx[K], object K, inputs SelectorInputs, cascade StyleCascade, p property.Property[T],
) (*T, bool) {
	if s, ok := cx.Stores(object); ok {
		if v, ok := property.GetEffectiveOwnRef(s, p); ok {
			return v, true
		}
	}
	return LookupRef(cascade, inputs, p)
}

// MustInherits reports whether property is registered to inherit.
func MustInherits[T any](r *property.Registry, p property.Property[T]) bool {
	return property.MustMetadata(r, p).Inherits()
}
