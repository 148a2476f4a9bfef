package property

import (
	"fmt"

	"understory/dirty"
)

// Metadata is the immutable-after-registration record for one registered
// property: its type-erased default, the channels it affects, whether it
// participates in inheritance, and optional coerce/on-changed callbacks.
//
// Coerce and on-changed are stored here as type-erased adapters; they are
// produced by MetadataBuilder.Build, which is the one place genericity over
// T is needed, matching the spec's "the builder wraps user-supplied
// coerce/on-changed callbacks in type-specialized adapters so the runtime
// needs no generic dispatch" design note.
type Metadata struct {
	name            string
	defaultValue    Value
	affectsChannels dirty.ChannelSet
	inherits        bool
	coerce          func(Value) Value
	onChanged       func(old, new Value)
}

// Name returns the property's registered name.
func (m *Metadata) Name() string { return m.name }

// Inherits reports whether the property participates in inheritance walks.
func (m *Metadata) Inherits() bool { return m.inherits }

// AffectsChannels returns the channels a write to this property dirties.
func (m *Metadata) AffectsChannels() dirty.ChannelSet { return m.affectsChannels }

// HasChangedCallback reports whether an on-changed callback was registered.
func (m *Metadata) HasChangedCallback() bool { return m.onChanged != nil }

// DefaultValue returns the type-erased default value.
func (m *Metadata) DefaultValue() Value { return m.defaultValue }

// ApplyCoerce runs the registered coerce callback, if any, returning v
// unchanged otherwise.
func (m *Metadata) ApplyCoerce(v Value) Value {
	if m.coerce == nil {
		return v
	}
	return m.coerce(v)
}

// NotifyChanged runs the registered on-changed callback, if any.
func (m *Metadata) NotifyChanged(old, new Value) {
	if m.onChanged == nil {
		return
	}
	m.onChanged(old, new)
}

// MetadataBuilder accumulates a property's default value, inheritance flag,
// affected channels, and optional coerce/on-changed callbacks before
// Build erases them into a Metadata.
type MetadataBuilder[T any] struct {
	def       T
	inherits  bool
	affects   dirty.ChannelSet
	coerce    func(T) T
	onChanged func(old *T, new T)
}

// NewMetadataBuilder starts a builder with the required default value.
func NewMetadataBuilder[T any](def T) *MetadataBuilder[T] {
	return &MetadataBuilder[T]{def: def}
}

// Inherits sets whether the property participates in inheritance walks.
// Default false.
func (b *MetadataBuilder[T]) Inherits(v bool) *MetadataBuilder[T] {
	b.inherits = v
	return b
}

// AffectsChannels sets the channels a write to this property dirties.
// Default empty.
func (b *MetadataBuilder[T]) AffectsChannels(cs dirty.ChannelSet) *MetadataBuilder[T] {
	b.affects = cs
	return b
}

// Coerce sets a callback applied to every value before it is stored.
// Default identity.
func (b *MetadataBuilder[T]) Coerce(fn func(T) T) *MetadataBuilder[T] {
	b.coerce = fn
	return b
}

// OnChanged sets a callback invoked after a notifying set, with the
// previous value (nil if none) and the newly stored value. Default no-op.
func (b *MetadataBuilder[T]) OnChanged(fn func(old *T, new T)) *MetadataBuilder[T] {
	b.onChanged = fn
	return b
}

// Build materializes the erased Metadata.
func (b *MetadataBuilder[T]) Build(name string) Metadata {
	m := Metadata{
		name:            name,
		defaultValue:    NewValue(b.def),
		affectsChannels: b.affects,
		inherits:        b.inherits,
	}
	if b.coerce != nil {
		coerce := b.coerce
		m.coerce = func(v Value) Value {
			tv, ok := Downcast[T](v)
			if !ok {
				return v
			}
			return NewValue(coerce(tv))
		}
	}
	if b.onChanged != nil {
		onChanged := b.onChanged
		m.onChanged = func(old, new Value) {
			var oldPtr *T
			if !old.IsZero() {
				if p, ok := DowncastRef[T](old); ok {
					oldPtr = p
				}
			}
			newVal, _ := Downcast[T](new)
			onChanged(oldPtr, newVal)
		}
	}
	return m
}

// Registry is the process-wide, append-only mapping from ID to Metadata.
type Registry struct {
	metas []*Metadata
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register allocates the next ID, stores meta, and returns a typed handle.
// Registration is append-only; Understory does not enforce unique names
// (mirroring the original's "no duplicate-name check is mandated").
func Register[T any](r *Registry, name string, builder *MetadataBuilder[T]) Property[T] {
	meta := builder.Build(name)
	id := ID(len(r.metas))
	r.metas = append(r.metas, &meta)
	return Property[T]{id: id}
}

// GetMetadata returns the metadata for property, or ok=false if the property
// was never registered in r or its stored default does not downcast to T
// (e.g. a Property[T] value fabricated with a foreign ID).
func GetMetadata[T any](r *Registry, property Property[T]) (*Metadata, bool) {
	id := int(property.ID())
	if id < 0 || id >= len(r.metas) {
		return nil, false
	}
	m := r.metas[id]
	if _, ok := DowncastRef[T](m.defaultValue); !ok {
		return nil, false
	}
	return m, true
}

// MustMetadata is GetMetadata but panics if the property is unregistered or
// type-mismatched — the "programmer error; the resolve API aborts" path
// spec.md's error-handling section calls for.
func MustMetadata[T any](r *Registry, property Property[T]) *Metadata {
	m, ok := GetMetadata(r, property)
	if !ok {
		panic(fmt.Sprintf("property: property %d not found in registry", property.ID()))
	}
	return m
}

// Default returns the registered default value for property.
func Default[T any](r *Registry, property Property[T]) T {
	m := MustMetadata(r, property)
	v, _ := Downcast[T](m.defaultValue)
	return v
}
