package property

// Value is a type-erased cell carrying a cloneable value. Downcasting is a
// Go type assertion against the concrete type the value was constructed
// with — Go's interface values already carry exact dynamic-type
// information, so this plays the role the spec describes as "downcast by
// exact TypeId match" without any manual TypeId bookkeeping.
//
// Value stores a pointer to the boxed value (rather than the value itself)
// so that DowncastRef can hand back a real reference into the cell instead
// of a copy, matching get_effective_local_ref's "borrow, don't clone"
// contract.
type Value struct {
	v any // always a *T for the original T the Value was built from.
}

// NewValue boxes v into an erased cell.
func NewValue[T any](v T) Value {
	boxed := v
	return Value{v: &boxed}
}

// DowncastRef attempts to view the cell as a *T. ok is false if the cell
// was not constructed with exactly this T.
func DowncastRef[T any](e Value) (*T, bool) {
	p, ok := e.v.(*T)
	return p, ok
}

// Downcast attempts to copy the cell's value out as a T. ok is false if the
// cell was not constructed with exactly this T.
func Downcast[T any](e Value) (T, bool) {
	p, ok := DowncastRef[T](e)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// IsZero reports whether the Value holds nothing (the zero Value).
func (e Value) IsZero() bool {
	return e.v == nil
}
